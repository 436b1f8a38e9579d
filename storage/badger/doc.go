// Package badger implements checkpoint persistence on BadgerDB, an embedded
// key-value store. It backs ingestion resumability on the machine running
// the pipeline; the paper corpus itself lives in the remote index.
package badger
