// Package core defines the domain model shared by the ingestion pipeline and
// the retrieval engine: paper records, search queries, category
// normalization with primary-category selection, and the int8 embedding
// quantization both paths must apply identically.
package core
