// Package mock provides deterministic, dependency-free implementations of
// the ai interfaces for testing. Vectors are derived from a hash of the
// input text, so tests get stable orderings without network access.
package mock
