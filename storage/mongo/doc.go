// Package mongo implements the paper index on MongoDB Atlas vector search.
// The corpus collection stores one document per paper with an int8 embedding
// field covered by an Atlas Search index; queries run as $vectorSearch
// aggregations.
package mongo
