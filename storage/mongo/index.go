// Copyright 2025 arXade Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/arxade/arxade/core"
	"github.com/arxade/arxade/storage"
)

const (
	// vectorIndexName is the Atlas Search index over embedding_int8.
	vectorIndexName = "vector_index"

	// embeddingPath is the document field the vector index covers.
	embeddingPath = "embedding_int8"

	serverSelectionTimeout = 5 * time.Second
	connectTimeout         = 10 * time.Second
	maxPoolSize            = 10
)

// Config holds the connection parameters for the paper index.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// Index implements storage.PaperIndex against a MongoDB Atlas vector search
// index.
type Index struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ storage.PaperIndex = (*Index)(nil)

// NewIndex connects to MongoDB and returns a paper index over the configured
// collection. The connection is verified with a ping before returning.
func NewIndex(ctx context.Context, cfg Config, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(serverSelectionTimeout).
		SetConnectTimeout(connectTimeout).
		SetMaxPoolSize(maxPoolSize).
		SetRetryWrites(true).
		SetWriteConcern(writeconcern.Majority())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: %s", storage.ErrUnavailable, err)
	}

	logger.Info("connected to mongodb",
		slog.String("database", cfg.Database),
		slog.String("collection", cfg.Collection))

	return &Index{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		logger: logger,
	}, nil
}

// Ping verifies the index is reachable.
func (ix *Index) Ping(ctx context.Context) error {
	if err := ix.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %s", storage.ErrUnavailable, err)
	}
	return nil
}

// Search runs a $vectorSearch aggregation and decodes the raw hits. Category
// normalization and result projection are left to the caller.
func (ix *Index) Search(ctx context.Context, queryVector []int8, numCandidates, limit int) ([]core.PaperHit, error) {
	pipeline := buildSearchPipeline(queryVector, numCandidates, limit)

	cursor, err := ix.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("vector search aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var hits []core.PaperHit
	if err := cursor.All(ctx, &hits); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}

	ix.logger.Debug("vector search completed",
		slog.Int("hits", len(hits)),
		slog.Int("num_candidates", numCandidates),
		slog.Int("limit", limit))

	return hits, nil
}

// Close disconnects from MongoDB.
func (ix *Index) Close(ctx context.Context) error {
	return ix.client.Disconnect(ctx)
}

// buildSearchPipeline assembles the aggregation for one ANN query. BSON has
// no int8 type, so the query vector is widened to int32 on the wire; the
// stored embeddings remain int8 on the index side.
func buildSearchPipeline(queryVector []int8, numCandidates, limit int) mongo.Pipeline {
	wire := make([]int32, len(queryVector))
	for i, v := range queryVector {
		wire[i] = int32(v)
	}

	return mongo.Pipeline{
		bson.D{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: vectorIndexName},
			{Key: "path", Value: embeddingPath},
			{Key: "queryVector", Value: wire},
			{Key: "numCandidates", Value: numCandidates},
			{Key: "limit", Value: limit},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "id", Value: 1},
			{Key: "title", Value: 1},
			{Key: "abstract", Value: 1},
			{Key: "authors", Value: 1},
			{Key: "categories", Value: 1},
			{Key: "update_date", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}
}
