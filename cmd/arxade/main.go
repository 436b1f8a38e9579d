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


package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/arxade/arxade/ai"
	"github.com/arxade/arxade/ai/gemini"
	"github.com/arxade/arxade/core"
	"github.com/arxade/arxade/ingestion"
	"github.com/arxade/arxade/search"
	"github.com/arxade/arxade/server"
	"github.com/arxade/arxade/storage/badger"
	"github.com/arxade/arxade/storage/mongo"
)

func main() {
	app := &cli.App{
		Name:  "arxade",
		Usage: "Semantic discovery over the arXiv corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "embed",
				Usage:  "Generate int8 embeddings for a JSONL paper corpus",
				Action: embedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to input JSONL file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Path to output JSONL file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "Gemini API key",
						EnvVars: []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"},
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "text-embedding-004",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to embed in each API request",
						Value: 100,
					},
					&cli.Uint64Flag{
						Name:  "start",
						Usage: "Input line to start processing from",
					},
					&cli.Uint64Flag{
						Name:  "limit",
						Usage: "Maximum number of records to process (0 = unlimited)",
					},
					&cli.IntFlag{
						Name:  "requests-per-minute",
						Usage: "Embedding API request quota",
						Value: 1500,
					},
					&cli.DurationFlag{
						Name:  "backoff",
						Usage: "Pause after a failed batch",
						Value: 5 * time.Second,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.StringFlag{
						Name:  "checkpoint-db",
						Usage: "Path to BadgerDB directory for resumable checkpoints",
					},
					&cli.BoolFlag{
						Name:  "resume",
						Usage: "Resume from the last checkpoint (requires --checkpoint-db)",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Run the arXade HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
						EnvVars: []string{
							"ARXADE_ADDR",
						},
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "Gemini API key",
						EnvVars: []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"},
					},
					&cli.StringFlag{
						Name:    "client-api-key",
						Usage:   "Shared secret clients present in X-API-Key",
						EnvVars: []string{"API_KEY"},
					},
					&cli.StringFlag{
						Name:    "mongodb-uri",
						Usage:   "MongoDB connection string",
						EnvVars: []string{"MONGODB_URI"},
					},
					&cli.StringFlag{
						Name:    "mongodb-db",
						Usage:   "MongoDB database name",
						Value:   "arxade",
						EnvVars: []string{"MONGODB_DB_NAME"},
					},
					&cli.StringFlag{
						Name:    "mongodb-collection",
						Usage:   "MongoDB collection holding the embedded corpus",
						Value:   "papers",
						EnvVars: []string{"MONGODB_COLLECTION"},
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "text-embedding-004",
					},
					&cli.StringFlag{
						Name:  "generation-model",
						Usage: "Generation model name",
						Value: "gemini-2.0-flash",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run a one-off semantic search from the command line",
				Action:    searchCommand,
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "Gemini API key",
						EnvVars: []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"},
					},
					&cli.StringFlag{
						Name:    "mongodb-uri",
						Usage:   "MongoDB connection string",
						EnvVars: []string{"MONGODB_URI"},
					},
					&cli.StringFlag{
						Name:    "mongodb-db",
						Usage:   "MongoDB database name",
						Value:   "arxade",
						EnvVars: []string{"MONGODB_DB_NAME"},
					},
					&cli.StringFlag{
						Name:    "mongodb-collection",
						Usage:   "MongoDB collection holding the embedded corpus",
						Value:   "papers",
						EnvVars: []string{"MONGODB_COLLECTION"},
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup loads a .env file when present and configures the default logger.
func setup(c *cli.Context) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func newProvider(c *cli.Context, ctx context.Context) (ai.Provider, error) {
	opts := []ai.ConfigOption{
		ai.WithAPIKey(c.String("api-key")),
	}
	if c.IsSet("embedding-model") {
		opts = append(opts, ai.WithEmbeddingModel(c.String("embedding-model")))
	}
	if c.IsSet("generation-model") {
		opts = append(opts, ai.WithGenerationModel(c.String("generation-model")))
	}

	return gemini.NewProvider(ctx, ai.NewConfig(opts...))
}

func embedCommand(c *cli.Context) error {
	ctx := context.Background()

	provider, err := newProvider(c, ctx)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	opts := []ingestion.Option{
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithItemLimit(c.Uint64("limit")),
		ingestion.WithRequestsPerMinute(c.Int("requests-per-minute")),
		ingestion.WithBackoffDelay(c.Duration("backoff")),
		ingestion.WithReportInterval(c.Int("report-interval")),
		ingestion.WithProgressWriter(os.Stderr),
	}

	startOffset := c.Uint64("start")

	if dbPath := c.String("checkpoint-db"); dbPath != "" {
		backend, err := badger.OpenBackend(dbPath, false)
		if err != nil {
			return fmt.Errorf("failed to open checkpoint database: %w", err)
		}
		defer backend.Close()

		repo := badger.NewCheckpointRepository(backend)
		opts = append(opts, ingestion.WithCheckpoints(repo, "embed"))

		if c.Bool("resume") && !c.IsSet("start") {
			checkpoint, err := repo.LoadCheckpoint(ctx, "embed")
			if err != nil {
				return fmt.Errorf("failed to load checkpoint: %w", err)
			}
			if checkpoint != nil {
				startOffset = checkpoint.InputOffset
				fmt.Fprintf(os.Stderr, "Resuming from line %d (%d embedded so far)\n",
					checkpoint.InputOffset, checkpoint.Embedded)
			}
		}
	} else if c.Bool("resume") {
		return errors.New("--resume requires --checkpoint-db")
	}

	opts = append(opts, ingestion.WithStartOffset(startOffset))

	pipeline, err := ingestion.NewPipeline(provider.Embedder(), opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	in, err := os.Open(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(c.String("output"))
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()

	fmt.Fprintf(os.Stderr, "Input: %s\n", c.String("input"))
	fmt.Fprintf(os.Stderr, "Output: %s | Batch size: %d\n", c.String("output"), c.Int("batch-size"))
	fmt.Fprintln(os.Stderr)

	stats, err := pipeline.Run(ctx, in, out)
	if err != nil {
		return fmt.Errorf("embedding run failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Completed: %d embeddings generated (%d skipped, %d dropped)\n",
		stats.Embedded, stats.Skipped, stats.Dropped)

	return nil
}

func serveCommand(c *cli.Context) error {
	ctx := context.Background()

	clientKey := c.String("client-api-key")
	if clientKey == "" {
		return errors.New("client-api-key is required (set API_KEY)")
	}

	provider, err := newProvider(c, ctx)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	index, err := mongo.NewIndex(ctx, mongo.Config{
		URI:        c.String("mongodb-uri"),
		Database:   c.String("mongodb-db"),
		Collection: c.String("mongodb-collection"),
	}, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to connect to paper index: %w", err)
	}
	defer index.Close(context.Background())

	engine, err := search.NewEngine(index, provider.Embedder())
	if err != nil {
		return fmt.Errorf("failed to create search engine: %w", err)
	}

	cfg := server.DefaultConfig()
	cfg.Addr = c.String("addr")
	cfg.APIKey = clientKey

	srv := server.NewServer(engine, provider.Generator(), index, slog.Default())
	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.NewRouter(srv, cfg),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("arXade API listening", slog.String("addr", cfg.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		slog.Info("shutting down", slog.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return errors.New("a query argument is required")
	}

	provider, err := newProvider(c, ctx)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	index, err := mongo.NewIndex(ctx, mongo.Config{
		URI:        c.String("mongodb-uri"),
		Database:   c.String("mongodb-db"),
		Collection: c.String("mongodb-collection"),
	}, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to connect to paper index: %w", err)
	}
	defer index.Close(context.Background())

	engine, err := search.NewEngine(index, provider.Embedder())
	if err != nil {
		return fmt.Errorf("failed to create search engine: %w", err)
	}

	results, err := engine.Search(ctx, core.SearchQuery{
		Query: query,
		Limit: c.Int("limit"),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
