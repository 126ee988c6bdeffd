// Copyright 2025 Poiesic Systems
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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/profindex"
	"github.com/poiesic/profindex/config"
	"github.com/poiesic/profindex/index"
	"github.com/poiesic/profindex/ingestion"
	"github.com/poiesic/profindex/search"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		stop()
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "profindex",
		Usage:     "Index researcher profiles for semantic search",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file if it exists; existing variables win",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "backend",
				Usage:   "Vector index backend (azure, qdrant)",
				EnvVars: []string{config.EnvBackend},
			},
			&cli.StringFlag{
				Name:  "schema-file",
				Usage: "TOML file overriding vector dimensions and HNSW parameters",
			},
		},
		Before: before,
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Create the index, embed every CSV row and upload the documents",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "csv",
						Aliases:  []string{"f"},
						Usage:    "Path to the researcher CSV file",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "skip-create-index",
						Usage: "Upload into the existing index without applying the schema",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Documents per upload request (0 sends all in one request)",
						Value: ingestion.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Attempts per embedding request",
						Value: 1,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: ingestion.DefaultRetryDelay,
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Embedding requests in flight at once",
						Value: 1,
					},
					&cli.Float64Flag{
						Name:  "requests-per-second",
						Usage: "Cap on embedding requests per second (0 for no cap)",
					},
					&cli.StringFlag{
						Name:    "cache-dir",
						Usage:   "BadgerDB directory for caching embeddings between runs",
						EnvVars: []string{config.EnvCacheDir},
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 10,
					},
				},
			},
			{
				Name:   "create-index",
				Usage:  "Create the index or update it to match the schema",
				Action: createIndexCommand,
			},
			{
				Name:      "query",
				Usage:     "Find the researchers most similar to a free-text query",
				ArgsUsage: "<text>",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"k"},
						Usage:   "Number of results",
						Value:   5,
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Drop results scoring below this value",
					},
					&cli.BoolFlag{
						Name:  "keyword-boost",
						Usage: "Rank results containing every query term higher",
					},
				},
			},
		},
	}
}

func before(c *cli.Context) error {
	if err := setupLogger(c); err != nil {
		return err
	}
	return loadEnvFile(c.String("env-file"))
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	slog.Debug("loaded env file", "path", path)
	return nil
}

// openIndexer builds an Indexer from the environment. Flags that mirror
// environment variables take precedence.
func openIndexer(c *cli.Context, opts ...profindex.Option) (*profindex.Indexer, error) {
	lookup := config.Overlay(map[string]string{
		config.EnvBackend:  c.String("backend"),
		config.EnvCacheDir: c.String("cache-dir"),
	}, os.LookupEnv)

	if path := c.String("schema-file"); path != "" {
		overrides, err := index.LoadSchemaOverrides(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, profindex.WithSchemaOverrides(overrides))
	}

	idx, err := profindex.NewFromEnv(lookup, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return idx, nil
}

func indexCommand(c *cli.Context) error {
	if c.Int("max-retries") < 1 {
		return fmt.Errorf("max-retries must be greater than 0")
	}
	if c.Int("concurrency") < 1 {
		return fmt.Errorf("concurrency must be greater than 0")
	}
	if c.Int("batch-size") < 0 {
		return fmt.Errorf("batch-size must not be negative")
	}
	if c.Int("report-interval") < 1 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	idx, err := openIndexer(c, profindex.WithPipelineOptions(
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithMaxAttempts(c.Int("max-retries")),
		ingestion.WithRetryDelay(c.Duration("retry-delay")),
		ingestion.WithConcurrency(c.Int("concurrency")),
		ingestion.WithRateLimit(c.Float64("requests-per-second")),
		ingestion.WithProgress(os.Stderr, c.Int("report-interval")),
	))
	if err != nil {
		return err
	}
	defer idx.Close()

	ctx := c.Context
	name := idx.Schema().Name
	if !c.Bool("skip-create-index") {
		fmt.Fprintf(os.Stderr, "Applying schema to index %q\n", name)
		if err := idx.EnsureIndex(ctx); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "Indexing %s\n", c.String("csv"))
	result, err := idx.IngestFile(ctx, c.String("csv"))
	if err != nil {
		if result != nil && result.Upload != nil {
			fmt.Fprintf(os.Stderr, "Uploaded %d documents, %d rejected\n", result.Upload.Succeeded, len(result.Upload.Failed))
		}
		return err
	}

	fmt.Fprintf(c.App.Writer, "Indexed %d researcher records into %q (%d from cache)\n",
		result.Upload.Succeeded, name, result.CacheHits)
	return nil
}

func createIndexCommand(c *cli.Context) error {
	idx, err := openIndexer(c)
	if err != nil {
		return err
	}
	defer idx.Close()

	if err := idx.EnsureIndex(c.Context); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Index %q is ready\n", idx.Schema().Name)
	return nil
}

func queryCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query text is required")
	}

	idx, err := openIndexer(c)
	if err != nil {
		return err
	}
	defer idx.Close()

	opts := []search.Option{search.WithMinScore(c.Float64("min-score"))}
	if c.Bool("keyword-boost") {
		opts = append(opts, search.WithKeywordBoost(search.DefaultKeywordBoost))
	}
	searcher, err := idx.Searcher(opts...)
	if err != nil {
		return err
	}

	// Stage timings are logged at debug level.
	hits, err := searcher.SearchWithMonitor(c.Context, query, c.Int("top"), search.NewTimingMonitor(slog.Default()))
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Fprintln(c.App.Writer, "No matches")
		return nil
	}
	for i, h := range hits {
		fmt.Fprintf(c.App.Writer, "%d. id=%s score=%.4f\n   %s\n", i+1, h.ID, h.Score, h.JSONData)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
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
