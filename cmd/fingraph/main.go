// Copyright 2026 Quantabase
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
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	fingraph "github.com/quantabase/fingraph"
	"github.com/quantabase/fingraph/ai"
	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/extract"
	"github.com/quantabase/fingraph/graph"
	"github.com/quantabase/fingraph/ingest"
	"github.com/quantabase/fingraph/reindex"
)

// fileConfig is the optional YAML configuration file. Flags take precedence
// over file values.
type fileConfig struct {
	Database       string `yaml:"database"`
	EmbeddingHost  string `yaml:"embedding_host"`
	EmbeddingModel string `yaml:"embedding_model"`
	Dimension      int    `yaml:"embedding_dimension"`
}

func main() {
	app := &cli.App{
		Name:  "fingraph",
		Usage: "Financial report ingestion and knowledge graph system",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest financial report files",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "format",
						Aliases:  []string{"f"},
						Usage:    "Source format (quickbooks_pl, rootfi_api, generic_json)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "parallelism",
						Usage: "Maximum documents processed concurrently",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Embedding worker pool size",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search indexed documents and entities",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "max-hits",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
					&cli.Float64Flag{
						Name:  "min-similarity",
						Usage: "Drop hits below this cosine similarity",
					},
				},
			},
			{
				Name:   "graph",
				Usage:  "Export the knowledge graph as JSON",
				Action: graphCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "stats",
						Usage: "Print graph statistics instead of the full graph",
					},
					&cli.IntFlag{
						Name:  "observation-cap",
						Usage: "Maximum observation nodes in the graph",
						Value: graph.DefaultObservationCap,
					},
				},
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed all stored embeddings with the configured model",
				Action: reindexCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "resume",
						Usage: "Resume from the last saved checkpoint",
					},
				},
			},
			{
				Name:      "approve",
				Usage:     "Approve a pending ontology class",
				ArgsUsage: "CLASS_ID",
				Action:    approveCommand,
			},
			{
				Name:      "reject",
				Usage:     "Reject a pending ontology class",
				ArgsUsage: "CLASS_ID",
				Action:    rejectCommand,
			},
			{
				Name:   "classes",
				Usage:  "List ontology classes",
				Action: classesCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by status (pending_review, active, rejected)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// resolveConfig merges the optional YAML file with command-line flags.
// Flags win over file values.
func resolveConfig(c *cli.Context) (*fileConfig, error) {
	resolved := &fileConfig{}

	if path := c.String("config"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, resolved); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if v := c.String("db"); v != "" {
		resolved.Database = v
	}
	if v := c.String("embedding-host"); v != "" {
		resolved.EmbeddingHost = v
	}
	if v := c.String("embedding-model"); v != "" {
		resolved.EmbeddingModel = v
	}

	if resolved.Database == "" {
		return nil, fmt.Errorf("database path is required (--db or config file)")
	}
	return resolved, nil
}

func openDatabase(c *cli.Context) (*fingraph.Database, error) {
	config, err := resolveConfig(c)
	if err != nil {
		return nil, err
	}

	var aiOpts []ai.ConfigOption
	if config.EmbeddingHost != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingHost(config.EmbeddingHost))
	}
	if config.EmbeddingModel != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingModel(config.EmbeddingModel))
	}
	if config.Dimension > 0 {
		aiOpts = append(aiOpts, ai.WithEmbeddingDimension(config.Dimension))
	}

	aiConfig := ai.NewConfig(aiOpts...)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	return fingraph.NewDatabase(config.Database, fingraph.WithAIConfig(aiConfig))
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one input file is required")
	}

	format := c.String("format")
	switch format {
	case extract.FormatQuickBooks, extract.FormatRootfi, extract.FormatGeneric:
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var pipelineOpts []ingest.Option
	if n := c.Int("parallelism"); n > 0 {
		pipelineOpts = append(pipelineOpts, ingest.WithParallelism(n))
	}
	if n := c.Int("pool-size"); n > 0 {
		pipelineOpts = append(pipelineOpts, ingest.WithPoolSize(n))
	}

	pipeline, err := db.NewIngestionPipeline(pipelineOpts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	documents := make([]ingest.Document, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		documents = append(documents, ingest.Document{
			ID:     filepath.Base(path),
			Format: format,
			Raw:    raw,
		})
	}

	results := pipeline.IngestDocuments(context.Background(), documents)
	pipeline.Wait()

	failed := 0
	for _, result := range results {
		if result.Failed() {
			failed++
			fmt.Fprintf(os.Stderr, "FAILED %s: %v\n", result.DocumentID, result.Err)
			continue
		}
		fmt.Fprintf(os.Stderr, "OK %s: %d records, %d observations, %d new classes, quality %.2f\n",
			result.DocumentID, result.Records, len(result.Observations),
			result.ClassesCreated, result.QualityScore)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one query argument is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}

	results, err := searcher.FindSimilar(context.Background(), c.Args().First(), c.Int("max-hits"))
	if err != nil {
		return err
	}

	if min := c.Float64("min-similarity"); min > 0 {
		filtered := results[:0]
		for _, result := range results {
			if result.Score >= min {
				filtered = append(filtered, result)
			}
		}
		results = filtered
	}

	for i, result := range results {
		fmt.Printf("%2d. [%.3f] (%s", i+1, result.Score, result.SourceKind)
		if result.OntologyClassID != "" {
			fmt.Printf("/%s", result.OntologyClassID)
		}
		fmt.Printf(") %s\n", result.Content)
	}
	if len(results) == 0 {
		fmt.Println("no results")
	}
	return nil
}

func graphCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := db.GraphCache().Graph(context.Background())
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if c.Bool("stats") {
		return encoder.Encode(graph.ComputeStats(g))
	}
	return encoder.Encode(g)
}

func reindexCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	config := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		Resume:         c.Bool("resume"),
	}

	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reindexer := db.NewReindexer(config, os.Stderr)
	if err := reindexer.Run(context.Background()); err != nil {
		return fmt.Errorf("re-indexing failed: %w", err)
	}
	return nil
}

func approveCommand(c *cli.Context) error {
	return reviewCommand(c, true)
}

func rejectCommand(c *cli.Context) error {
	return reviewCommand(c, false)
}

func reviewCommand(c *cli.Context, approve bool) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one class ID argument is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	classID := c.Args().First()
	if approve {
		if err := db.Registry().Approve(context.Background(), classID); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "approved %s\n", classID)
	} else {
		if err := db.Registry().Reject(context.Background(), classID); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "rejected %s\n", classID)
	}
	return nil
}

func classesCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var status core.ClassStatus
	switch c.String("status") {
	case "":
	case "pending_review":
		status = core.StatusPendingReview
	case "active":
		status = core.StatusActive
	case "rejected":
		status = core.StatusRejected
	default:
		return fmt.Errorf("invalid status %q", c.String("status"))
	}

	classes, err := db.ClassRepository().ListClasses(context.Background(), status)
	if err != nil {
		return err
	}

	for _, class := range classes {
		fmt.Printf("%-30s %-15s conf=%.2f %s\n", class.ClassID, class.Status, class.Confidence, class.Label)
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
