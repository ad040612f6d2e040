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


package reindex

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/quantabase/fingraph/ai"
	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

// ProcessorType identifies this processor in the checkpoint store.
const ProcessorType = "reindex"

// Config holds configuration for the re-indexing operation.
type Config struct {
	// BatchSize is the number of records to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Resume continues from the last saved checkpoint instead of starting over
	Resume bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reindexer re-embeds every stored embedding record with the configured
// embedder. Progress is checkpointed after each batch so an interrupted run
// can resume where it stopped.
type Reindexer struct {
	repo        storage.EmbeddingRepository
	checkpoints storage.CheckpointRepository
	embedder    ai.Embedder
	config      *Config
	progress    io.Writer
	processor   *BatchProcessor
	iterator    *RecordIterator
}

// NewReindexer creates a new reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(
	repo storage.EmbeddingRepository,
	checkpoints storage.CheckpointRepository,
	embedder ai.Embedder,
	config *Config,
	progress io.Writer,
) *Reindexer {
	if config == nil {
		config = DefaultConfig()
	}

	return &Reindexer{
		repo:        repo,
		checkpoints: checkpoints,
		embedder:    embedder,
		config:      config,
		progress:    progress,
		processor:   NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay),
		iterator:    NewRecordIterator(repo, config.BatchSize),
	}
}

// Run executes the re-indexing operation over the whole embedding store.
func (r *Reindexer) Run(ctx context.Context) error {
	totalRecords, err := r.iterator.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if totalRecords == 0 {
		fmt.Fprintf(r.progress, "No embedding records found (0 records)\n")
		return nil
	}

	skip := 0
	if r.config.Resume {
		checkpoint, err := r.checkpoints.LoadCheckpoint(ctx, ProcessorType)
		if err != nil {
			return fmt.Errorf("failed to load checkpoint: %w", err)
		}
		if checkpoint != nil {
			skip = checkpoint.Processed
		}
	}
	if skip >= totalRecords {
		fmt.Fprintf(r.progress, "Nothing to do: checkpoint covers all %d records\n", totalRecords)
		return nil
	}

	fmt.Fprintf(r.progress, "Starting re-indexing of %d records (batch size: %d, resuming at: %d)\n",
		totalRecords, r.config.BatchSize, skip)

	tracker := NewProgressTracker(r.progress, totalRecords, r.config.ReportInterval)
	tracker.Start()
	tracker.Update(skip)

	processed := skip

	err = r.iterator.ForEach(ctx, skip, func(records []*core.EmbeddingRecord) error {
		if err := r.processor.Process(ctx, records); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += len(records)
		tracker.Update(processed)

		return r.checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
			ProcessorType: ProcessorType,
			LastSourceID:  records[len(records)-1].ID,
			Processed:     processed,
		})
	})
	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Re-indexing complete. Processed %d records in %v (%.1f records/sec)\n",
		processed-skip, elapsed.Round(time.Second), float64(processed-skip)/elapsed.Seconds())

	return nil
}
