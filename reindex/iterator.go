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

	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

const (
	// DefaultBatchSize is the default number of records to process in each batch
	DefaultBatchSize = 100
)

// RecordIterator walks the embedding store in insertion order, delivering
// records in batches.
type RecordIterator struct {
	repo      storage.EmbeddingRepository
	batchSize int
}

// NewRecordIterator creates a new record iterator.
// batchSize: number of records per batch (must be > 0)
func NewRecordIterator(repo storage.EmbeddingRepository, batchSize int) *RecordIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &RecordIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// Count returns the number of embedding records in the store.
func (it *RecordIterator) Count(ctx context.Context) (int, error) {
	total := 0
	err := it.repo.Scan(ctx, func(_ *core.EmbeddingRecord) (bool, error) {
		total++
		return true, nil
	})
	return total, err
}

// ForEach iterates over all embedding records, calling fn for each batch.
// The first skip records are passed over without being delivered, which
// supports resuming from a checkpoint. Iteration stops on the first error
// from fn; context cancellation is checked inside the scan.
func (it *RecordIterator) ForEach(ctx context.Context, skip int, fn func([]*core.EmbeddingRecord) error) error {
	batch := make([]*core.EmbeddingRecord, 0, it.batchSize)
	seen := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := fn(batch)
		batch = batch[:0]
		return err
	}

	err := it.repo.Scan(ctx, func(record *core.EmbeddingRecord) (bool, error) {
		seen++
		if seen <= skip {
			return true, nil
		}
		batch = append(batch, record)
		if len(batch) == it.batchSize {
			if err := flush(); err != nil {
				return false, err
			}
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	return flush()
}
