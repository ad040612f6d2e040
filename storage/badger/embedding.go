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


package badger

import (
	"context"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

// EmbeddingRepository implements storage.EmbeddingRepository for BadgerDB.
// Records are keyed by a monotonic sequence number so scans return them in
// insertion order, and indexed by record ID for in-place vector updates.
type EmbeddingRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.EmbeddingRepository = (*EmbeddingRepository)(nil)

// NewEmbeddingRepository creates a new EmbeddingRepository.
func NewEmbeddingRepository(backend *Backend) (storage.EmbeddingRepository, error) {
	seq, err := backend.GetSequence(embeddingIDSeq)
	if err != nil {
		return nil, err
	}
	return &EmbeddingRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the sequence.
func (r *EmbeddingRepository) Close() error {
	if r.backend.IsClosed() {
		return nil
	}
	return r.seq.Release()
}

// WithTransaction delegates to the backend.
func (r *EmbeddingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Insert stores an embedding record, assigning it a fresh ID.
func (r *EmbeddingRepository) Insert(ctx context.Context, record *core.EmbeddingRecord) (string, error) {
	if err := core.ValidateEmbeddingRecord(record); err != nil {
		return "", err
	}

	seq, err := r.seq.Next()
	if err != nil {
		return "", err
	}

	record.ID = uuid.NewString()
	record.InsertedAt = time.Now().UTC().Truncate(time.Microsecond)

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEmbeddingKey(seq, record.ID)
		if err := tx.Set(key, storage.MarshalEmbeddingRecord(record)); err != nil {
			return err
		}
		if err := tx.Set(makeEmbeddingIDKey(record.ID), key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

// Update rewrites an existing record in place, preserving its position in
// insertion order. Returns ErrNotFound when no record has the given ID.
func (r *EmbeddingRepository) Update(ctx context.Context, record *core.EmbeddingRecord) error {
	if err := core.ValidateEmbeddingRecord(record); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		idItem, err := tx.Get(makeEmbeddingIDKey(record.ID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var key []byte
		if err := idItem.Value(func(val []byte) error {
			key = append([]byte(nil), val...)
			return nil
		}); err != nil {
			return err
		}

		if err := tx.Set(key, storage.MarshalEmbeddingRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Scan streams all embedding records in insertion order, invoking fn for
// each. Iteration stops when fn returns false or an error.
func (r *EmbeddingRepository) Scan(ctx context.Context, fn func(record *core.EmbeddingRecord) (bool, error)) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(embeddingPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var record *core.EmbeddingRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalEmbeddingRecord(val)
				return err
			})
			if err != nil {
				return err
			}

			keep, err := fn(record)
			if err != nil {
				return err
			}
			if !keep {
				return nil
			}
		}
		return nil
	}, false)
}

// FindSimilar scans all records and returns those whose cosine similarity
// to the query vector meets minSimilarity, best first. Ties preserve
// insertion order. A limit of zero means unlimited.
func (r *EmbeddingRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float64, limit int) ([]*storage.SimilarityMatch, error) {
	var matches []*storage.SimilarityMatch

	err := r.Scan(ctx, func(record *core.EmbeddingRecord) (bool, error) {
		score := core.CosineSimilarity(vector, record.Vector)
		if score >= minSimilarity {
			matches = append(matches, &storage.SimilarityMatch{
				Record: record,
				Score:  score,
			})
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
