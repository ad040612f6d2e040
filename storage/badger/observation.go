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
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

// ObservationRepository implements storage.ObservationRepository for
// BadgerDB. Observations are keyed by a monotonic sequence number so
// iteration returns them in insertion order.
type ObservationRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.ObservationRepository = (*ObservationRepository)(nil)

// NewObservationRepository creates a new ObservationRepository.
func NewObservationRepository(backend *Backend) (storage.ObservationRepository, error) {
	seq, err := backend.GetSequence(observationIDSeq)
	if err != nil {
		return nil, err
	}
	return &ObservationRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the sequence.
func (r *ObservationRepository) Close() error {
	if r.backend.IsClosed() {
		return nil
	}
	return r.seq.Release()
}

// WithTransaction delegates to the backend.
func (r *ObservationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Insert appends an observation, assigning it a fresh ID. Observations
// are immutable once written. A secondary key per dataset supports
// filtered listing without a full scan.
func (r *ObservationRepository) Insert(ctx context.Context, obs *core.FinancialObservation) (string, error) {
	if err := core.ValidateObservation(obs); err != nil {
		return "", err
	}

	seq, err := r.seq.Next()
	if err != nil {
		return "", err
	}

	obs.ID = uuid.NewString()
	obs.InsertedAt = time.Now().UTC().Truncate(time.Microsecond)

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeObservationKey(seq, obs.ID)
		if err := tx.Set(key, storage.MarshalObservation(obs)); err != nil {
			return err
		}
		if err := tx.Set(makeObservationDatasetKey(obs.DatasetID, seq), key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return "", err
	}
	return obs.ID, nil
}

// ListObservations retrieves observations matching the filter in
// insertion order. A dataset filter walks the per-dataset index;
// otherwise the full observation keyspace is scanned.
func (r *ObservationRepository) ListObservations(ctx context.Context, filter storage.ObservationFilter) ([]*core.FinancialObservation, error) {
	var results []*core.FinancialObservation

	matches := func(obs *core.FinancialObservation) bool {
		if filter.ObservationType != "" && obs.ObservationType != filter.ObservationType {
			return false
		}
		return true
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		if filter.DatasetID != "" {
			opts.Prefix = []byte(observationSeqPrefix + ":" + filter.DatasetID + ":")
		} else {
			opts.Prefix = []byte(observationPrefix + ":")
		}
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if filter.Limit > 0 && len(results) >= filter.Limit {
				break
			}

			item := iter.Item()
			if filter.DatasetID != "" {
				var primary []byte
				if err := item.Value(func(val []byte) error {
					primary = append([]byte(nil), val...)
					return nil
				}); err != nil {
					return err
				}
				var err error
				item, err = tx.Get(primary)
				if err != nil {
					return err
				}
			}

			var obs *core.FinancialObservation
			err := item.Value(func(val []byte) error {
				var err error
				obs, err = storage.UnmarshalObservation(val)
				return err
			})
			if err != nil {
				return err
			}
			if matches(obs) {
				results = append(results, obs)
			}
		}
		return nil
	}, false)

	return results, err
}
