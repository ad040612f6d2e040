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
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

// ClassRepository implements storage.ClassRepository for BadgerDB.
type ClassRepository struct {
	backend *Backend
}

var _ storage.ClassRepository = (*ClassRepository)(nil)

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(backend *Backend) (storage.ClassRepository, error) {
	return &ClassRepository{
		backend: backend,
	}, nil
}

// Close releases resources. ClassRepository has no resources to release.
func (r *ClassRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ClassRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// GetClass retrieves a class by its class ID.
func (r *ClassRepository) GetClass(ctx context.Context, classID string) (*core.OntologyClass, error) {
	var result *core.OntologyClass
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readClass(tx, makeClassKey(classID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// InsertIfAbsent atomically creates the class unless it already exists.
// The read and conditional write share one SSI transaction, so two racing
// creators cannot both insert: the loser observes a conflict, which is
// surfaced as ErrDuplicateKey for the caller to recover from by re-reading.
func (r *ClassRepository) InsertIfAbsent(ctx context.Context, class *core.OntologyClass) (bool, error) {
	created := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeClassKey(class.ClassID)

		existing, err := readClass(tx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}

		class.InsertedAt = time.Now().UTC().Truncate(time.Microsecond)
		class.UpdatedAt = class.InsertedAt

		if err := tx.Set(key, storage.MarshalClass(class)); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		created = true
		return nil
	}, true)

	if errors.Is(err, badger.ErrConflict) {
		return false, storage.ErrDuplicateKey
	}
	return created, err
}

// UpdateStatus transitions a class to a new review status.
func (r *ClassRepository) UpdateStatus(ctx context.Context, classID string, status core.ClassStatus) error {
	if err := core.ValidateStatus(status); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeClassKey(classID)

		class, err := readClass(tx, key)
		if err != nil {
			return err
		}
		if class == nil {
			return storage.ErrNotFound
		}

		class.Status = status
		class.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

		if err := tx.Set(key, storage.MarshalClass(class)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListClasses retrieves all classes with the given status.
// A zero status lists every class.
func (r *ClassRepository) ListClasses(ctx context.Context, status core.ClassStatus) ([]*core.OntologyClass, error) {
	var results []*core.OntologyClass
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(classPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var class *core.OntologyClass
			err := iter.Item().Value(func(val []byte) error {
				var err error
				class, err = storage.UnmarshalClass(val)
				return err
			})
			if err != nil {
				return err
			}
			if class == nil {
				continue
			}
			if status != 0 && class.Status != status {
				continue
			}
			results = append(results, class)
		}
		return nil
	}, false)

	return results, err
}

// readClass reads a class from the transaction.
// Returns nil, nil when the key is absent.
func readClass(tx *badger.Txn, key []byte) (*core.OntologyClass, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var class *core.OntologyClass
	err = item.Value(func(val []byte) error {
		var err error
		class, err = storage.UnmarshalClass(val)
		return err
	})
	return class, err
}
