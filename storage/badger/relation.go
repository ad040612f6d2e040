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
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

// RelationRepository implements storage.RelationRepository for BadgerDB.
type RelationRepository struct {
	backend *Backend
}

var _ storage.RelationRepository = (*RelationRepository)(nil)

// NewRelationRepository creates a new RelationRepository.
func NewRelationRepository(backend *Backend) (storage.RelationRepository, error) {
	return &RelationRepository{
		backend: backend,
	}, nil
}

// Close releases resources. RelationRepository has no resources to release.
func (r *RelationRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *RelationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Upsert writes a relation, replacing any prior relation with the same
// subject, predicate, and object. Both endpoint classes must already
// exist; otherwise ErrDanglingRelation is returned. The endpoint check
// and the write share one transaction so a concurrently deleted class
// cannot slip through.
func (r *RelationRepository) Upsert(ctx context.Context, relation *core.OntologyRelation) error {
	if err := core.ValidateRelation(relation); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, classID := range []string{relation.SubjectClassID, relation.ObjectClassID} {
			existing, err := readClass(tx, makeClassKey(classID))
			if err != nil {
				return err
			}
			if existing == nil {
				return fmt.Errorf("%w: class %q", storage.ErrDanglingRelation, classID)
			}
		}

		key := makeRelationKey(relation.Key())

		prior, err := readRelation(tx, key)
		if err != nil {
			return err
		}

		now := time.Now().UTC().Truncate(time.Microsecond)
		if prior != nil {
			relation.InsertedAt = prior.InsertedAt
		} else {
			relation.InsertedAt = now
		}
		relation.UpdatedAt = now

		if err := tx.Set(key, storage.MarshalRelation(relation)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListActive retrieves all active relations. When domain is non-empty,
// only relations whose subject class belongs to that domain are returned.
func (r *RelationRepository) ListActive(ctx context.Context, domain string) ([]*core.OntologyRelation, error) {
	var results []*core.OntologyRelation
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(relationPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var relation *core.OntologyRelation
			err := iter.Item().Value(func(val []byte) error {
				var err error
				relation, err = storage.UnmarshalRelation(val)
				return err
			})
			if err != nil {
				return err
			}
			if relation == nil || relation.Status != core.StatusActive {
				continue
			}
			if domain != "" {
				subject, err := readClass(tx, makeClassKey(relation.SubjectClassID))
				if err != nil {
					return err
				}
				if subject == nil || subject.Domain != domain {
					continue
				}
			}
			results = append(results, relation)
		}
		return nil
	}, false)

	return results, err
}

// readRelation reads a relation from the transaction.
// Returns nil, nil when the key is absent.
func readRelation(tx *badger.Txn, key []byte) (*core.OntologyRelation, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var relation *core.OntologyRelation
	err = item.Value(func(val []byte) error {
		var err error
		relation, err = storage.UnmarshalRelation(val)
		return err
	})
	return relation, err
}
