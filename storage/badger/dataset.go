package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

// DatasetRepository implements storage.DatasetRepository for BadgerDB.
type DatasetRepository struct {
	backend *Backend
}

var _ storage.DatasetRepository = (*DatasetRepository)(nil)

// NewDatasetRepository creates a new DatasetRepository.
func NewDatasetRepository(backend *Backend) (storage.DatasetRepository, error) {
	return &DatasetRepository{
		backend: backend,
	}, nil
}

// Close releases resources. DatasetRepository has no resources to release.
func (r *DatasetRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *DatasetRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// FindByDocument retrieves the dataset created for a source document.
// Returns ErrNotFound when no dataset exists for the document.
func (r *DatasetRepository) FindByDocument(ctx context.Context, documentID string) (*core.FinancialDataset, error) {
	var result *core.FinancialDataset
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		docItem, err := tx.Get(makeDatasetDocKey(documentID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var datasetID string
		if err := docItem.Value(func(val []byte) error {
			datasetID = string(val)
			return nil
		}); err != nil {
			return err
		}

		item, err := tx.Get(makeDatasetKey(datasetID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalDataset(val)
			return err
		})
	}, false)
	return result, err
}

// Insert creates a dataset, assigning it a fresh ID. At most one dataset
// may exist per source document; a second insert for the same document
// fails with ErrDuplicateKey. The uniqueness check rides the same
// transaction as the write, so racing inserts conflict rather than
// both succeeding.
func (r *DatasetRepository) Insert(ctx context.Context, dataset *core.FinancialDataset) (string, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		docKey := makeDatasetDocKey(dataset.SourceDocumentID)

		_, err := tx.Get(docKey)
		if err == nil {
			return storage.ErrDuplicateKey
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		dataset.ID = uuid.NewString()
		dataset.InsertedAt = time.Now().UTC().Truncate(time.Microsecond)

		if err := tx.Set(makeDatasetKey(dataset.ID), storage.MarshalDataset(dataset)); err != nil {
			return err
		}
		if err := tx.Set(docKey, []byte(dataset.ID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if errors.Is(err, badger.ErrConflict) {
		return "", storage.ErrDuplicateKey
	}
	if err != nil {
		return "", err
	}
	return dataset.ID, nil
}

// ListDatasets retrieves all datasets.
func (r *DatasetRepository) ListDatasets(ctx context.Context) ([]*core.FinancialDataset, error) {
	var results []*core.FinancialDataset
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(datasetPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var dataset *core.FinancialDataset
			err := iter.Item().Value(func(val []byte) error {
				var err error
				dataset, err = storage.UnmarshalDataset(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, dataset)
		}
		return nil
	}, false)

	return results, err
}
