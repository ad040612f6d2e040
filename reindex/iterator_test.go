package reindex

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/quantabase/fingraph/core"
	storagebadger "github.com/quantabase/fingraph/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStores(t *testing.T) *storagebadger.Stores {
	t.Helper()
	stores, err := storagebadger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })
	return stores
}

func seedEmbeddings(t *testing.T, stores *storagebadger.Stores, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id, err := stores.Embeddings.Insert(context.Background(), &core.EmbeddingRecord{
			Content:    fmt.Sprintf("record %d", i),
			Vector:     []float32{float32(i), 1},
			SourceKind: core.SourceEntity,
			SourceID:   fmt.Sprintf("obs-%d", i),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestIteratorCount(t *testing.T) {
	stores := newTestStores(t)
	seedEmbeddings(t, stores, 7)

	it := NewRecordIterator(stores.Embeddings, 3)
	total, err := it.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, total)
}

func TestIteratorBatches(t *testing.T) {
	stores := newTestStores(t)
	seedEmbeddings(t, stores, 7)

	it := NewRecordIterator(stores.Embeddings, 3)

	var sizes []int
	var contents []string
	err := it.ForEach(context.Background(), 0, func(batch []*core.EmbeddingRecord) error {
		sizes = append(sizes, len(batch))
		for _, record := range batch {
			contents = append(contents, record.Content)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 3, 1}, sizes)
	assert.Equal(t, "record 0", contents[0])
	assert.Equal(t, "record 6", contents[6])
}

func TestIteratorSkipResumesMidStore(t *testing.T) {
	stores := newTestStores(t)
	seedEmbeddings(t, stores, 5)

	it := NewRecordIterator(stores.Embeddings, 2)

	var contents []string
	err := it.ForEach(context.Background(), 3, func(batch []*core.EmbeddingRecord) error {
		for _, record := range batch {
			contents = append(contents, record.Content)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"record 3", "record 4"}, contents)
}

func TestIteratorEmptyStore(t *testing.T) {
	stores := newTestStores(t)

	it := NewRecordIterator(stores.Embeddings, 10)
	called := false
	err := it.ForEach(context.Background(), 0, func([]*core.EmbeddingRecord) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestIteratorStopsOnBatchError(t *testing.T) {
	stores := newTestStores(t)
	seedEmbeddings(t, stores, 6)

	it := NewRecordIterator(stores.Embeddings, 2)
	batchErr := errors.New("batch failed")

	calls := 0
	err := it.ForEach(context.Background(), 0, func([]*core.EmbeddingRecord) error {
		calls++
		if calls == 2 {
			return batchErr
		}
		return nil
	})
	assert.ErrorIs(t, err, batchErr)
	assert.Equal(t, 2, calls)
}

func TestIteratorDefaultBatchSize(t *testing.T) {
	stores := newTestStores(t)
	it := NewRecordIterator(stores.Embeddings, 0)
	assert.Equal(t, DefaultBatchSize, it.batchSize)
}
