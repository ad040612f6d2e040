package reindex

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/quantabase/fingraph/ai/mock"
	"github.com/quantabase/fingraph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}
}

func TestReindexerReembedsAllRecords(t *testing.T) {
	stores := newTestStores(t)
	ids := seedEmbeddings(t, stores, 5)
	embedder := mock.NewMockEmbedder()

	var buf bytes.Buffer
	r := NewReindexer(stores.Embeddings, stores.Checkpoints, embedder, testConfig(), &buf)
	require.NoError(t, r.Run(context.Background()))

	// Every stored vector was replaced with a normalized embedding of its
	// content.
	err := stores.Embeddings.Scan(context.Background(), func(record *core.EmbeddingRecord) (bool, error) {
		var norm float64
		for _, v := range record.Vector {
			norm += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, norm, 1e-4)
		return true, nil
	})
	require.NoError(t, err)

	checkpoint, err := stores.Checkpoints.LoadCheckpoint(context.Background(), ProcessorType)
	require.NoError(t, err)
	require.NotNil(t, checkpoint)
	assert.Equal(t, 5, checkpoint.Processed)
	assert.Equal(t, ids[len(ids)-1], checkpoint.LastSourceID)

	assert.Contains(t, buf.String(), "Re-indexing complete")
}

func TestReindexerEmptyStore(t *testing.T) {
	stores := newTestStores(t)

	var buf bytes.Buffer
	r := NewReindexer(stores.Embeddings, stores.Checkpoints, mock.NewMockEmbedder(), testConfig(), &buf)
	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, buf.String(), "No embedding records found")
}

func TestReindexerResumesFromCheckpoint(t *testing.T) {
	stores := newTestStores(t)
	seedEmbeddings(t, stores, 6)

	embedder := mock.NewMockEmbedder()
	var mu sync.Mutex
	var embedded []string
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		mu.Lock()
		embedded = append(embedded, texts...)
		mu.Unlock()
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{1, 0}
		}
		return vectors, nil
	}

	require.NoError(t, stores.Checkpoints.SaveCheckpoint(context.Background(), &core.Checkpoint{
		ProcessorType: ProcessorType,
		Processed:     4,
	}))

	config := testConfig()
	config.Resume = true
	var buf bytes.Buffer
	r := NewReindexer(stores.Embeddings, stores.Checkpoints, embedder, config, &buf)
	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, []string{"record 4", "record 5"}, embedded)
	assert.Contains(t, buf.String(), "resuming at: 4")
}

func TestReindexerCheckpointCoversEverything(t *testing.T) {
	stores := newTestStores(t)
	seedEmbeddings(t, stores, 3)

	require.NoError(t, stores.Checkpoints.SaveCheckpoint(context.Background(), &core.Checkpoint{
		ProcessorType: ProcessorType,
		Processed:     3,
	}))

	config := testConfig()
	config.Resume = true
	var buf bytes.Buffer
	r := NewReindexer(stores.Embeddings, stores.Checkpoints, mock.NewMockEmbedder(), config, &buf)
	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, buf.String(), "Nothing to do")
}

func TestReindexerRetriesTransientFailures(t *testing.T) {
	stores := newTestStores(t)
	seedEmbeddings(t, stores, 2)

	embedder := mock.NewMockEmbedder()
	attempts := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("embedding host unreachable")
		}
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{0, 1}
		}
		return vectors, nil
	}

	var buf bytes.Buffer
	r := NewReindexer(stores.Embeddings, stores.Checkpoints, embedder, testConfig(), &buf)
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 2, attempts)
}

func TestReindexerPersistentFailureSurfaces(t *testing.T) {
	stores := newTestStores(t)
	seedEmbeddings(t, stores, 2)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding host unreachable")
	}

	var buf bytes.Buffer
	r := NewReindexer(stores.Embeddings, stores.Checkpoints, embedder, testConfig(), &buf)
	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process batch")
}
