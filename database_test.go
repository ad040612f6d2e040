package fingraph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Verify components are initialized
		assert.NotNil(t, db.Registry())
		assert.NotNil(t, db.GraphCache())
		assert.NotNil(t, db.ClassRepository())
		assert.NotNil(t, db.DatasetRepository())
		assert.NotNil(t, db.ObservationRepository())
		assert.NotNil(t, db.EmbeddingRepository())
		assert.NotNil(t, db.CheckpointRepository())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("in-memory storage", func(t *testing.T) {
		db, err := NewDatabase("", WithInMemoryStorage())
		require.NoError(t, err)
		require.NotNil(t, db)
		assert.NoError(t, db.Close())
	})
}

func TestDatabase_Close(t *testing.T) {
	tmpDir := t.TempDir()
	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Close()
	assert.NoError(t, err)
}

func TestDatabase_FactoryMethods(t *testing.T) {
	db, err := NewDatabase("", WithInMemoryStorage())
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := db.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create searcher", func(t *testing.T) {
		searcher, err := db.NewSearcher()
		require.NoError(t, err)
		require.NotNil(t, searcher)
	})

	t.Run("can create reindexer", func(t *testing.T) {
		r := db.NewReindexer(nil, os.Stderr)
		require.NotNil(t, r)
	})
}

func TestDatabase_SeedAndGraph(t *testing.T) {
	db, err := NewDatabase("", WithInMemoryStorage())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.Registry().Seed(ctx))

	g, err := db.GraphCache().Graph(ctx)
	require.NoError(t, err)

	// Seeded active classes become nodes; pending ones do not.
	assert.True(t, g.HasNode("customer"))
	assert.True(t, g.HasNode("invoice"))
	assert.False(t, g.HasNode("tax_category"))
	assert.Greater(t, g.EdgeCount(), 0)
}
