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


package fingraph

import (
	"io"
	"log/slog"

	"github.com/quantabase/fingraph/ai"
	"github.com/quantabase/fingraph/ai/openai"
	"github.com/quantabase/fingraph/graph"
	"github.com/quantabase/fingraph/ingest"
	"github.com/quantabase/fingraph/ontology"
	"github.com/quantabase/fingraph/reindex"
	"github.com/quantabase/fingraph/search"
	"github.com/quantabase/fingraph/storage"
	storagebadger "github.com/quantabase/fingraph/storage/badger"
)

// Database bundles the storage backend, AI provider, ontology registry, and
// graph cache behind one handle. It is the intended entry point for
// applications embedding the module.
type Database struct {
	stores     *storagebadger.Stores
	provider   ai.Provider
	registry   *ontology.Registry
	graphCache *graph.Cache
	logger     *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	inMemory bool
	graphTTL []graph.CacheOption
}

// WithAIConfig overrides the embedding provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithInMemoryStorage keeps all data in memory, for tests and ephemeral use.
func WithInMemoryStorage() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithGraphCacheOptions passes options through to the graph cache.
func WithGraphCacheOptions(opts ...graph.CacheOption) DatabaseOption {
	return func(o *databaseOptions) {
		o.graphTTL = opts
	}
}

// NewDatabase opens (creating if necessary) a database at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	stores, err := storagebadger.OpenStores(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		stores.Close()
		return nil, err
	}

	registry := ontology.NewRegistry(stores.Classes, stores.Relations)

	builder := graph.NewBuilder(
		stores.Classes,
		stores.Relations,
		stores.Datasets,
		stores.Observations,
		stores.Embeddings,
	)

	return &Database{
		stores:     stores,
		provider:   provider,
		registry:   registry,
		graphCache: graph.NewCache(builder, options.graphTTL...),
		logger:     slog.Default(),
	}, nil
}

// Close releases the AI provider and storage backend.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}
	if err := db.stores.Close(); err != nil {
		db.logger.Error("error closing storage", "err", err)
		return err
	}
	return nil
}

// Registry returns the ontology class registry.
func (db *Database) Registry() *ontology.Registry {
	return db.registry
}

// GraphCache returns the cached knowledge graph view.
func (db *Database) GraphCache() *graph.Cache {
	return db.graphCache
}

// ClassRepository returns the ontology class store.
func (db *Database) ClassRepository() storage.ClassRepository {
	return db.stores.Classes
}

// DatasetRepository returns the financial dataset store.
func (db *Database) DatasetRepository() storage.DatasetRepository {
	return db.stores.Datasets
}

// ObservationRepository returns the financial observation store.
func (db *Database) ObservationRepository() storage.ObservationRepository {
	return db.stores.Observations
}

// EmbeddingRepository returns the embedding store.
func (db *Database) EmbeddingRepository() storage.EmbeddingRepository {
	return db.stores.Embeddings
}

// CheckpointRepository returns the processor checkpoint store.
func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.stores.Checkpoints
}

// NewIngestionPipeline creates a pipeline wired to this database. Writes
// through the pipeline invalidate the graph cache automatically.
func (db *Database) NewIngestionPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	withInvalidator := append([]ingest.Option{ingest.WithInvalidator(db.graphCache.Invalidate)}, opts...)
	return ingest.NewPipeline(
		db.registry,
		db.stores.Datasets,
		db.stores.Observations,
		db.stores.Embeddings,
		db.provider,
		withInvalidator...,
	)
}

// NewSearcher creates a semantic searcher over this database.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.stores.Embeddings, db.provider, opts...)
}

// NewReindexer creates a re-indexing run over this database's embeddings.
func (db *Database) NewReindexer(config *reindex.Config, progress io.Writer) *reindex.Reindexer {
	return reindex.NewReindexer(db.stores.Embeddings, db.stores.Checkpoints, db.provider.Embedder(), config, progress)
}
