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


package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/quantabase/fingraph/ai"
	"github.com/quantabase/fingraph/extract"
	"github.com/quantabase/fingraph/ontology"
	"github.com/quantabase/fingraph/storage"
	"golang.org/x/sync/errgroup"
)

// Document is one raw financial report awaiting ingestion. ID may be empty,
// in which case a stable content-derived ID is assigned during parsing.
type Document struct {
	ID     string
	Format string
	Raw    []byte
}

// Pipeline orchestrates document ingestion: format extraction, ontology
// class registration, observation recording, quality scoring, and embedding
// indexing. Distinct documents process in parallel; within one document the
// stages run as a strict sequence. Embedding work runs on a bounded worker
// pool detached from the caller's context, so a slow embedding batch never
// blocks unrelated ingestion and in-flight documents run to completion even
// if the original caller disconnects.
type Pipeline struct {
	registry      *ontology.Registry
	builder       *Builder
	indexer       *Indexer
	embeddingPool *ants.Pool
	parallelism   int
	invalidate    func()
	wg            sync.WaitGroup
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the embedding worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embeddingPool = pool
		return nil
	}
}

// WithParallelism bounds how many documents ingest concurrently.
// Default is runtime.NumCPU().
func WithParallelism(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			n = 1
		}
		p.parallelism = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithInvalidator registers a hook invoked after writes that affect graph
// construction (new classes, observations, or embeddings). The graph cache
// uses this to drop stale builds.
func WithInvalidator(fn func()) Option {
	return func(p *Pipeline) error {
		p.invalidate = fn
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	registry *ontology.Registry,
	datasets storage.DatasetRepository,
	observations storage.ObservationRepository,
	embeddings storage.EmbeddingRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	logger := slog.Default()

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		registry:      registry,
		embeddingPool: pool,
		parallelism:   runtime.NumCPU(),
		invalidate:    func() {},
		logger:        logger,
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	builder, err := NewBuilder(datasets, observations, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	indexer, err := NewIndexer(embeddings, provider.Embedder(), ai.DefaultDimension, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}

	p.builder = builder
	p.indexer = indexer
	return p, nil
}

// IngestDocument runs one document through the full pipeline. The returned
// Result is always non-nil; a fatal parse failure is reported in Result.Err
// with nothing persisted for the document. Embedding indexing is submitted
// asynchronously; use Wait to drain it.
func (p *Pipeline) IngestDocument(ctx context.Context, doc Document) *Result {
	records, meta, err := extract.Parse(doc.Raw, doc.Format, doc.ID)
	if err != nil {
		p.logger.Error("document parse failed", "document_id", doc.ID, "format", doc.Format, "err", err)
		return &Result{DocumentID: doc.ID, SourceFormat: doc.Format, Err: err}
	}

	result := &Result{
		DocumentID:   meta.DocumentID,
		SourceFormat: meta.SourceFormat,
		Records:      len(records),
		QualityScore: extract.ScoreBatch(records),
		Metadata:     meta,
	}

	dataset, err := p.builder.GetOrCreateDataset(ctx, meta, records)
	if err != nil {
		result.Err = err
		return result
	}
	result.DatasetID = dataset.ID

	entities := make([]IndexedEntity, 0, len(records))
	for _, record := range records {
		classID, created, err := p.registry.EnsureClass(ctx, record.EntityType)
		if err != nil {
			result.Err = err
			return result
		}
		if created {
			result.ClassesCreated++
		}

		obsID, err := p.builder.RecordObservation(ctx, dataset, classID, record)
		if err != nil {
			result.Err = err
			return result
		}
		result.Observations = append(result.Observations, obsID)

		entities = append(entities, IndexedEntity{
			ObservationID: obsID,
			ClassID:       classID,
			Name:          record.Name,
			Properties:    record.Properties,
		})
	}

	if result.ClassesCreated > 0 {
		p.invalidate()
	}

	p.submitIndexing(meta.DocumentID, doc.Raw, entities)

	p.logger.Info("document ingested",
		"document_id", meta.DocumentID,
		"format", meta.SourceFormat,
		"records", result.Records,
		"classes_created", result.ClassesCreated,
		"quality", result.QualityScore)

	return result
}

// IngestDocuments ingests a batch of documents with bounded parallelism.
// Results are returned in input order; a failing document never cancels its
// siblings.
func (p *Pipeline) IngestDocuments(ctx context.Context, docs []Document) []*Result {
	results := make([]*Result, len(docs))

	var g errgroup.Group
	g.SetLimit(p.parallelism)
	for i, doc := range docs {
		g.Go(func() error {
			results[i] = p.IngestDocument(ctx, doc)
			return nil
		})
	}
	g.Wait()

	return results
}

// submitIndexing schedules embedding work on the pool. The job uses a
// detached context: once a document's records have begun being persisted the
// pipeline runs to completion regardless of the caller.
func (p *Pipeline) submitIndexing(documentID string, raw []byte, entities []IndexedEntity) {
	p.wg.Add(1)
	err := p.embeddingPool.Submit(func() {
		defer p.wg.Done()
		ctx := context.Background()

		if err := p.indexer.IndexDocument(ctx, documentID, raw); err != nil {
			p.logger.Error("error indexing document", "document_id", documentID, "err", err)
		}
		indexed := p.indexer.IndexEntities(ctx, documentID, entities)
		p.logger.Debug("entities indexed", "document_id", documentID, "indexed", indexed, "total", len(entities))

		p.invalidate()
	})
	if err != nil {
		p.wg.Done()
		p.logger.Error("error submitting embedding work", "document_id", documentID, "err", err)
	}
}

// Wait blocks until all submitted embedding work has drained.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
