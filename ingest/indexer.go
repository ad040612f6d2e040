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
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/quantabase/fingraph/ai"
	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

// Text caps applied before embedding and storage.
const (
	documentTextCap    = 10000
	documentPreviewCap = 500
	entityPropsCap     = 800
)

// Indexer converts text for a document or entity into a fixed-dimension
// vector and stores it alongside provenance metadata. Document-level and
// per-entity embeddings are indexed independently so search can operate at
// either granularity. The indexer does not dedup embeddings; callers decide
// re-index policy.
type Indexer struct {
	embeddings storage.EmbeddingRepository
	embedder   ai.Embedder
	dimension  int
	logger     *slog.Logger
}

// IndexedEntity is the per-entity input to IndexEntities: one persisted
// observation plus the extraction it came from.
type IndexedEntity struct {
	ObservationID string
	ClassID       string
	Name          string
	Properties    map[string]string
}

// NewIndexer creates an embedding indexer. Vectors whose length differs
// from dimension are refused at insert time.
func NewIndexer(embeddings storage.EmbeddingRepository, embedder ai.Embedder, dimension int, logger *slog.Logger) (*Indexer, error) {
	if embeddings == nil {
		return nil, ErrEmbeddingRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrAIProviderRequired
	}
	if dimension <= 0 {
		dimension = ai.DefaultDimension
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{
		embeddings: embeddings,
		embedder:   embedder,
		dimension:  dimension,
		logger:     logger.With("component", "embedding-indexer"),
	}, nil
}

// Index embeds one text and stores the resulting record.
func (ix *Indexer) Index(ctx context.Context, content, embedText string, kind core.SourceKind, sourceID, classID string, metadata map[string]string) (*core.EmbeddingRecord, error) {
	vector, err := ix.embedder.EmbedText(ctx, embedText)
	if err != nil {
		return nil, err
	}
	if len(vector) != ix.dimension {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, ix.dimension, len(vector))
	}

	record := &core.EmbeddingRecord{
		Content:         content,
		Vector:          vector,
		SourceKind:      kind,
		SourceID:        sourceID,
		OntologyClassID: classID,
		Metadata:        metadata,
	}
	if _, err := ix.embeddings.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// IndexDocument stores one document-level embedding. The raw document text
// is capped before embedding; the stored content keeps a short preview.
func (ix *Indexer) IndexDocument(ctx context.Context, documentID string, raw []byte) error {
	text := truncate(string(raw), documentTextCap)
	content := fmt.Sprintf("Document %s: %s", documentID, truncate(text, documentPreviewCap))

	_, err := ix.Index(ctx, content, text, core.SourceDocument, documentID, "", map[string]string{
		"document_id": documentID,
	})
	if err != nil {
		ix.logger.Error("document embedding failed", "document_id", documentID, "err", err)
		return err
	}
	return nil
}

// IndexEntities stores one embedding per entity. An embedding failure skips
// the affected entity and the rest of the batch proceeds; the number of
// successfully indexed entities is returned.
func (ix *Indexer) IndexEntities(ctx context.Context, documentID string, entities []IndexedEntity) int {
	indexed := 0
	for _, entity := range entities {
		name := entity.Name
		if name == "" {
			name = "Unnamed"
		}
		props, err := json.Marshal(entity.Properties)
		if err != nil {
			props = []byte("{}")
		}
		content := fmt.Sprintf("%s: %s. Key props: %s", entity.ClassID, name, truncate(string(props), entityPropsCap))

		_, err = ix.Index(ctx, content, content, core.SourceEntity, entity.ObservationID, entity.ClassID, map[string]string{
			"document_id": documentID,
		})
		if err != nil {
			ix.logger.Warn("entity embedding skipped",
				"document_id", documentID, "observation_id", entity.ObservationID, "err", err)
			continue
		}
		indexed++
	}
	return indexed
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
