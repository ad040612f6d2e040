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
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

// Builder groups extracted entities into a per-document dataset and persists
// each as a financial observation. Observation recording is append-only;
// corrections are a moderation workflow outside this pipeline.
type Builder struct {
	datasets     storage.DatasetRepository
	observations storage.ObservationRepository
	logger       *slog.Logger
}

// NewBuilder creates an observation builder over the given stores.
func NewBuilder(datasets storage.DatasetRepository, observations storage.ObservationRepository, logger *slog.Logger) (*Builder, error) {
	if datasets == nil {
		return nil, ErrDatasetRepositoryRequired
	}
	if observations == nil {
		return nil, ErrObservationRepositoryRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		datasets:     datasets,
		observations: observations,
		logger:       logger.With("component", "observation-builder"),
	}, nil
}

// GetOrCreateDataset returns the dataset for a document, creating it on
// first sight. Period and currency hints are taken from the first extraction
// record carrying them (the company record, for both report formats). A lost
// creation race is recovered by re-reading the now-existing dataset, so the
// operation is idempotent per document ID.
func (b *Builder) GetOrCreateDataset(ctx context.Context, meta *core.ParseMetadata, records []*core.ExtractionRecord) (*core.FinancialDataset, error) {
	existing, err := b.datasets.FindByDocument(ctx, meta.DocumentID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	dataset := &core.FinancialDataset{
		Name:             fmt.Sprintf("Financial Data %s", meta.DocumentID),
		Description:      fmt.Sprintf("Financial data imported from %s document %s", meta.SourceFormat, meta.DocumentID),
		SourceDocumentID: meta.DocumentID,
		Currency:         "USD",
	}
	for _, record := range records {
		if !record.PeriodStart.IsZero() && !record.PeriodEnd.IsZero() {
			dataset.PeriodStart = record.PeriodStart
			dataset.PeriodEnd = record.PeriodEnd
			if record.Currency != "" {
				dataset.Currency = record.Currency
			}
			break
		}
	}

	_, err = b.datasets.Insert(ctx, dataset)
	if err == nil {
		b.logger.Info("dataset created", "dataset_id", dataset.ID, "document_id", meta.DocumentID)
		return dataset, nil
	}
	if !errors.Is(err, storage.ErrDuplicateKey) {
		return nil, err
	}
	// Another ingestion of the same document created it first.
	return b.datasets.FindByDocument(ctx, meta.DocumentID)
}

// RecordObservation persists one extraction record as a financial
// observation in the dataset. The full extraction properties travel in the
// observation metadata for traceability back to the source entity.
func (b *Builder) RecordObservation(ctx context.Context, dataset *core.FinancialDataset, classID string, record *core.ExtractionRecord) (string, error) {
	accountID := record.AccountID
	if accountID == "" {
		accountID = fmt.Sprintf("auto_%s_%s", classID, uuid.NewString()[:8])
	}

	metadata := make(map[string]string, len(record.Properties)+3)
	for k, v := range record.Properties {
		metadata[k] = v
	}
	metadata["confidence"] = strconv.FormatFloat(record.Confidence, 'f', -1, 64)
	if record.ParentName != "" {
		metadata["parent_name"] = record.ParentName
	}
	for key, value := range record.TimeSeries {
		metadata["period_"+key] = strconv.FormatFloat(value, 'f', -1, 64)
	}

	obs := &core.FinancialObservation{
		DatasetID:        dataset.ID,
		SourceDocumentID: dataset.SourceDocumentID,
		ObservationType:  classID,
		AccountID:        accountID,
		AccountName:      record.Name,
		Amount:           record.TotalAmount(),
		Currency:         record.Currency,
		PeriodStart:      record.PeriodStart,
		PeriodEnd:        record.PeriodEnd,
		Confidence:       record.Confidence,
		Metadata:         metadata,
	}

	return b.observations.Insert(ctx, obs)
}
