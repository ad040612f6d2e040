package ingest

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
	storagebadger "github.com/quantabase/fingraph/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T) (*Builder, *storagebadger.Stores) {
	t.Helper()
	stores, err := storagebadger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })

	builder, err := NewBuilder(stores.Datasets, stores.Observations, slog.Default())
	require.NoError(t, err)
	return builder, stores
}

func testMeta(documentID string) *core.ParseMetadata {
	return &core.ParseMetadata{
		SourceFormat: "rootfi_api",
		DocumentID:   documentID,
	}
}

func TestGetOrCreateDatasetIdempotent(t *testing.T) {
	builder, _ := newTestBuilder(t)
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	records := []*core.ExtractionRecord{
		{EntityType: "company", Name: "Acme", Currency: "EUR", PeriodStart: start, PeriodEnd: end},
	}

	first, err := builder.GetOrCreateDataset(ctx, testMeta("doc-1"), records)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "EUR", first.Currency)
	assert.Equal(t, start, first.PeriodStart)

	second, err := builder.GetOrCreateDataset(ctx, testMeta("doc-1"), records)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestRecordObservationCarriesExtractionProperties(t *testing.T) {
	builder, stores := newTestBuilder(t)
	ctx := context.Background()

	dataset, err := builder.GetOrCreateDataset(ctx, testMeta("doc-1"), nil)
	require.NoError(t, err)

	record := &core.ExtractionRecord{
		EntityType: "revenue_account",
		Name:       "Sales",
		Currency:   "USD",
		TimeSeries: map[string]float64{"jan": 100, "feb": 250},
		ParentName: "Income",
		Properties: map[string]string{"account_category": "Income"},
		Confidence: 0.9,
	}

	obsID, err := builder.RecordObservation(ctx, dataset, "revenue_account", record)
	require.NoError(t, err)
	assert.NotEmpty(t, obsID)

	observations, err := stores.Observations.ListObservations(ctx, storage.ObservationFilter{DatasetID: dataset.ID})
	require.NoError(t, err)
	require.Len(t, observations, 1)

	obs := observations[0]
	assert.Equal(t, obsID, obs.ID)
	assert.Equal(t, "Sales", obs.AccountName)
	assert.Equal(t, 350.0, obs.Amount)
	assert.Equal(t, "revenue_account", obs.ObservationType)
	assert.Equal(t, "Income", obs.Metadata["account_category"])
	assert.Equal(t, "Income", obs.Metadata["parent_name"])
	assert.Equal(t, "0.9", obs.Metadata["confidence"])
	assert.Equal(t, "100", obs.Metadata["period_jan"])
	assert.NotEmpty(t, obs.AccountID)
}

func TestRecordObservationIsAppendOnly(t *testing.T) {
	builder, stores := newTestBuilder(t)
	ctx := context.Background()

	dataset, err := builder.GetOrCreateDataset(ctx, testMeta("doc-1"), nil)
	require.NoError(t, err)

	record := &core.ExtractionRecord{
		EntityType: "expense_account",
		Name:       "Rent",
		Amount:     500,
		HasAmount:  true,
		Currency:   "USD",
		Confidence: 0.9,
	}

	first, err := builder.RecordObservation(ctx, dataset, "expense_account", record)
	require.NoError(t, err)
	second, err := builder.RecordObservation(ctx, dataset, "expense_account", record)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	observations, err := stores.Observations.ListObservations(ctx, storage.ObservationFilter{DatasetID: dataset.ID})
	require.NoError(t, err)
	assert.Len(t, observations, 2)
}
