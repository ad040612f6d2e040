package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

func newTestDataset(documentID string) *core.FinancialDataset {
	return &core.FinancialDataset{
		Name:             "Profit and Loss",
		Description:      "Monthly P&L report",
		SourceDocumentID: documentID,
		PeriodStart:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:        time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Currency:         "USD",
	}
}

func TestDatasetInsertAndFind(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	dataset := newTestDataset("doc-1")
	id, err := stores.Datasets.Insert(ctx, dataset)
	if err != nil {
		t.Fatalf("Failed to insert dataset: %v", err)
	}
	if id == "" {
		t.Fatal("Expected dataset ID to be assigned")
	}
	if dataset.ID != id {
		t.Fatalf("Expected dataset ID %q, got %q", id, dataset.ID)
	}

	found, err := stores.Datasets.FindByDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Failed to find dataset: %v", err)
	}
	if found.ID != dataset.ID {
		t.Fatalf("Expected ID %q, got %q", dataset.ID, found.ID)
	}
	if found.Currency != "USD" {
		t.Fatalf("Expected currency USD, got %q", found.Currency)
	}
	if !found.InsertedAt.Equal(dataset.InsertedAt) {
		t.Fatalf("Expected InsertedAt to round-trip, got %v want %v", found.InsertedAt, dataset.InsertedAt)
	}
}

func TestDatasetOnePerDocument(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	if _, err := stores.Datasets.Insert(ctx, newTestDataset("doc-1")); err != nil {
		t.Fatalf("Failed to insert dataset: %v", err)
	}

	_, err = stores.Datasets.Insert(ctx, newTestDataset("doc-1"))
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestDatasetFindMissing(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	_, err = stores.Datasets.FindByDocument(context.Background(), "nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDatasetList(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	for _, doc := range []string{"doc-1", "doc-2", "doc-3"} {
		if _, err := stores.Datasets.Insert(ctx, newTestDataset(doc)); err != nil {
			t.Fatalf("Failed to insert dataset for %s: %v", doc, err)
		}
	}

	datasets, err := stores.Datasets.ListDatasets(ctx)
	if err != nil {
		t.Fatalf("Failed to list datasets: %v", err)
	}
	if len(datasets) != 3 {
		t.Fatalf("Expected 3 datasets, got %d", len(datasets))
	}
}
