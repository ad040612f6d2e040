package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

func newTestObservation(datasetID, name string, amount float64) *core.FinancialObservation {
	return &core.FinancialObservation{
		DatasetID:        datasetID,
		SourceDocumentID: "doc-1",
		ObservationType:  "revenue_account",
		AccountName:      name,
		Amount:           amount,
		Currency:         "USD",
		PeriodStart:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:        time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Confidence:       0.95,
	}
}

func TestObservationInsertionOrder(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	for i := 0; i < 5; i++ {
		obs := newTestObservation("ds-1", fmt.Sprintf("Account %d", i), float64(i)*100)
		id, err := stores.Observations.Insert(ctx, obs)
		if err != nil {
			t.Fatalf("Failed to insert observation %d: %v", i, err)
		}
		if id == "" || obs.ID != id {
			t.Fatalf("Expected assigned ID on observation, got %q and %q", id, obs.ID)
		}
	}

	listed, err := stores.Observations.ListObservations(ctx, storage.ObservationFilter{})
	if err != nil {
		t.Fatalf("Failed to list observations: %v", err)
	}
	if len(listed) != 5 {
		t.Fatalf("Expected 5 observations, got %d", len(listed))
	}
	for i, obs := range listed {
		want := fmt.Sprintf("Account %d", i)
		if obs.AccountName != want {
			t.Fatalf("Expected %q at position %d, got %q", want, i, obs.AccountName)
		}
	}
}

func TestObservationFilterByDataset(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := stores.Observations.Insert(ctx, newTestObservation("ds-1", fmt.Sprintf("A%d", i), 100)); err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}
		if _, err := stores.Observations.Insert(ctx, newTestObservation("ds-2", fmt.Sprintf("B%d", i), 200)); err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}
	}

	listed, err := stores.Observations.ListObservations(ctx, storage.ObservationFilter{DatasetID: "ds-2"})
	if err != nil {
		t.Fatalf("Failed to list observations: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("Expected 3 observations, got %d", len(listed))
	}
	for _, obs := range listed {
		if obs.DatasetID != "ds-2" {
			t.Fatalf("Expected dataset ds-2, got %q", obs.DatasetID)
		}
	}
}

func TestObservationFilterByTypeAndLimit(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	for i := 0; i < 4; i++ {
		obs := newTestObservation("ds-1", fmt.Sprintf("Rev %d", i), 100)
		if _, err := stores.Observations.Insert(ctx, obs); err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}
	}
	expense := newTestObservation("ds-1", "Rent", 500)
	expense.ObservationType = "expense_account"
	if _, err := stores.Observations.Insert(ctx, expense); err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}

	listed, err := stores.Observations.ListObservations(ctx, storage.ObservationFilter{
		DatasetID:       "ds-1",
		ObservationType: "expense_account",
	})
	if err != nil {
		t.Fatalf("Failed to list observations: %v", err)
	}
	if len(listed) != 1 || listed[0].AccountName != "Rent" {
		t.Fatalf("Expected only 'Rent', got %d observations", len(listed))
	}

	limited, err := stores.Observations.ListObservations(ctx, storage.ObservationFilter{
		DatasetID: "ds-1",
		Limit:     2,
	})
	if err != nil {
		t.Fatalf("Failed to list observations: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("Expected 2 observations, got %d", len(limited))
	}
	if limited[0].AccountName != "Rev 0" || limited[1].AccountName != "Rev 1" {
		t.Fatal("Expected limit to keep earliest observations")
	}
}
