package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

func newTestClass(classID string) *core.OntologyClass {
	return &core.OntologyClass{
		ClassID:    classID,
		Label:      core.LabelFromClassID(classID),
		Domain:     "financial",
		ClassType:  "entity",
		Confidence: 0.9,
		Status:     core.StatusPendingReview,
		Properties: map[string]string{"auto_generated": "true"},
	}
}

func TestClassInsertAndGet(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	created, err := stores.Classes.InsertIfAbsent(ctx, newTestClass("revenue_account"))
	if err != nil {
		t.Fatalf("Failed to insert class: %v", err)
	}
	if !created {
		t.Fatal("Expected class to be created")
	}

	class, err := stores.Classes.GetClass(ctx, "revenue_account")
	if err != nil {
		t.Fatalf("Failed to get class: %v", err)
	}
	if class.Label != "Revenue Account" {
		t.Fatalf("Expected label 'Revenue Account', got %q", class.Label)
	}
	if class.InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}
}

func TestClassInsertIfAbsentIsIdempotent(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	created, err := stores.Classes.InsertIfAbsent(ctx, newTestClass("expense_account"))
	if err != nil {
		t.Fatalf("Failed to insert class: %v", err)
	}
	if !created {
		t.Fatal("Expected first insert to create")
	}

	// Second insert with different metadata must not overwrite.
	second := newTestClass("expense_account")
	second.Confidence = 0.1
	created, err = stores.Classes.InsertIfAbsent(ctx, second)
	if err != nil {
		t.Fatalf("Failed on second insert: %v", err)
	}
	if created {
		t.Fatal("Expected second insert to be a no-op")
	}

	class, err := stores.Classes.GetClass(ctx, "expense_account")
	if err != nil {
		t.Fatalf("Failed to get class: %v", err)
	}
	if class.Confidence != 0.9 {
		t.Fatalf("Expected original confidence 0.9, got %v", class.Confidence)
	}
}

func TestClassGetMissing(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	_, err = stores.Classes.GetClass(context.Background(), "nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestClassUpdateStatus(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	if _, err := stores.Classes.InsertIfAbsent(ctx, newTestClass("company")); err != nil {
		t.Fatalf("Failed to insert class: %v", err)
	}

	if err := stores.Classes.UpdateStatus(ctx, "company", core.StatusActive); err != nil {
		t.Fatalf("Failed to update status: %v", err)
	}

	class, err := stores.Classes.GetClass(ctx, "company")
	if err != nil {
		t.Fatalf("Failed to get class: %v", err)
	}
	if class.Status != core.StatusActive {
		t.Fatalf("Expected active status, got %v", class.Status)
	}
	if !class.UpdatedAt.After(class.InsertedAt) && !class.UpdatedAt.Equal(class.InsertedAt) {
		t.Fatal("Expected UpdatedAt to advance")
	}

	err = stores.Classes.UpdateStatus(ctx, "missing", core.StatusActive)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for missing class, got %v", err)
	}
}

func TestClassListByStatus(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	for _, id := range []string{"company", "revenue_account", "expense_account"} {
		if _, err := stores.Classes.InsertIfAbsent(ctx, newTestClass(id)); err != nil {
			t.Fatalf("Failed to insert %s: %v", id, err)
		}
	}
	if err := stores.Classes.UpdateStatus(ctx, "company", core.StatusActive); err != nil {
		t.Fatalf("Failed to update status: %v", err)
	}

	active, err := stores.Classes.ListClasses(ctx, core.StatusActive)
	if err != nil {
		t.Fatalf("Failed to list active: %v", err)
	}
	if len(active) != 1 || active[0].ClassID != "company" {
		t.Fatalf("Expected only 'company' active, got %d classes", len(active))
	}

	all, err := stores.Classes.ListClasses(ctx, 0)
	if err != nil {
		t.Fatalf("Failed to list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 classes, got %d", len(all))
	}
}
