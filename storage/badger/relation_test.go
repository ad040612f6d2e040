package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

func newTestRelation(subject, predicate, object string) *core.OntologyRelation {
	return &core.OntologyRelation{
		SubjectClassID: subject,
		Predicate:      predicate,
		ObjectClassID:  object,
		Confidence:     0.8,
		Status:         core.StatusActive,
	}
}

func TestRelationUpsert(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	for _, id := range []string{"company", "revenue_account"} {
		if _, err := stores.Classes.InsertIfAbsent(ctx, newTestClass(id)); err != nil {
			t.Fatalf("Failed to insert %s: %v", id, err)
		}
	}

	rel := newTestRelation("company", "generates", "revenue_account")
	if err := stores.Relations.Upsert(ctx, rel); err != nil {
		t.Fatalf("Failed to upsert relation: %v", err)
	}
	firstInserted := rel.InsertedAt

	// Upsert again with a new confidence. InsertedAt must survive.
	rel2 := newTestRelation("company", "generates", "revenue_account")
	rel2.Confidence = 0.95
	if err := stores.Relations.Upsert(ctx, rel2); err != nil {
		t.Fatalf("Failed to re-upsert relation: %v", err)
	}
	if !rel2.InsertedAt.Equal(firstInserted) {
		t.Fatal("Expected InsertedAt to be preserved on upsert")
	}

	active, err := stores.Relations.ListActive(ctx, "")
	if err != nil {
		t.Fatalf("Failed to list relations: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("Expected 1 relation, got %d", len(active))
	}
	if active[0].Confidence != 0.95 {
		t.Fatalf("Expected updated confidence 0.95, got %v", active[0].Confidence)
	}
}

func TestRelationRejectsDanglingEndpoints(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	if _, err := stores.Classes.InsertIfAbsent(ctx, newTestClass("company")); err != nil {
		t.Fatalf("Failed to insert class: %v", err)
	}

	err = stores.Relations.Upsert(ctx, newTestRelation("company", "uses", "ghost"))
	if !errors.Is(err, storage.ErrDanglingRelation) {
		t.Fatalf("Expected ErrDanglingRelation, got %v", err)
	}

	err = stores.Relations.Upsert(ctx, newTestRelation("ghost", "uses", "company"))
	if !errors.Is(err, storage.ErrDanglingRelation) {
		t.Fatalf("Expected ErrDanglingRelation, got %v", err)
	}
}

func TestRelationListActiveFiltersStatusAndDomain(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	other := newTestClass("warehouse")
	other.Domain = "logistics"
	for _, class := range []*core.OntologyClass{newTestClass("company"), newTestClass("revenue_account"), other} {
		if _, err := stores.Classes.InsertIfAbsent(ctx, class); err != nil {
			t.Fatalf("Failed to insert class: %v", err)
		}
	}

	if err := stores.Relations.Upsert(ctx, newTestRelation("company", "generates", "revenue_account")); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}
	if err := stores.Relations.Upsert(ctx, newTestRelation("warehouse", "serves", "company")); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}
	pending := newTestRelation("company", "owns", "warehouse")
	pending.Status = core.StatusPendingReview
	if err := stores.Relations.Upsert(ctx, pending); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	financial, err := stores.Relations.ListActive(ctx, "financial")
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(financial) != 1 || financial[0].Predicate != "generates" {
		t.Fatalf("Expected only the 'generates' relation, got %d", len(financial))
	}

	all, err := stores.Relations.ListActive(ctx, "")
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 active relations, got %d", len(all))
	}
}
