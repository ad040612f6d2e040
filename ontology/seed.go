package ontology

import (
	"context"

	"github.com/quantabase/fingraph/core"
)

// seedClass is one hand-curated class in the default financial ontology.
type seedClass struct {
	classID    string
	label      string
	classType  string
	confidence float64
	status     core.ClassStatus
	properties map[string]string
}

// seedRelation is one hand-curated relation in the default financial ontology.
type seedRelation struct {
	subject    string
	predicate  string
	object     string
	confidence float64
}

var seedClasses = []seedClass{
	{"financial_transaction", "Financial Transaction", "entity", 0.9, core.StatusActive,
		map[string]string{"description": "A movement of money between accounts"}},
	{"payment_method", "Payment Method", "entity", 0.88, core.StatusActive,
		map[string]string{"method_type": "electronic", "description": "Electronic payment method"}},
	{"customer", "Customer", "entity", 0.92, core.StatusActive,
		map[string]string{"entity_type": "customer", "description": "Customer entity"}},
	{"invoice", "Invoice", "document", 0.85, core.StatusActive,
		map[string]string{"document_type": "invoice", "description": "Invoice document"}},
	{"tax_category", "Tax Category", "category", 0.75, core.StatusPendingReview,
		map[string]string{"category_type": "tax", "description": "Tax classification category"}},
	{"revenue_account", "Revenue Account", "entity", 0.9, core.StatusActive,
		map[string]string{"description": "Ledger account recording income"}},
	{"expense_account", "Expense Account", "entity", 0.9, core.StatusActive,
		map[string]string{"description": "Ledger account recording expenditure"}},
}

var seedRelations = []seedRelation{
	{"customer", "makes", "financial_transaction", 0.9},
	{"financial_transaction", "uses", "payment_method", 0.9},
	{"invoice", "generates", "financial_transaction", 0.9},
	{"customer", "receives", "invoice", 0.9},
	{"revenue_account", "applies", "tax_category", 0.85},
	{"expense_account", "applies", "tax_category", 0.85},
	{"payment_method", "processes", "revenue_account", 0.85},
}

// Seed installs the default financial ontology: a small set of curated
// classes and the relations connecting them. Seeding is idempotent;
// existing classes are left untouched and relations are upserted.
func (r *Registry) Seed(ctx context.Context) error {
	for _, seed := range seedClasses {
		class := &core.OntologyClass{
			ClassID:    seed.classID,
			Label:      seed.label,
			Domain:     DefaultDomain,
			ClassType:  seed.classType,
			Confidence: seed.confidence,
			Status:     seed.status,
			Properties: seed.properties,
		}
		if _, err := r.classes.InsertIfAbsent(ctx, class); err != nil {
			return err
		}
	}

	for _, seed := range seedRelations {
		if err := r.AddRelation(ctx, seed.subject, seed.predicate, seed.object, seed.confidence); err != nil {
			return err
		}
	}

	r.logger.Info("default ontology seeded",
		"classes", len(seedClasses), "relations", len(seedRelations))
	return nil
}
