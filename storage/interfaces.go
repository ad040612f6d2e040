package storage

import (
	"context"

	"github.com/quantabase/fingraph/core"
)

// Repository provides common operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ClassRepository provides operations for managing ontology classes.
type ClassRepository interface {
	Repository

	// GetClass retrieves a class by its deterministic class ID.
	// Returns ErrNotFound if the class doesn't exist.
	GetClass(ctx context.Context, classID string) (*core.OntologyClass, error)

	// InsertIfAbsent atomically creates the class unless one with the same
	// ClassID already exists. Returns created=false when the class was
	// already present; concurrent first-sightings of the same class must
	// converge to a single stored definition.
	InsertIfAbsent(ctx context.Context, class *core.OntologyClass) (created bool, err error)

	// UpdateStatus transitions a class to a new review status.
	// Returns ErrNotFound if the class doesn't exist.
	UpdateStatus(ctx context.Context, classID string, status core.ClassStatus) error

	// ListClasses retrieves all classes with the given status.
	// A zero status lists every class regardless of status.
	ListClasses(ctx context.Context, status core.ClassStatus) ([]*core.OntologyClass, error)
}

// RelationRepository provides operations for managing ontology relations.
type RelationRepository interface {
	Repository

	// Upsert stores a relation keyed by (subject, predicate, object).
	// Returns ErrDanglingRelation when either endpoint class is missing;
	// dangling relations are never persisted.
	Upsert(ctx context.Context, relation *core.OntologyRelation) error

	// ListActive retrieves all relations with StatusActive, optionally
	// filtered to those whose subject class belongs to the given domain.
	// An empty domain lists every active relation.
	ListActive(ctx context.Context, domain string) ([]*core.OntologyRelation, error)
}

// DatasetRepository provides operations for managing financial datasets.
type DatasetRepository interface {
	Repository

	// FindByDocument retrieves the dataset for a source document.
	// Returns ErrNotFound if no dataset exists for the document.
	FindByDocument(ctx context.Context, documentID string) (*core.FinancialDataset, error)

	// Insert stores a new dataset. Generates an ID when none is set.
	// Returns ErrDuplicateKey when a dataset already exists for the same
	// source document.
	Insert(ctx context.Context, dataset *core.FinancialDataset) (string, error)

	// ListDatasets retrieves all datasets.
	ListDatasets(ctx context.Context) ([]*core.FinancialDataset, error)
}

// ObservationFilter narrows an observation listing.
type ObservationFilter struct {
	DatasetID       string // empty matches any dataset
	ObservationType string // empty matches any type
	Limit           int    // 0 means no limit
}

// ObservationRepository provides append-only storage for observations.
type ObservationRepository interface {
	Repository

	// Insert stores a new observation. Generates an ID when none is set and
	// sets InsertedAt. Observations are never updated or deleted.
	Insert(ctx context.Context, obs *core.FinancialObservation) (string, error)

	// ListObservations retrieves observations matching the filter, in
	// insertion order.
	ListObservations(ctx context.Context, filter ObservationFilter) ([]*core.FinancialObservation, error)
}

// EmbeddingRepository provides storage and similarity search for embeddings.
// A vector-index-backed implementation may substitute the full scan as long
// as the observable contract is unchanged.
type EmbeddingRepository interface {
	Repository

	// Insert stores a new embedding record. Generates an ID when none is set.
	Insert(ctx context.Context, record *core.EmbeddingRecord) (string, error)

	// Update replaces an existing embedding record, typically after
	// re-indexing with a new model. Returns ErrNotFound if absent.
	Update(ctx context.Context, record *core.EmbeddingRecord) error

	// Scan visits every embedding record in insertion order. The walk stops
	// when fn returns false or an error.
	Scan(ctx context.Context, fn func(record *core.EmbeddingRecord) (bool, error)) error

	// FindSimilar finds embedding records similar to the given vector.
	// Returns records with cosine similarity >= minSimilarity, up to limit
	// results, ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float64, limit int) ([]*SimilarityMatch, error)
}

// SimilarityMatch pairs an embedding record with its similarity score.
type SimilarityMatch struct {
	Record *core.EmbeddingRecord
	Score  float64
}

// CheckpointRepository persists resumable processor progress.
type CheckpointRepository interface {
	Repository

	// SaveCheckpoint persists a checkpoint for a processor type.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a processor type.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error)
}
