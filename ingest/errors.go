package ingest

import "errors"

var (
	// ErrRegistryRequired is returned when an ontology registry is not provided.
	ErrRegistryRequired = errors.New("ontology registry required")

	// ErrDatasetRepositoryRequired is returned when a dataset repository is not provided.
	ErrDatasetRepositoryRequired = errors.New("dataset repository required")

	// ErrObservationRepositoryRequired is returned when an observation repository is not provided.
	ErrObservationRepositoryRequired = errors.New("observation repository required")

	// ErrEmbeddingRepositoryRequired is returned when an embedding repository is not provided.
	ErrEmbeddingRepositoryRequired = errors.New("embedding repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrDimensionMismatch is returned when the embedder produces a vector
	// whose length differs from the configured dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
