// Package ontology maintains the canonical class and relation definitions
// the knowledge graph is built over.
//
// The Registry deduplicates entity types into ontology classes keyed by a
// deterministic slug, creates new classes in pending_review for later
// approval or rejection, and records typed relations between classes. The
// class store's atomic conditional insert is the single synchronization
// point for concurrent document ingestion.
package ontology
