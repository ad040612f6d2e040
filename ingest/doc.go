// Package ingest runs raw financial documents through the full ingestion
// pipeline: format extraction, ontology class registration, dataset and
// observation recording, data-quality scoring, and embedding indexing.
//
// Distinct documents are independent and ingest in parallel under a bounded
// limit. Within one document the stages form a strict sequence. Embedding
// computation runs on its own bounded worker pool with a detached context:
// once persistence for a document has begun, its pipeline runs to
// completion even if the caller disconnects. Partial results are safe
// because class creation is idempotent and observation recording is
// append-only.
package ingest
