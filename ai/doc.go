// Package ai defines the interfaces and configuration for embedding
// services used by the ingestion pipeline and semantic search.
//
// The package itself contains no provider implementations. Concrete
// providers live in subpackages: openai for OpenAI-compatible HTTP
// services and mock for deterministic test doubles. Callers depend on
// the Embedder and Provider interfaces and choose an implementation
// at wiring time.
package ai
