// Copyright 2026 Quantabase
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage provides the storage abstraction layer for fingraph.
//
// This package defines the repository interfaces that decouple the ingestion,
// graph, and search components from any concrete persistence service. The
// core never owns a wire format or a database; it talks to these narrow
// contracts and treats the store as an external collaborator.
//
// # Repositories
//
//   - ClassRepository: ontology class definitions with atomic insert-if-absent
//   - RelationRepository: directed class-to-class relations
//   - DatasetRepository: one dataset per source document
//   - ObservationRepository: append-only financial observations
//   - EmbeddingRepository: embedding records with full-scan and similarity search
//   - CheckpointRepository: resumable progress for long-running processors
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages (badger.NewClassRepository,
// etc.) return these interfaces to enforce abstraction and keep alternative
// backends (a hosted datastore, an ANN-indexed vector store) swappable.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. Insert-if-absent on ClassRepository is the
// single synchronization point relied upon by concurrent document ingestion.
package storage
