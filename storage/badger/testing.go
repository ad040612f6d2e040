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


package badger

import "github.com/quantabase/fingraph/storage"

// Stores bundles every repository over one backend.
type Stores struct {
	Classes      storage.ClassRepository
	Relations    storage.RelationRepository
	Datasets     storage.DatasetRepository
	Observations storage.ObservationRepository
	Embeddings   storage.EmbeddingRepository
	Checkpoints  storage.CheckpointRepository
	Backend      *Backend
}

// Close closes every repository, then the backend.
func (s *Stores) Close() error {
	s.Classes.Close()
	s.Relations.Close()
	s.Datasets.Close()
	s.Observations.Close()
	s.Embeddings.Close()
	s.Checkpoints.Close()
	return s.Backend.Close()
}

// OpenStores creates every repository over a backend at filePath.
// An empty filePath with inMemory true yields a throwaway in-memory store.
func OpenStores(filePath string, inMemory bool) (*Stores, error) {
	backend, err := OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	classes, err := NewClassRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	relations, err := NewRelationRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	datasets, err := NewDatasetRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	observations, err := NewObservationRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	embeddings, err := NewEmbeddingRepository(backend)
	if err != nil {
		observations.Close()
		backend.Close()
		return nil, err
	}
	checkpoints, err := NewCheckpointRepository(backend)
	if err != nil {
		embeddings.Close()
		observations.Close()
		backend.Close()
		return nil, err
	}

	return &Stores{
		Classes:      classes,
		Relations:    relations,
		Datasets:     datasets,
		Observations: observations,
		Embeddings:   embeddings,
		Checkpoints:  checkpoints,
		Backend:      backend,
	}, nil
}

// NewMemoryStores creates in-memory repositories for testing.
// Caller must close the returned stores when done.
func NewMemoryStores() (*Stores, error) {
	return OpenStores("", true)
}
