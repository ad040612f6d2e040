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


package storage

import (
	"github.com/quantabase/fingraph/core"
)

// MarshalClass serializes an OntologyClass to bytes.
func MarshalClass(class *core.OntologyClass) []byte {
	buf := make([]byte, core.OntologyClassMUS.Size(*class))
	core.OntologyClassMUS.Marshal(*class, buf)
	return buf
}

// UnmarshalClass deserializes an OntologyClass from bytes.
func UnmarshalClass(data []byte) (*core.OntologyClass, error) {
	class, _, err := core.OntologyClassMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// MarshalRelation serializes an OntologyRelation to bytes.
func MarshalRelation(relation *core.OntologyRelation) []byte {
	buf := make([]byte, core.OntologyRelationMUS.Size(*relation))
	core.OntologyRelationMUS.Marshal(*relation, buf)
	return buf
}

// UnmarshalRelation deserializes an OntologyRelation from bytes.
func UnmarshalRelation(data []byte) (*core.OntologyRelation, error) {
	relation, _, err := core.OntologyRelationMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &relation, nil
}

// MarshalDataset serializes a FinancialDataset to bytes.
func MarshalDataset(dataset *core.FinancialDataset) []byte {
	buf := make([]byte, core.DatasetMUS.Size(*dataset))
	core.DatasetMUS.Marshal(*dataset, buf)
	return buf
}

// UnmarshalDataset deserializes a FinancialDataset from bytes.
func UnmarshalDataset(data []byte) (*core.FinancialDataset, error) {
	dataset, _, err := core.DatasetMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &dataset, nil
}

// MarshalObservation serializes a FinancialObservation to bytes.
func MarshalObservation(obs *core.FinancialObservation) []byte {
	buf := make([]byte, core.ObservationMUS.Size(*obs))
	core.ObservationMUS.Marshal(*obs, buf)
	return buf
}

// UnmarshalObservation deserializes a FinancialObservation from bytes.
func UnmarshalObservation(data []byte) (*core.FinancialObservation, error) {
	obs, _, err := core.ObservationMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &obs, nil
}

// MarshalEmbeddingRecord serializes an EmbeddingRecord to bytes.
func MarshalEmbeddingRecord(record *core.EmbeddingRecord) []byte {
	buf := make([]byte, core.EmbeddingRecordMUS.Size(*record))
	core.EmbeddingRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalEmbeddingRecord deserializes an EmbeddingRecord from bytes.
func UnmarshalEmbeddingRecord(data []byte) (*core.EmbeddingRecord, error) {
	record, _, err := core.EmbeddingRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	buf := make([]byte, core.CheckpointMUS.Size(*checkpoint))
	core.CheckpointMUS.Marshal(*checkpoint, buf)
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	checkpoint, _, err := core.CheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &checkpoint, nil
}
