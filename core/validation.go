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


package core

import "fmt"

// ValidateClass validates an OntologyClass according to domain rules.
//
// Validation rules:
//   - ClassID must not be empty
//   - Confidence must be in [0,1]
//   - Status must be a valid ClassStatus
//
// NOT validated:
//   - Label (derived from ClassID when absent)
//   - Properties (open map, format-specific)
func ValidateClass(class *OntologyClass) error {
	if class == nil {
		return fmt.Errorf("%w: class is nil", ErrInvalidClass)
	}

	if class.ClassID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidClass, ErrEmptyClassID)
	}

	if err := ValidateConfidence(class.Confidence); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidClass, err)
	}

	if err := ValidateStatus(class.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidClass, err)
	}

	return nil
}

// ValidateRelation validates an OntologyRelation according to domain rules.
// Endpoint existence is enforced at the storage boundary, not here.
func ValidateRelation(relation *OntologyRelation) error {
	if relation == nil {
		return fmt.Errorf("%w: relation is nil", ErrInvalidRelation)
	}

	if relation.SubjectClassID == "" || relation.ObjectClassID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRelation, ErrEmptyClassID)
	}

	if relation.Predicate == "" {
		return fmt.Errorf("%w: predicate cannot be empty", ErrInvalidRelation)
	}

	if err := ValidateConfidence(relation.Confidence); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRelation, err)
	}

	return nil
}

// ValidateObservation validates a FinancialObservation according to domain rules.
//
// Validation rules:
//   - DatasetID must not be empty
//   - ObservationType must not be empty
//   - Confidence must be in [0,1]
func ValidateObservation(obs *FinancialObservation) error {
	if obs == nil {
		return fmt.Errorf("%w: observation is nil", ErrInvalidObservation)
	}

	if obs.DatasetID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidObservation, ErrEmptyDatasetID)
	}

	if obs.ObservationType == "" {
		return fmt.Errorf("%w: observation type cannot be empty", ErrInvalidObservation)
	}

	if err := ValidateConfidence(obs.Confidence); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidObservation, err)
	}

	return nil
}

// ValidateEmbeddingRecord validates an EmbeddingRecord according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//   - Vector must not be empty
//   - SourceKind must be valid
func ValidateEmbeddingRecord(record *EmbeddingRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidEmbedding)
	}

	if record.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEmbedding, ErrEmptyContent)
	}

	if len(record.Vector) == 0 {
		return fmt.Errorf("%w: vector cannot be empty", ErrInvalidEmbedding)
	}

	if err := ValidateSourceKind(record.SourceKind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEmbedding, err)
	}

	return nil
}

// ValidateConfidence checks that a confidence score lies in [0,1].
func ValidateConfidence(confidence float64) error {
	if confidence < 0 || confidence > 1 {
		return fmt.Errorf("%w: value %v", ErrConfidenceRange, confidence)
	}
	return nil
}

// ValidateStatus validates that a ClassStatus has a valid value.
func ValidateStatus(status ClassStatus) error {
	switch status {
	case StatusPendingReview, StatusActive, StatusRejected:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidStatus, status)
	}
}

// ValidateSourceKind validates that a SourceKind has a valid value.
func ValidateSourceKind(kind SourceKind) error {
	switch kind {
	case SourceDocument, SourceEntity, SourceOntologyClass:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidSourceKind, kind)
	}
}
