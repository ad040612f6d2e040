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

import (
	"errors"
	"fmt"
)

// Domain validation errors
var (
	// ErrInvalidClass indicates an OntologyClass failed validation.
	ErrInvalidClass = errors.New("invalid ontology class")

	// ErrInvalidRelation indicates an OntologyRelation failed validation.
	ErrInvalidRelation = errors.New("invalid ontology relation")

	// ErrInvalidObservation indicates a FinancialObservation failed validation.
	ErrInvalidObservation = errors.New("invalid financial observation")

	// ErrInvalidEmbedding indicates an EmbeddingRecord failed validation.
	ErrInvalidEmbedding = errors.New("invalid embedding record")

	// ErrEmptyClassID indicates the ClassID field is empty.
	ErrEmptyClassID = errors.New("class id cannot be empty")

	// ErrEmptyDatasetID indicates the DatasetID field is empty.
	ErrEmptyDatasetID = errors.New("dataset id cannot be empty")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrConfidenceRange indicates a confidence score outside [0,1].
	ErrConfidenceRange = errors.New("confidence must be in [0,1]")

	// ErrInvalidStatus indicates an invalid ClassStatus value.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidSourceKind indicates an invalid SourceKind value.
	ErrInvalidSourceKind = errors.New("invalid source kind")
)

// FormatError reports that a document's root shape did not match the minimum
// required shape of its declared format. The failure is fatal for the
// document; nothing partial is emitted.
type FormatError struct {
	DocumentID string
	Format     string
	Reason     string
	Err        error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("format error: document %s (%s): %s: %v", e.DocumentID, e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("format error: document %s (%s): %s", e.DocumentID, e.Format, e.Reason)
}

// Unwrap returns the wrapped cause, if any.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFormatError reports whether err is (or wraps) a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
