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


package extract

import (
	"fmt"
	"time"

	"github.com/quantabase/fingraph/core"
)

// Declared source formats.
const (
	FormatQuickBooks = "quickbooks_pl"
	FormatRootfi     = "rootfi_api"
	FormatGeneric    = "generic_json"
)

// Adapter converts one raw document format into extraction records.
// Adapters tolerate missing optional fields by substituting defaults and
// counting them in ParseMetadata; only a malformed required document root
// fails the parse, with a core.FormatError and nothing emitted.
type Adapter interface {
	// Format returns the declared format this adapter handles.
	Format() string

	// Parse converts raw document bytes into an ordered list of extraction
	// records plus metadata about the run.
	Parse(raw []byte, documentID string) ([]*core.ExtractionRecord, *core.ParseMetadata, error)
}

// ForFormat selects the adapter for a declared format. Unknown formats fall
// back to the generic adapter only when the caller passes FormatGeneric
// explicitly; otherwise ErrUnknownFormat is returned so that typos in a
// declared format do not silently degrade extraction quality.
func ForFormat(format string) (Adapter, error) {
	switch format {
	case FormatQuickBooks:
		return &QuickBooksAdapter{}, nil
	case FormatRootfi:
		return &RootfiAdapter{}, nil
	case FormatGeneric:
		return &GenericAdapter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Parse selects an adapter for the declared format and runs it.
func Parse(raw []byte, format, documentID string) ([]*core.ExtractionRecord, *core.ParseMetadata, error) {
	adapter, err := ForFormat(format)
	if err != nil {
		return nil, nil, err
	}
	return adapter.Parse(raw, documentID)
}

// resolveDocumentID returns the caller-supplied document ID, or derives a
// stable one from the document content when none was given. Identical bytes
// always resolve to the same ID, which keeps re-ingestion idempotent.
func resolveDocumentID(raw []byte, documentID string) string {
	if documentID != "" {
		return documentID
	}
	return fmt.Sprintf("doc-%016x", core.Fingerprint(raw))
}

// newParseMetadata creates metadata for one adapter run, deriving the
// entity-type inventory from the records in first-appearance order.
func newParseMetadata(format, version, documentID string, raw []byte, records []*core.ExtractionRecord, defaulted int) *core.ParseMetadata {
	seen := make(map[string]bool)
	var types []string
	for _, record := range records {
		if !seen[record.EntityType] {
			seen[record.EntityType] = true
			types = append(types, record.EntityType)
		}
	}
	return &core.ParseMetadata{
		SourceFormat:    format,
		ParserVersion:   version,
		DocumentID:      documentID,
		Fingerprint:     core.Fingerprint(raw),
		RecordsTotal:    len(records),
		FieldsDefaulted: defaulted,
		EntityTypes:     types,
		ParsedAt:        time.Now().UTC(),
	}
}

// parseDate parses the date layout used by both report formats.
// Returns the zero time for empty or unparsable input.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
