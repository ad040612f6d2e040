package extract

import (
	"encoding/json"

	"github.com/quantabase/fingraph/core"
)

const genericParserVersion = "1.0"

// GenericAdapter is the best-effort fallback for documents with no known
// format. It shallow-scans the top-level object for keys resembling revenue
// or expense data and emits low-confidence records for whatever it can
// recognize. It never fails on an unrecognized shape, only on input that is
// not a JSON object at all.
type GenericAdapter struct{}

var _ Adapter = (*GenericAdapter)(nil)

var genericKeys = []struct {
	key        string
	entityType string
}{
	{"revenue", "revenue_item"},
	{"income", "revenue_item"},
	{"expenses", "expense_item"},
	{"costs", "expense_item"},
}

// Format returns the declared format this adapter handles.
func (a *GenericAdapter) Format() string {
	return FormatGeneric
}

// Parse scans the top level of the document for financial data patterns.
func (a *GenericAdapter) Parse(raw []byte, documentID string) ([]*core.ExtractionRecord, *core.ParseMetadata, error) {
	documentID = resolveDocumentID(raw, documentID)

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, &core.FormatError{
			DocumentID: documentID,
			Format:     FormatGeneric,
			Reason:     "document is not a JSON object",
			Err:        err,
		}
	}

	defaulted := 0
	var records []*core.ExtractionRecord
	for _, candidate := range genericKeys {
		value, ok := doc[candidate.key]
		if !ok {
			continue
		}
		extracted, missing := genericRecords(candidate.key, candidate.entityType, value)
		records = append(records, extracted...)
		defaulted += missing
	}

	meta := newParseMetadata(FormatGeneric, genericParserVersion, documentID, raw, records, defaulted)
	return records, meta, nil
}

// genericRecords converts one recognized top-level value. A bare number
// yields a single record named after its key; an array of {name, value}
// objects yields one record per item. Anything else is ignored.
func genericRecords(key, entityType string, value json.RawMessage) ([]*core.ExtractionRecord, int) {
	var amount float64
	if err := json.Unmarshal(value, &amount); err == nil {
		return []*core.ExtractionRecord{genericRecord(entityType, key, amount)}, 0
	}

	var items []struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}
	if err := json.Unmarshal(value, &items); err != nil {
		return nil, 0
	}

	defaulted := 0
	var records []*core.ExtractionRecord
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = key
			defaulted++
		}
		records = append(records, genericRecord(entityType, name, item.Value))
	}
	return records, defaulted
}

func genericRecord(entityType, name string, amount float64) *core.ExtractionRecord {
	return &core.ExtractionRecord{
		EntityType: entityType,
		Name:       name,
		Amount:     amount,
		HasAmount:  true,
		Currency:   "USD",
		Properties: map[string]string{
			"extraction_mode": "generic_shallow_scan",
		},
		Confidence: 0.5,
	}
}
