package ingest

import "github.com/quantabase/fingraph/core"

// Result reports the outcome of ingesting one document. Per-document
// failures are carried in Err rather than aborting sibling documents.
type Result struct {
	DocumentID     string
	SourceFormat   string
	DatasetID      string
	Records        int
	Observations   []string
	ClassesCreated int
	QualityScore   float64
	Metadata       *core.ParseMetadata
	Err            error
}

// Failed reports whether the document failed before any records were
// persisted.
func (r *Result) Failed() bool {
	return r.Err != nil
}
