package storage

import (
	"testing"
	"time"

	"github.com/quantabase/fingraph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassRoundTrip(t *testing.T) {
	class := &core.OntologyClass{
		ClassID:   "revenue_stream",
		Label:     "Revenue Stream",
		Domain:    "financial",
		ClassType: "entity",
		Properties: map[string]string{
			"auto_generated": "true",
			"source":         "rootfi_parser",
		},
		Confidence: 0.9,
		Status:     core.StatusPendingReview,
		InsertedAt: time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}

	decoded, err := UnmarshalClass(MarshalClass(class))
	require.NoError(t, err)
	assert.Equal(t, class.ClassID, decoded.ClassID)
	assert.Equal(t, class.Properties, decoded.Properties)
	assert.Equal(t, class.Status, decoded.Status)
	assert.True(t, class.InsertedAt.Equal(decoded.InsertedAt))
}

func TestEmbeddingRecordRoundTrip(t *testing.T) {
	record := &core.EmbeddingRecord{
		ID:              "emb-1",
		Content:         "revenue_stream: Service revenue",
		Vector:          []float32{0.25, -0.5, 0.125},
		SourceKind:      core.SourceEntity,
		SourceID:        "obs-1",
		OntologyClassID: "revenue_stream",
		Metadata:        map[string]string{"document_id": "doc-1"},
		InsertedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}

	decoded, err := UnmarshalEmbeddingRecord(MarshalEmbeddingRecord(record))
	require.NoError(t, err)
	assert.Equal(t, record.Vector, decoded.Vector)
	assert.Equal(t, record.SourceKind, decoded.SourceKind)
	assert.Equal(t, record.OntologyClassID, decoded.OntologyClassID)
}

func TestUnmarshalTruncatedData(t *testing.T) {
	record := &core.FinancialObservation{
		ID:              "obs-1",
		DatasetID:       "ds-1",
		ObservationType: "revenue_stream",
		AccountName:     "Sales",
		Amount:          100,
		Currency:        "USD",
		Confidence:      0.9,
		InsertedAt:      time.Now().UTC(),
	}
	data := MarshalObservation(record)

	_, err := UnmarshalObservation(data[:len(data)/3])
	assert.Error(t, err)
}
