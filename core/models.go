package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ClassStatus tracks the review lifecycle of an ontology class or relation.
// Definitions are never deleted, only transitioned between statuses.
type ClassStatus int

const (
	// StatusPendingReview marks an auto-generated definition awaiting approval.
	StatusPendingReview ClassStatus = iota + 1
	// StatusActive marks an approved definition usable for graph construction.
	StatusActive
	// StatusRejected marks a definition excluded from graph construction.
	StatusRejected
)

// String returns the storage representation of the status.
func (s ClassStatus) String() string {
	switch s {
	case StatusPendingReview:
		return "pending_review"
	case StatusActive:
		return "active"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// SourceKind identifies what a stored embedding was computed from.
type SourceKind int

const (
	// SourceDocument is an embedding of a whole raw document.
	SourceDocument SourceKind = iota + 1
	// SourceEntity is an embedding of one extracted entity.
	SourceEntity
	// SourceOntologyClass is an embedding of an ontology class definition.
	SourceOntologyClass
)

// String returns the storage representation of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceDocument:
		return "document"
	case SourceEntity:
		return "entity"
	case SourceOntologyClass:
		return "ontology_class"
	default:
		return "unknown"
	}
}

// OntologyClass is the canonical, deduplicated definition of one kind of
// financial entity. ClassID is derived deterministically from the entity type,
// so repeated ingestion of the same type converges to a single class.
type OntologyClass struct {
	ClassID    string
	Label      string
	Domain     string
	ClassType  string
	Properties map[string]string
	Confidence float64
	Status     ClassStatus
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// OntologyRelation is a directed, typed edge between two ontology classes.
// Both endpoints must reference existing classes at write time.
type OntologyRelation struct {
	SubjectClassID string
	Predicate      string
	ObjectClassID  string
	Confidence     float64
	Status         ClassStatus
	InsertedAt     time.Time
	UpdatedAt      time.Time
}

// Key returns the natural upsert key of the relation.
func (r *OntologyRelation) Key() string {
	return r.SubjectClassID + "|" + r.Predicate + "|" + r.ObjectClassID
}

// FinancialDataset groups every observation extracted from one source
// document. Keyed by SourceDocumentID with idempotent get-or-create.
type FinancialDataset struct {
	ID               string
	Name             string
	Description      string
	SourceDocumentID string
	PeriodStart      time.Time // zero when unknown
	PeriodEnd        time.Time // zero when unknown
	Currency         string
	InsertedAt       time.Time
}

// FinancialObservation is one concrete fact (account, amount, period)
// extracted from a document. Observations are append-only; corrections are a
// moderation workflow outside this module.
type FinancialObservation struct {
	ID               string
	DatasetID        string
	SourceDocumentID string
	ObservationType  string // class ID of the extracted entity
	AccountID        string
	AccountName      string
	Amount           float64
	Currency         string
	PeriodStart      time.Time // zero when unknown
	PeriodEnd        time.Time // zero when unknown
	Confidence       float64
	Metadata         map[string]string // original extraction properties
	InsertedAt       time.Time
}

// EmbeddingRecord stores one text embedding alongside its provenance.
// All vectors in a deployment share one fixed dimensionality.
type EmbeddingRecord struct {
	ID              string
	Content         string
	Vector          []float32
	SourceKind      SourceKind
	SourceID        string
	OntologyClassID string // empty for document-level embeddings
	Metadata        map[string]string
	InsertedAt      time.Time
}

// ExtractionRecord is the in-memory unit produced by a format adapter and
// consumed by the class registry and observation builder. It is never
// persisted directly; its properties travel with the resulting observation.
type ExtractionRecord struct {
	EntityType  string
	Name        string
	AccountID   string
	Amount      float64
	HasAmount   bool
	Currency    string
	PeriodStart time.Time          // zero when unknown
	PeriodEnd   time.Time          // zero when unknown
	TimeSeries  map[string]float64 // period key -> value, hierarchical reports only
	ParentName  string             // parent category or parent entity name
	Properties  map[string]string
	Confidence  float64
}

// TotalAmount sums the record's time series, falling back to Amount for
// records without one.
func (r *ExtractionRecord) TotalAmount() float64 {
	if len(r.TimeSeries) == 0 {
		return r.Amount
	}
	var total float64
	for _, v := range r.TimeSeries {
		total += v
	}
	return total
}

// ParseMetadata describes one adapter run over one document.
type ParseMetadata struct {
	SourceFormat    string
	ParserVersion   string
	DocumentID      string
	Fingerprint     uint64
	RecordsTotal    int
	FieldsDefaulted int // non-fatal missing fields substituted with defaults
	EntityTypes     []string
	ParsedAt        time.Time
}

// ClassIDFromEntityType derives the stable ontology class slug for an entity
// type. The derivation is deterministic: identical types always map to the
// same class ID.
func ClassIDFromEntityType(entityType string) string {
	slug := strings.ToLower(strings.TrimSpace(entityType))
	var b strings.Builder
	b.Grow(len(slug))
	pendingSep := false
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			pendingSep = false
		default:
			pendingSep = true
		}
	}
	return b.String()
}

// LabelFromClassID renders a human-readable label for a class slug,
// e.g. "revenue_stream" -> "Revenue Stream".
func LabelFromClassID(classID string) string {
	words := strings.Split(classID, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Fingerprint generates a deterministic 64-bit content hash using BLAKE2b.
// Identical content always produces the identical fingerprint. Used for
// default document identifiers and parse provenance.
func Fingerprint(data []byte) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}
