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
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted domain types. Composed by hand from the
// mus-go primitive serializers; field order is part of the storage format and
// must not change between releases.
var (
	StatusMUS           = statusSer{}
	SourceKindMUS       = sourceKindSer{}
	OntologyClassMUS    = ontologyClassSer{}
	OntologyRelationMUS = ontologyRelationSer{}
	DatasetMUS          = datasetSer{}
	ObservationMUS      = observationSer{}
	EmbeddingRecordMUS  = embeddingRecordSer{}
	CheckpointMUS       = checkpointSer{}

	stringMapMUS  = ord.NewMapSer[string, string](ord.String, ord.String)
	vectorMUS     = ord.NewSliceSer[float32](raw.Float32)
	timeMUS       = raw.TimeUnixMicro
)

type statusSer struct{}

func (statusSer) Marshal(s ClassStatus, bs []byte) (n int) {
	return varint.Int.Marshal(int(s), bs)
}

func (statusSer) Unmarshal(bs []byte) (s ClassStatus, n int, err error) {
	v, n, err := varint.Int.Unmarshal(bs)
	return ClassStatus(v), n, err
}

func (statusSer) Size(s ClassStatus) int {
	return varint.Int.Size(int(s))
}

func (s statusSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type sourceKindSer struct{}

func (sourceKindSer) Marshal(k SourceKind, bs []byte) (n int) {
	return varint.Int.Marshal(int(k), bs)
}

func (sourceKindSer) Unmarshal(bs []byte) (k SourceKind, n int, err error) {
	v, n, err := varint.Int.Unmarshal(bs)
	return SourceKind(v), n, err
}

func (sourceKindSer) Size(k SourceKind) int {
	return varint.Int.Size(int(k))
}

func (s sourceKindSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type ontologyClassSer struct{}

func (ontologyClassSer) Marshal(c OntologyClass, bs []byte) (n int) {
	n = ord.String.Marshal(c.ClassID, bs)
	n += ord.String.Marshal(c.Label, bs[n:])
	n += ord.String.Marshal(c.Domain, bs[n:])
	n += ord.String.Marshal(c.ClassType, bs[n:])
	n += stringMapMUS.Marshal(c.Properties, bs[n:])
	n += raw.Float64.Marshal(c.Confidence, bs[n:])
	n += StatusMUS.Marshal(c.Status, bs[n:])
	n += timeMUS.Marshal(c.InsertedAt, bs[n:])
	n += timeMUS.Marshal(c.UpdatedAt, bs[n:])
	return
}

func (ontologyClassSer) Unmarshal(bs []byte) (c OntologyClass, n int, err error) {
	var n1 int
	if c.ClassID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if c.Label, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Domain, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.ClassType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Properties, n1, err = stringMapMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Confidence, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Status, n1, err = StatusMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	c.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (ontologyClassSer) Size(c OntologyClass) (size int) {
	size = ord.String.Size(c.ClassID)
	size += ord.String.Size(c.Label)
	size += ord.String.Size(c.Domain)
	size += ord.String.Size(c.ClassType)
	size += stringMapMUS.Size(c.Properties)
	size += raw.Float64.Size(c.Confidence)
	size += StatusMUS.Size(c.Status)
	size += timeMUS.Size(c.InsertedAt)
	size += timeMUS.Size(c.UpdatedAt)
	return
}

func (s ontologyClassSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type ontologyRelationSer struct{}

func (ontologyRelationSer) Marshal(r OntologyRelation, bs []byte) (n int) {
	n = ord.String.Marshal(r.SubjectClassID, bs)
	n += ord.String.Marshal(r.Predicate, bs[n:])
	n += ord.String.Marshal(r.ObjectClassID, bs[n:])
	n += raw.Float64.Marshal(r.Confidence, bs[n:])
	n += StatusMUS.Marshal(r.Status, bs[n:])
	n += timeMUS.Marshal(r.InsertedAt, bs[n:])
	n += timeMUS.Marshal(r.UpdatedAt, bs[n:])
	return
}

func (ontologyRelationSer) Unmarshal(bs []byte) (r OntologyRelation, n int, err error) {
	var n1 int
	if r.SubjectClassID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if r.Predicate, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.ObjectClassID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Confidence, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Status, n1, err = StatusMUS.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	r.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (ontologyRelationSer) Size(r OntologyRelation) (size int) {
	size = ord.String.Size(r.SubjectClassID)
	size += ord.String.Size(r.Predicate)
	size += ord.String.Size(r.ObjectClassID)
	size += raw.Float64.Size(r.Confidence)
	size += StatusMUS.Size(r.Status)
	size += timeMUS.Size(r.InsertedAt)
	size += timeMUS.Size(r.UpdatedAt)
	return
}

func (s ontologyRelationSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type datasetSer struct{}

func (datasetSer) Marshal(d FinancialDataset, bs []byte) (n int) {
	n = ord.String.Marshal(d.ID, bs)
	n += ord.String.Marshal(d.Name, bs[n:])
	n += ord.String.Marshal(d.Description, bs[n:])
	n += ord.String.Marshal(d.SourceDocumentID, bs[n:])
	n += timeMUS.Marshal(d.PeriodStart, bs[n:])
	n += timeMUS.Marshal(d.PeriodEnd, bs[n:])
	n += ord.String.Marshal(d.Currency, bs[n:])
	n += timeMUS.Marshal(d.InsertedAt, bs[n:])
	return
}

func (datasetSer) Unmarshal(bs []byte) (d FinancialDataset, n int, err error) {
	var n1 int
	if d.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if d.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.Description, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.SourceDocumentID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.PeriodStart, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.PeriodEnd, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.Currency, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	d.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (datasetSer) Size(d FinancialDataset) (size int) {
	size = ord.String.Size(d.ID)
	size += ord.String.Size(d.Name)
	size += ord.String.Size(d.Description)
	size += ord.String.Size(d.SourceDocumentID)
	size += timeMUS.Size(d.PeriodStart)
	size += timeMUS.Size(d.PeriodEnd)
	size += ord.String.Size(d.Currency)
	size += timeMUS.Size(d.InsertedAt)
	return
}

func (s datasetSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type observationSer struct{}

func (observationSer) Marshal(o FinancialObservation, bs []byte) (n int) {
	n = ord.String.Marshal(o.ID, bs)
	n += ord.String.Marshal(o.DatasetID, bs[n:])
	n += ord.String.Marshal(o.SourceDocumentID, bs[n:])
	n += ord.String.Marshal(o.ObservationType, bs[n:])
	n += ord.String.Marshal(o.AccountID, bs[n:])
	n += ord.String.Marshal(o.AccountName, bs[n:])
	n += raw.Float64.Marshal(o.Amount, bs[n:])
	n += ord.String.Marshal(o.Currency, bs[n:])
	n += timeMUS.Marshal(o.PeriodStart, bs[n:])
	n += timeMUS.Marshal(o.PeriodEnd, bs[n:])
	n += raw.Float64.Marshal(o.Confidence, bs[n:])
	n += stringMapMUS.Marshal(o.Metadata, bs[n:])
	n += timeMUS.Marshal(o.InsertedAt, bs[n:])
	return
}

func (observationSer) Unmarshal(bs []byte) (o FinancialObservation, n int, err error) {
	var n1 int
	if o.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if o.DatasetID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return o, n + n1, err
	}
	n += n1
	if o.SourceDocumentID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return o, n + n1, err
	}
	n += n1
	if o.ObservationType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return o, n + n1, err
	}
	n += n1
	if o.AccountID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return o, n + n1, err
	}
	n += n1
	if o.AccountName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return o, n + n1, err
	}
	n += n1
	if o.Amount, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return o, n + n1, err
	}
	n += n1
	if o.Currency, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return o, n + n1, err
	}
	n += n1
	if o.PeriodStart, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return o, n + n1, err
	}
	n += n1
	if o.PeriodEnd, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return o, n + n1, err
	}
	n += n1
	if o.Confidence, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return o, n + n1, err
	}
	n += n1
	if o.Metadata, n1, err = stringMapMUS.Unmarshal(bs[n:]); err != nil {
		return o, n + n1, err
	}
	n += n1
	o.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (observationSer) Size(o FinancialObservation) (size int) {
	size = ord.String.Size(o.ID)
	size += ord.String.Size(o.DatasetID)
	size += ord.String.Size(o.SourceDocumentID)
	size += ord.String.Size(o.ObservationType)
	size += ord.String.Size(o.AccountID)
	size += ord.String.Size(o.AccountName)
	size += raw.Float64.Size(o.Amount)
	size += ord.String.Size(o.Currency)
	size += timeMUS.Size(o.PeriodStart)
	size += timeMUS.Size(o.PeriodEnd)
	size += raw.Float64.Size(o.Confidence)
	size += stringMapMUS.Size(o.Metadata)
	size += timeMUS.Size(o.InsertedAt)
	return
}

func (s observationSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type embeddingRecordSer struct{}

func (embeddingRecordSer) Marshal(e EmbeddingRecord, bs []byte) (n int) {
	n = ord.String.Marshal(e.ID, bs)
	n += ord.String.Marshal(e.Content, bs[n:])
	n += vectorMUS.Marshal(e.Vector, bs[n:])
	n += SourceKindMUS.Marshal(e.SourceKind, bs[n:])
	n += ord.String.Marshal(e.SourceID, bs[n:])
	n += ord.String.Marshal(e.OntologyClassID, bs[n:])
	n += stringMapMUS.Marshal(e.Metadata, bs[n:])
	n += timeMUS.Marshal(e.InsertedAt, bs[n:])
	return
}

func (embeddingRecordSer) Unmarshal(bs []byte) (e EmbeddingRecord, n int, err error) {
	var n1 int
	if e.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if e.Content, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.SourceKind, n1, err = SourceKindMUS.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.SourceID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.OntologyClassID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.Metadata, n1, err = stringMapMUS.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	e.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (embeddingRecordSer) Size(e EmbeddingRecord) (size int) {
	size = ord.String.Size(e.ID)
	size += ord.String.Size(e.Content)
	size += vectorMUS.Size(e.Vector)
	size += SourceKindMUS.Size(e.SourceKind)
	size += ord.String.Size(e.SourceID)
	size += ord.String.Size(e.OntologyClassID)
	size += stringMapMUS.Size(e.Metadata)
	size += timeMUS.Size(e.InsertedAt)
	return
}

func (s embeddingRecordSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type checkpointSer struct{}

func (checkpointSer) Marshal(c Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(c.ProcessorType, bs)
	n += ord.String.Marshal(c.LastSourceID, bs[n:])
	n += varint.Int.Marshal(c.Processed, bs[n:])
	n += timeMUS.Marshal(c.UpdatedAt, bs[n:])
	return
}

func (checkpointSer) Unmarshal(bs []byte) (c Checkpoint, n int, err error) {
	var n1 int
	if c.ProcessorType, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if c.LastSourceID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Processed, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	c.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (checkpointSer) Size(c Checkpoint) (size int) {
	size = ord.String.Size(c.ProcessorType)
	size += ord.String.Size(c.LastSourceID)
	size += varint.Int.Size(c.Processed)
	size += timeMUS.Size(c.UpdatedAt)
	return
}

func (s checkpointSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}
