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


package ontology

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

// Defaults applied to auto-generated classes on first sighting.
const (
	DefaultDomain     = "financial"
	DefaultClassType  = "entity"
	DefaultConfidence = 0.9
)

// Registry deduplicates and creates canonical ontology class definitions.
// It is the only cross-document shared mutable resource in the ingestion
// pipeline, so every create goes through the store's atomic conditional
// insert; concurrent first-sightings of the same entity type converge to
// one class.
type Registry struct {
	classes   storage.ClassRepository
	relations storage.RelationRepository
	logger    *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used by the registry.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates a registry over the given class and relation stores.
func NewRegistry(classes storage.ClassRepository, relations storage.RelationRepository, opts ...RegistryOption) *Registry {
	r := &Registry{
		classes:   classes,
		relations: relations,
		logger:    slog.Default().With("component", "ontology-registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EnsureClass guarantees a class exists for the entity type and returns its
// class ID. The ID is a deterministic slug of the entity type, so repeated
// calls are no-ops rather than duplicates. New classes start in
// pending_review with the auto-generation defaults. A lost creation race at
// the store is recovered locally by re-reading the now-existing class.
func (r *Registry) EnsureClass(ctx context.Context, entityType string) (string, bool, error) {
	classID := core.ClassIDFromEntityType(entityType)
	if classID == "" {
		return "", false, fmt.Errorf("%w: entity type %q", core.ErrEmptyClassID, entityType)
	}

	class := &core.OntologyClass{
		ClassID:    classID,
		Label:      core.LabelFromClassID(classID),
		Domain:     DefaultDomain,
		ClassType:  DefaultClassType,
		Confidence: DefaultConfidence,
		Status:     core.StatusPendingReview,
		Properties: map[string]string{
			"auto_generated": "true",
			"description":    "Auto-generated class for " + classID,
		},
	}

	created, err := r.classes.InsertIfAbsent(ctx, class)
	if err != nil {
		if !errors.Is(err, storage.ErrDuplicateKey) {
			return "", false, err
		}
		// Lost the creation race. The class exists now; confirm it.
		if _, err := r.classes.GetClass(ctx, classID); err != nil {
			return "", false, err
		}
		r.logger.Debug("class creation race recovered", "class_id", classID)
		return classID, false, nil
	}

	if created {
		r.logger.Info("ontology class created", "class_id", classID)
	}
	return classID, created, nil
}

// GetClass retrieves a class by its class ID.
func (r *Registry) GetClass(ctx context.Context, classID string) (*core.OntologyClass, error) {
	return r.classes.GetClass(ctx, classID)
}

// ListClasses retrieves classes by status. A zero status lists all.
func (r *Registry) ListClasses(ctx context.Context, status core.ClassStatus) ([]*core.OntologyClass, error) {
	return r.classes.ListClasses(ctx, status)
}

// Approve transitions a pending class to active. Only active classes
// contribute nodes to graph construction.
func (r *Registry) Approve(ctx context.Context, classID string) error {
	if err := r.classes.UpdateStatus(ctx, classID, core.StatusActive); err != nil {
		return err
	}
	r.logger.Info("ontology class approved", "class_id", classID)
	return nil
}

// Reject transitions a class to rejected. Rejected classes are retained but
// excluded from the graph; classes are never deleted.
func (r *Registry) Reject(ctx context.Context, classID string) error {
	if err := r.classes.UpdateStatus(ctx, classID, core.StatusRejected); err != nil {
		return err
	}
	r.logger.Info("ontology class rejected", "class_id", classID)
	return nil
}

// AddRelation records a directed, typed edge between two existing classes.
// Relations with a missing endpoint are refused at write time.
func (r *Registry) AddRelation(ctx context.Context, subjectClassID, predicate, objectClassID string, confidence float64) error {
	relation := &core.OntologyRelation{
		SubjectClassID: subjectClassID,
		Predicate:      predicate,
		ObjectClassID:  objectClassID,
		Confidence:     confidence,
		Status:         core.StatusActive,
	}
	if err := r.relations.Upsert(ctx, relation); err != nil {
		return err
	}
	r.logger.Debug("relation recorded",
		"subject", subjectClassID, "predicate", predicate, "object", objectClassID)
	return nil
}
