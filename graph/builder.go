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


package graph

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

// Build defaults.
const (
	DefaultObservationCap      = 100
	DefaultSimilarityThreshold = 0.7
	DefaultTopNeighbors        = 10
)

// Builder assembles the knowledge graph from ontology classes, relations,
// data instances, and similarity edges derived from the embedding store.
// Construction is expensive (the similarity pass is O(n²) in stored
// embeddings); callers should front it with a Cache rather than rebuilding
// per read.
type Builder struct {
	classes      storage.ClassRepository
	relations    storage.RelationRepository
	datasets     storage.DatasetRepository
	observations storage.ObservationRepository
	embeddings   storage.EmbeddingRepository

	observationCap      int
	similarityThreshold float64
	topNeighbors        int
	logger              *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithObservationCap bounds how many observation nodes the graph carries,
// keeping visualization-sized graphs tractable for large datasets.
func WithObservationCap(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.observationCap = n
		}
	}
}

// WithSimilarityThreshold sets the minimum similarity for semantic edges.
func WithSimilarityThreshold(threshold float64) BuilderOption {
	return func(b *Builder) {
		b.similarityThreshold = threshold
	}
}

// WithTopNeighbors sets how many nearest neighbors each embedding considers.
func WithTopNeighbors(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.topNeighbors = n
		}
	}
}

// WithBuilderLogger sets the logger used during builds.
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a graph builder over the given stores.
func NewBuilder(
	classes storage.ClassRepository,
	relations storage.RelationRepository,
	datasets storage.DatasetRepository,
	observations storage.ObservationRepository,
	embeddings storage.EmbeddingRepository,
	opts ...BuilderOption,
) *Builder {
	b := &Builder{
		classes:             classes,
		relations:           relations,
		datasets:            datasets,
		observations:        observations,
		embeddings:          embeddings,
		observationCap:      DefaultObservationCap,
		similarityThreshold: DefaultSimilarityThreshold,
		topNeighbors:        DefaultTopNeighbors,
		logger:              slog.Default().With("component", "graph-builder"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build assembles the graph in four additive passes: active class nodes,
// relation edges, data-instance nodes with containment edges, and semantic
// similarity edges.
func (b *Builder) Build(ctx context.Context) (*Graph, error) {
	g := NewGraph()

	if err := b.addClassNodes(ctx, g); err != nil {
		return nil, err
	}
	if err := b.addRelationEdges(ctx, g); err != nil {
		return nil, err
	}
	if err := b.addDataInstances(ctx, g); err != nil {
		return nil, err
	}
	if err := b.addSimilarityEdges(ctx, g); err != nil {
		return nil, err
	}

	b.logger.Info("knowledge graph built", "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return g, nil
}

// addClassNodes adds one node per active ontology class. Pending and
// rejected classes never become nodes.
func (b *Builder) addClassNodes(ctx context.Context, g *Graph) error {
	classes, err := b.classes.ListClasses(ctx, core.StatusActive)
	if err != nil {
		return err
	}

	for _, class := range classes {
		g.AddNode(&Node{
			ID:         class.ClassID,
			Label:      class.Label,
			Type:       NodeOntologyClass,
			Confidence: class.Confidence,
			Color:      classColor,
			Size:       classSize,
			Properties: class.Properties,
		})
	}
	return nil
}

// addRelationEdges adds one directed edge per active relation whose both
// endpoints exist as nodes. Relations with a missing endpoint are skipped
// silently; they are stored facts but not graph edges.
func (b *Builder) addRelationEdges(ctx context.Context, g *Graph) error {
	relations, err := b.relations.ListActive(ctx, "")
	if err != nil {
		return err
	}

	for _, relation := range relations {
		if !g.HasNode(relation.SubjectClassID) || !g.HasNode(relation.ObjectClassID) {
			continue
		}
		g.AddEdge(&Edge{
			Source:     relation.SubjectClassID,
			Target:     relation.ObjectClassID,
			Type:       EdgeOntologyRelation,
			Predicate:  relation.Predicate,
			Confidence: relation.Confidence,
			Color:      relationColor,
			Width:      relationWidth,
		})
	}
	return nil
}

// addDataInstances adds one node per dataset and per observation, plus a
// containment edge from each dataset to its observations. Observation nodes
// are capped to keep the graph tractable.
func (b *Builder) addDataInstances(ctx context.Context, g *Graph) error {
	datasets, err := b.datasets.ListDatasets(ctx)
	if err != nil {
		return err
	}

	for _, dataset := range datasets {
		g.AddNode(&Node{
			ID:    "dataset_" + dataset.ID,
			Label: dataset.Name,
			Type:  NodeDataInstance,
			Color: datasetColor,
			Size:  datasetSize,
			Properties: map[string]string{
				"instance_type": "financial_dataset",
				"description":   dataset.Description,
				"currency":      dataset.Currency,
			},
		})
	}

	observations, err := b.observations.ListObservations(ctx, storage.ObservationFilter{Limit: b.observationCap})
	if err != nil {
		return err
	}

	for _, obs := range observations {
		nodeID := "observation_" + obs.ID
		g.AddNode(&Node{
			ID:         nodeID,
			Label:      fmt.Sprintf("%s - %g", obs.AccountName, obs.Amount),
			Type:       NodeDataInstance,
			Confidence: obs.Confidence,
			Color:      observationColor,
			Size:       observationSize,
			Properties: map[string]string{
				"instance_type":    "financial_observation",
				"account_name":     obs.AccountName,
				"observation_type": obs.ObservationType,
			},
		})

		datasetNodeID := "dataset_" + obs.DatasetID
		if g.HasNode(datasetNodeID) {
			g.AddEdge(&Edge{
				Source: datasetNodeID,
				Target: nodeID,
				Type:   EdgeContains,
				Color:  containsColor,
				Width:  containsWidth,
			})
		}
	}
	return nil
}

// addSimilarityEdges links embeddings whose cosine similarity exceeds the
// threshold, each embedding considering only its top nearest neighbors.
// Edges are undirected in meaning and deduplicated per unordered pair: a
// pair is linked once if either endpoint ranks the other in its top
// neighbors above threshold.
func (b *Builder) addSimilarityEdges(ctx context.Context, g *Graph) error {
	var records []*core.EmbeddingRecord
	err := b.embeddings.Scan(ctx, func(record *core.EmbeddingRecord) (bool, error) {
		records = append(records, record)
		return true, nil
	})
	if err != nil {
		return err
	}
	if len(records) < 2 {
		return nil
	}

	type neighbor struct {
		index int
		score float64
	}

	linked := make(map[[2]int]bool)
	for i, record := range records {
		neighbors := make([]neighbor, 0, len(records)-1)
		for j, other := range records {
			if i == j {
				continue
			}
			neighbors = append(neighbors, neighbor{
				index: j,
				score: core.CosineSimilarity(record.Vector, other.Vector),
			})
		}
		sort.SliceStable(neighbors, func(a, b int) bool {
			return neighbors[a].score > neighbors[b].score
		})
		if len(neighbors) > b.topNeighbors {
			neighbors = neighbors[:b.topNeighbors]
		}

		for _, n := range neighbors {
			if n.score <= b.similarityThreshold {
				continue
			}
			pair := [2]int{i, n.index}
			if pair[0] > pair[1] {
				pair[0], pair[1] = pair[1], pair[0]
			}
			if linked[pair] {
				continue
			}
			linked[pair] = true

			other := records[n.index]
			b.ensureSemanticNode(g, record)
			b.ensureSemanticNode(g, other)

			width := int(n.score * 3)
			if width < 1 {
				width = 1
			}
			g.AddEdge(&Edge{
				Source:     "semantic_" + record.ID,
				Target:     "semantic_" + other.ID,
				Type:       EdgeSemanticSimilarity,
				Similarity: n.score,
				Color:      similarityColor,
				Width:      width,
			})
		}
	}
	return nil
}

func (b *Builder) ensureSemanticNode(g *Graph, record *core.EmbeddingRecord) {
	id := "semantic_" + record.ID
	if g.HasNode(id) {
		return
	}
	g.AddNode(&Node{
		ID:    id,
		Label: semanticLabel(record.Content),
		Type:  NodeSemanticEntity,
		Color: semanticColor,
		Size:  semanticSize,
		Properties: map[string]string{
			"source_kind": record.SourceKind.String(),
			"source_id":   record.SourceID,
		},
	})
}

func semanticLabel(content string) string {
	if len(content) <= 50 {
		return content
	}
	return content[:50] + "..."
}
