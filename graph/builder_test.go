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
	"testing"

	"github.com/quantabase/fingraph/core"
	storagebadger "github.com/quantabase/fingraph/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T, opts ...BuilderOption) (*Builder, *storagebadger.Stores) {
	t.Helper()
	stores, err := storagebadger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })
	b := NewBuilder(stores.Classes, stores.Relations, stores.Datasets, stores.Observations, stores.Embeddings, opts...)
	return b, stores
}

func insertClass(t *testing.T, stores *storagebadger.Stores, classID string, status core.ClassStatus) {
	t.Helper()
	_, err := stores.Classes.InsertIfAbsent(context.Background(), &core.OntologyClass{
		ClassID:    classID,
		Label:      classID,
		Domain:     "financial",
		ClassType:  "entity",
		Confidence: 0.9,
		Status:     status,
	})
	require.NoError(t, err)
}

func insertEmbedding(t *testing.T, stores *storagebadger.Stores, content string, vector []float32) string {
	t.Helper()
	id, err := stores.Embeddings.Insert(context.Background(), &core.EmbeddingRecord{
		Content:    content,
		Vector:     vector,
		SourceKind: core.SourceEntity,
		SourceID:   "obs-1",
	})
	require.NoError(t, err)
	return id
}

func TestBuildClassNodesOnlyActive(t *testing.T) {
	builder, stores := newTestBuilder(t)
	insertClass(t, stores, "revenue_account", core.StatusActive)
	insertClass(t, stores, "tax_category", core.StatusPendingReview)
	insertClass(t, stores, "legacy_account", core.StatusRejected)

	g, err := builder.Build(context.Background())
	require.NoError(t, err)

	assert.True(t, g.HasNode("revenue_account"))
	assert.False(t, g.HasNode("tax_category"))
	assert.False(t, g.HasNode("legacy_account"))

	node := g.Nodes[0]
	assert.Equal(t, NodeOntologyClass, node.Type)
	assert.Equal(t, classColor, node.Color)
	assert.Equal(t, classSize, node.Size)
	assert.Equal(t, 0.9, node.Confidence)
}

func TestBuildRelationEdgesRequireBothEndpoints(t *testing.T) {
	builder, stores := newTestBuilder(t)
	ctx := context.Background()
	insertClass(t, stores, "customer", core.StatusActive)
	insertClass(t, stores, "invoice", core.StatusActive)
	insertClass(t, stores, "tax_category", core.StatusPendingReview)

	require.NoError(t, stores.Relations.Upsert(ctx, &core.OntologyRelation{
		SubjectClassID: "customer",
		Predicate:      "receives",
		ObjectClassID:  "invoice",
		Confidence:     0.9,
		Status:         core.StatusActive,
	}))
	// Valid stored relation, but the pending endpoint has no node.
	require.NoError(t, stores.Relations.Upsert(ctx, &core.OntologyRelation{
		SubjectClassID: "invoice",
		Predicate:      "applies",
		ObjectClassID:  "tax_category",
		Confidence:     0.8,
		Status:         core.StatusActive,
	}))

	g, err := builder.Build(ctx)
	require.NoError(t, err)

	require.Equal(t, 1, g.EdgeCount())
	edge := g.Edges[0]
	assert.Equal(t, "customer", edge.Source)
	assert.Equal(t, "invoice", edge.Target)
	assert.Equal(t, EdgeOntologyRelation, edge.Type)
	assert.Equal(t, "receives", edge.Predicate)
	assert.True(t, g.HasNode(edge.Source))
	assert.True(t, g.HasNode(edge.Target))
}

func TestBuildDataInstances(t *testing.T) {
	builder, stores := newTestBuilder(t)
	ctx := context.Background()

	datasetID, err := stores.Datasets.Insert(ctx, &core.FinancialDataset{
		Name:             "Financial Data doc-1",
		SourceDocumentID: "doc-1",
		Currency:         "USD",
	})
	require.NoError(t, err)

	obsID, err := stores.Observations.Insert(ctx, &core.FinancialObservation{
		DatasetID:       datasetID,
		ObservationType: "revenue_account",
		AccountName:     "Sales",
		Amount:          100,
		Confidence:      0.9,
	})
	require.NoError(t, err)

	g, err := builder.Build(ctx)
	require.NoError(t, err)

	require.True(t, g.HasNode("dataset_"+datasetID))
	require.True(t, g.HasNode("observation_"+obsID))

	var obsNode *Node
	for _, node := range g.Nodes {
		if node.ID == "observation_"+obsID {
			obsNode = node
		}
	}
	require.NotNil(t, obsNode)
	assert.Equal(t, "Sales - 100", obsNode.Label)
	assert.Equal(t, NodeDataInstance, obsNode.Type)
	assert.Equal(t, observationColor, obsNode.Color)

	require.Equal(t, 1, g.EdgeCount())
	edge := g.Edges[0]
	assert.Equal(t, EdgeContains, edge.Type)
	assert.Equal(t, "dataset_"+datasetID, edge.Source)
	assert.Equal(t, "observation_"+obsID, edge.Target)
}

func TestBuildObservationCap(t *testing.T) {
	builder, stores := newTestBuilder(t, WithObservationCap(2))
	ctx := context.Background()

	datasetID, err := stores.Datasets.Insert(ctx, &core.FinancialDataset{
		Name:             "Financial Data doc-1",
		SourceDocumentID: "doc-1",
	})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := stores.Observations.Insert(ctx, &core.FinancialObservation{
			DatasetID:       datasetID,
			ObservationType: "expense_account",
			AccountName:     fmt.Sprintf("Account %d", i),
			Confidence:      0.9,
		})
		require.NoError(t, err)
	}

	g, err := builder.Build(ctx)
	require.NoError(t, err)

	// 1 dataset node + 2 capped observation nodes.
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
}

func TestBuildSimilarityEdges(t *testing.T) {
	builder, stores := newTestBuilder(t)
	ctx := context.Background()

	first := insertEmbedding(t, stores, "Service revenue grew strongly this quarter", []float32{1, 0, 0})
	second := insertEmbedding(t, stores, "Service revenue grew again", []float32{0.9, 0.1, 0})
	insertEmbedding(t, stores, "Office rent", []float32{0, 0, 1})

	g, err := builder.Build(ctx)
	require.NoError(t, err)

	assert.True(t, g.HasNode("semantic_"+first))
	assert.True(t, g.HasNode("semantic_"+second))
	// The orthogonal record never crosses the threshold and gets no node.
	assert.Equal(t, 2, g.NodeCount())

	require.Equal(t, 1, g.EdgeCount())
	edge := g.Edges[0]
	assert.Equal(t, EdgeSemanticSimilarity, edge.Type)
	assert.Greater(t, edge.Similarity, DefaultSimilarityThreshold)
	assert.GreaterOrEqual(t, edge.Width, 1)
}

func TestBuildSimilarityEdgeDeduplicated(t *testing.T) {
	// Both endpoints rank each other as nearest neighbor; still one edge.
	builder, stores := newTestBuilder(t)
	ctx := context.Background()

	insertEmbedding(t, stores, "Total revenue 500", []float32{1, 0})
	insertEmbedding(t, stores, "Total revenue 500 EUR", []float32{1, 0})

	g, err := builder.Build(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, g.EdgeCount())
}

func TestBuildSemanticLabelTruncated(t *testing.T) {
	builder, stores := newTestBuilder(t)
	ctx := context.Background()

	long := "revenue_stream: Consolidated subscription revenue across all operating regions"
	insertEmbedding(t, stores, long, []float32{1, 0})
	insertEmbedding(t, stores, "short", []float32{1, 0})

	g, err := builder.Build(ctx)
	require.NoError(t, err)

	var labels []string
	for _, node := range g.Nodes {
		labels = append(labels, node.Label)
	}
	assert.Contains(t, labels, long[:50]+"...")
	assert.Contains(t, labels, "short")
}

func TestBuildEmptyStores(t *testing.T) {
	builder, _ := newTestBuilder(t)

	g, err := builder.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
}
