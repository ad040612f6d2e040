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

// NodeType classifies graph nodes for downstream renderers.
type NodeType string

const (
	NodeOntologyClass  NodeType = "ontology_class"
	NodeDataInstance   NodeType = "data_instance"
	NodeSemanticEntity NodeType = "semantic_entity"
)

// EdgeType classifies graph edges for downstream renderers.
type EdgeType string

const (
	EdgeOntologyRelation   EdgeType = "ontology_relation"
	EdgeContains           EdgeType = "contains"
	EdgeSemanticSimilarity EdgeType = "semantic_similarity"
)

// Renderer hints per node and edge kind.
const (
	classColor       = "#FF6B6B"
	classSize        = 20
	relationColor    = "#4ECDC4"
	relationWidth    = 2
	datasetColor     = "#45B7D1"
	datasetSize      = 15
	observationColor = "#96CEB4"
	observationSize  = 10
	containsColor    = "#DDA0DD"
	containsWidth    = 1
	semanticColor    = "#FFD93D"
	semanticSize     = 8
	similarityColor  = "#FF9999"
)

// Node is one graph node with enough metadata to be exported as a flat
// node list for any renderer.
type Node struct {
	ID         string            `json:"id"`
	Label      string            `json:"label"`
	Type       NodeType          `json:"type"`
	Confidence float64           `json:"confidence,omitempty"`
	Color      string            `json:"color"`
	Size       int               `json:"size"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Edge is one directed graph edge.
type Edge struct {
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	Type       EdgeType `json:"type"`
	Predicate  string   `json:"predicate,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
	Similarity float64  `json:"similarity,omitempty"`
	Color      string   `json:"color"`
	Width      int      `json:"width"`
}

// Graph is the assembled knowledge graph: typed nodes and edges ready for
// flat node-list/edge-list export.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`

	nodeIndex map[string]*Node
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodeIndex: make(map[string]*Node),
	}
}

// AddNode adds a node unless one with the same ID already exists.
func (g *Graph) AddNode(node *Node) {
	if _, exists := g.nodeIndex[node.ID]; exists {
		return
	}
	g.nodeIndex[node.ID] = node
	g.Nodes = append(g.Nodes, node)
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, exists := g.nodeIndex[id]
	return exists
}

// AddEdge adds an edge. Callers are responsible for endpoint existence.
func (g *Graph) AddEdge(edge *Edge) {
	g.Edges = append(g.Edges, edge)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}
