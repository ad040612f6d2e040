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

// Stats summarizes the shape of a built graph.
type Stats struct {
	TotalNodes      int              `json:"total_nodes"`
	TotalEdges      int              `json:"total_edges"`
	NodesByType     map[NodeType]int `json:"nodes_by_type"`
	EdgesByType     map[EdgeType]int `json:"edges_by_type"`
	Density         float64          `json:"density"`
	WeaklyConnected bool             `json:"weakly_connected"`
}

// ComputeStats derives summary statistics from the graph. Density follows the
// directed-graph convention E / (N * (N - 1)); an empty graph reports zero
// density and is not considered connected.
func ComputeStats(g *Graph) *Stats {
	stats := &Stats{
		TotalNodes:  g.NodeCount(),
		TotalEdges:  g.EdgeCount(),
		NodesByType: make(map[NodeType]int),
		EdgesByType: make(map[EdgeType]int),
	}

	for _, node := range g.Nodes {
		stats.NodesByType[node.Type]++
	}
	for _, edge := range g.Edges {
		stats.EdgesByType[edge.Type]++
	}

	if stats.TotalNodes > 1 {
		stats.Density = float64(stats.TotalEdges) / float64(stats.TotalNodes*(stats.TotalNodes-1))
	}
	stats.WeaklyConnected = weaklyConnected(g)
	return stats
}

// weaklyConnected reports whether every node is reachable from every other
// when edge direction is ignored.
func weaklyConnected(g *Graph) bool {
	if g.NodeCount() == 0 {
		return false
	}

	adjacency := make(map[string][]string, g.NodeCount())
	for _, edge := range g.Edges {
		adjacency[edge.Source] = append(adjacency[edge.Source], edge.Target)
		adjacency[edge.Target] = append(adjacency[edge.Target], edge.Source)
	}

	visited := make(map[string]bool, g.NodeCount())
	queue := []string{g.Nodes[0].ID}
	visited[g.Nodes[0].ID] = true
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(visited) == g.NodeCount()
}
