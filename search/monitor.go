package search

import "github.com/quantabase/fingraph/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterQueryEmbedding(vector []float32)
	DocumentHit(record *core.EmbeddingRecord, score float64)
	EntityHit(record *core.EmbeddingRecord, score float64)
	Finish(results []*Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                               {}
func (n *noopMonitor) AfterQueryEmbedding(_ []float32)              {}
func (n *noopMonitor) DocumentHit(_ *core.EmbeddingRecord, _ float64) {}
func (n *noopMonitor) EntityHit(_ *core.EmbeddingRecord, _ float64)   {}
func (n *noopMonitor) Finish(_ []*Result)                           {}
