package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/quantabase/fingraph/ai"
	"github.com/quantabase/fingraph/core"
	"github.com/quantabase/fingraph/storage"
)

// Result is one search hit: the stored content, its similarity to the
// query, and the provenance of the underlying embedding.
type Result struct {
	Content         string
	Score           float64
	SourceKind      core.SourceKind
	SourceID        string
	OntologyClassID string
	Metadata        map[string]string
}

// NoMinSimilarity disables the similarity floor: cosine similarity never
// falls below -1, so every stored record stays rankable.
const NoMinSimilarity = -1

// Searcher provides semantic search over indexed documents and entities.
type Searcher struct {
	embeddings    storage.EmbeddingRepository
	embedder      ai.Embedder
	minSimilarity float64
	logger        *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMinSimilarity sets a similarity floor below which hits are dropped.
// Default is NoMinSimilarity, meaning ranking alone decides.
func WithMinSimilarity(min float64) Option {
	return func(s *Searcher) error {
		s.minSimilarity = min
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	embeddings storage.EmbeddingRepository,
	provider ai.Provider,
	opts ...Option,
) (*Searcher, error) {
	if embeddings == nil {
		return nil, ErrEmbeddingRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		embeddings:    embeddings,
		embedder:      provider.Embedder(),
		minSimilarity: NoMinSimilarity,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindSimilar searches for indexed content similar to the query.
// Returns up to maxHits results, ranked by cosine similarity descending.
// An empty store yields an empty result list, not an error.
func (s *Searcher) FindSimilar(ctx context.Context, query string, maxHits int) ([]*Result, error) {
	return s.FindSimilarWithMonitor(ctx, query, maxHits, nil)
}

// FindSimilarWithMonitor searches with monitoring. The monitor receives
// callbacks at each stage of the search process.
func (s *Searcher) FindSimilarWithMonitor(ctx context.Context, query string, maxHits int, monitor SearchMonitor) ([]*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterQueryEmbedding(embedding)

	matches, err := s.embeddings.FindSimilar(ctx, embedding, s.minSimilarity, maxHits)
	if err != nil {
		s.logger.Error("error querying for similar embeddings", "err", err)
		return nil, err
	}

	results := make([]*Result, 0, len(matches))
	for _, match := range matches {
		results = append(results, &Result{
			Content:         match.Record.Content,
			Score:           match.Score,
			SourceKind:      match.Record.SourceKind,
			SourceID:        match.Record.SourceID,
			OntologyClassID: match.Record.OntologyClassID,
			Metadata:        match.Record.Metadata,
		})
		switch match.Record.SourceKind {
		case core.SourceDocument:
			monitor.DocumentHit(match.Record, match.Score)
		default:
			monitor.EntityHit(match.Record, match.Score)
		}
	}
	monitor.Finish(results)

	return results, nil
}
