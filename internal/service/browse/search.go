package browse

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/heartmarshall/cherokee-verbs/internal/catalog"
	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

// SearchOptions narrows a search.
type SearchOptions struct {
	// Limit of zero uses the configured default. Values above
	// catalog.MaxResults are clamped.
	Limit int
	// LinkedOnly drops rows without a resolved analysis.
	LinkedOnly bool
}

// SearchResult is one ranked row.
type SearchResult struct {
	Row   *domain.DictionaryRow `json:"row"`
	Score int                   `json:"score"`
}

// Search ranks dictionary rows for query. Queries shorter than the
// configured minimum return no results.
func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if opts.Limit < 0 {
		return nil, domain.NewValidationError("limit", "must be >= 0")
	}

	q := domain.Normalize(query)
	if q == "" || utf8.RuneCountInString(q) < s.cfg.MinQueryLen {
		return []SearchResult{}, nil
	}

	limit := opts.Limit
	if limit == 0 {
		limit = s.cfg.DefaultLimit
	}
	limit = min(max(limit, 1), catalog.MaxResults)

	hits := snap.search(searchKey{query: q, linkedOnly: opts.LinkedOnly})
	if len(hits) > limit {
		hits = hits[:limit]
	}

	results := make([]SearchResult, len(hits))
	for i, h := range hits {
		results[i] = SearchResult{Row: h.Row, Score: h.Score}
	}

	s.log.DebugContext(ctx, "search",
		slog.String("query", q),
		slog.Bool("linked_only", opts.LinkedOnly),
		slog.Int("results", len(results)),
	)
	return results, nil
}

// search returns the full capped hit list for key, cached per snapshot.
func (snap *snapshot) search(key searchKey) []catalog.Hit {
	if snap.cache != nil {
		if hits, ok := snap.cache.Get(key); ok {
			return hits
		}
	}

	var keep func(*domain.DictionaryRow) bool
	if key.linkedOnly {
		keep = (*domain.DictionaryRow).IsLinked
	}
	hits := snap.cat.SearchMatching(key.query, catalog.MaxResults, keep)

	if snap.cache != nil {
		snap.cache.Add(key, hits)
	}
	return hits
}
