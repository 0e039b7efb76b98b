package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

// MaxResults caps every search result list.
const MaxResults = 50

// Score tiers. They are additive: a row can collect all three.
const (
	scoreRoot   = 100
	scoreExact  = 50
	scoreSubstr = 1
)

// Hit is a scored search result.
type Hit struct {
	Row   *domain.DictionaryRow
	Score int
}

// scoreKeys holds the normalized fields compared on every query so that
// searching never re-normalizes row data.
type scoreKeys struct {
	hRoot     string // hyphen-stripped label, so "null" finds null-grade roots
	gRoot     string
	headword  string
	syllabary string
}

func keysFor(row *domain.DictionaryRow) scoreKeys {
	return scoreKeys{
		hRoot:     rootKey(row.HRoot),
		gRoot:     rootKey(row.GRoot),
		headword:  domain.Normalize(row.Headword),
		syllabary: domain.Normalize(row.Syllabary),
	}
}

func rootKey(r domain.Root) string {
	return domain.StripHyphens(domain.Normalize(r.Label()))
}

// Score computes the relevance of row for query. Zero means no match.
//
//   - +100 when the hyphen-stripped query equals either hyphen-stripped root
//   - +50 when the query equals the headword or the syllabary
//   - +1 when the query is a substring of the row's search text
func Score(row *domain.DictionaryRow, query string) int {
	q := domain.Normalize(query)
	if q == "" {
		return 0
	}
	return score(keysFor(row), row.SearchMeta, q, domain.StripHyphens(q))
}

func score(k scoreKeys, meta, q, qRoot string) int {
	s := 0
	if qRoot != "" && (qRoot == k.hRoot || qRoot == k.gRoot) {
		s += scoreRoot
	}
	if q == k.headword || q == k.syllabary {
		s += scoreExact
	}
	if strings.Contains(meta, q) {
		s += scoreSubstr
	}
	return s
}

// Search returns at most MaxResults rows ranked by relevance.
func (c *Catalog) Search(query string) []*domain.DictionaryRow {
	return rowsOf(c.SearchHits(query, MaxResults))
}

// SearchLimit is Search with a smaller cap. limit is clamped to
// [1, MaxResults].
func (c *Catalog) SearchLimit(query string, limit int) []*domain.DictionaryRow {
	return rowsOf(c.SearchHits(query, limit))
}

// SearchHits scores every row, drops non-matches, orders by score
// descending then headword ascending and truncates to limit. The cap is
// applied after sorting so the best matches are never cut.
func (c *Catalog) SearchHits(query string, limit int) []Hit {
	return c.SearchMatching(query, limit, nil)
}

// SearchMatching is SearchHits restricted to rows accepted by keep. The
// filter runs before truncation. A nil keep accepts every row.
func (c *Catalog) SearchMatching(query string, limit int, keep func(*domain.DictionaryRow) bool) []Hit {
	limit = clampLimit(limit)

	q := domain.Normalize(query)
	if q == "" {
		return []Hit{}
	}
	qRoot := domain.StripHyphens(q)

	hits := make([]Hit, 0)
	for i, row := range c.rows {
		if keep != nil && !keep(row) {
			continue
		}
		if s := score(c.keys[i], row.SearchMeta, q, qRoot); s > 0 {
			hits = append(hits, Hit{Row: row, Score: s})
		}
	}

	slices.SortStableFunc(hits, func(a, b Hit) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Row.Headword, b.Row.Headword)
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxResults {
		return MaxResults
	}
	return limit
}

func rowsOf(hits []Hit) []*domain.DictionaryRow {
	rows := make([]*domain.DictionaryRow, len(hits))
	for i, h := range hits {
		rows[i] = h.Row
	}
	return rows
}
