// Package catalog links the four loaded sources and builds the read-only
// indexes behind every query: analyses by entry number, root and class,
// example sentences by dictionary entry, and the ranked row search.
//
// A Catalog is immutable once Build returns and is safe for concurrent use.
package catalog

import (
	"sort"
	"strings"

	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

// Input is the loader output consumed by Build. Build never modifies it.
type Input struct {
	Rows      []domain.DictionaryRow
	Entries   []domain.MorphologicalEntry
	Sentences map[string]domain.SentenceExample
	Links     []domain.SentenceLink
	Classes   map[string]domain.VerbClassInfo
}

// Stats summarizes a build for logging.
type Stats struct {
	RowsTotal           int `json:"rows_total"`
	RowsKept            int `json:"rows_kept"`
	RowsLinked          int `json:"rows_linked"`
	Entries             int `json:"entries"`
	Roots               int `json:"roots"`
	Classes             int `json:"classes"`
	LinksTotal          int `json:"links_total"`
	LinksUnresolved     int `json:"links_unresolved"`
	LinksDuplicate      int `json:"links_duplicate"`
	EntriesWithExamples int `json:"entries_with_examples"`
}

// Build links dictionary rows to analyses and example sentences and
// constructs every index. It is synchronous, single-threaded and pure.
func Build(in Input) *Catalog {
	c := &Catalog{
		byEntryNo:    make(map[string]*domain.MorphologicalEntry, len(in.Entries)),
		byRoot:       make(map[domain.Root][]*domain.MorphologicalEntry),
		byClass:      make(map[string][]*domain.MorphologicalEntry),
		rowByEntryNo: make(map[string]*domain.DictionaryRow),
		rowByIndex:   make(map[string]*domain.DictionaryRow),
		classes:      make(map[string]domain.VerbClassInfo, len(in.Classes)),
	}
	for name, info := range in.Classes {
		c.classes[name] = info
	}

	c.indexEntries(in.Entries)
	c.indexRows(in.Rows)
	c.indexSentences(in.Sentences, in.Links)
	c.summarize()

	c.stats.RowsTotal = len(in.Rows)
	c.stats.LinksTotal = len(in.Links)
	return c
}

// indexEntries builds byEntryNo (last write wins), byRoot and byClass
// (multimaps in source order).
func (c *Catalog) indexEntries(src []domain.MorphologicalEntry) {
	entries := make([]domain.MorphologicalEntry, len(src))
	copy(entries, src)

	c.entries = make([]*domain.MorphologicalEntry, len(entries))
	for i := range entries {
		e := &entries[i]
		c.entries[i] = e

		if e.EntryNo != "" {
			c.byEntryNo[e.EntryNo] = e
		}

		c.byRoot[e.HGradeRoot] = append(c.byRoot[e.HGradeRoot], e)

		class := e.ClassName
		if class == "" {
			class = domain.UnclassifiedClass
		}
		c.byClass[class] = append(c.byClass[class], e)
	}
	c.stats.Entries = len(entries)
}

// indexRows keeps verb rows with a headword, resolves their roots through
// the Source_ID join key and derives the search text.
func (c *Catalog) indexRows(src []domain.DictionaryRow) {
	for i := range src {
		if !isSearchableVerb(&src[i]) {
			continue
		}

		row := new(domain.DictionaryRow)
		*row = src[i]

		row.OtherForms = domain.ParseOtherForms(row.OtherFormsRaw)
		row.MorphKey = MorphKey(row.SourceID)
		row.HRoot, row.GRoot = domain.UnknownRoot(), domain.UnknownRoot()

		if entry, ok := c.byEntryNo[row.MorphKey]; ok && row.MorphKey != "" {
			row.HRoot = entry.HGradeRoot
			row.GRoot = entry.GlottalGradeRoot
			c.stats.RowsLinked++
		}

		row.SearchMeta = searchMeta(row)

		if row.MorphKey != "" {
			if _, seen := c.rowByEntryNo[row.MorphKey]; !seen {
				c.rowByEntryNo[row.MorphKey] = row
			}
		}
		if _, seen := c.rowByIndex[row.EntryIndex]; !seen {
			c.rowByIndex[row.EntryIndex] = row
		}

		c.rows = append(c.rows, row)
		c.keys = append(c.keys, keysFor(row))
	}
	c.stats.RowsKept = len(c.rows)
}

// indexSentences walks the join table in order and attaches each resolvable
// sentence once per (sentence ID, word index) for a given entry.
func (c *Catalog) indexSentences(byID map[string]domain.SentenceExample, links []domain.SentenceLink) {
	type dedupKey struct {
		sentenceID string
		wordIndex  string
	}

	c.sentencesByEntryID = make(map[string][]domain.SentenceExample)
	seen := make(map[string]map[dedupKey]struct{})

	for _, link := range links {
		sentence, ok := byID[link.SentenceID]
		if !ok {
			c.stats.LinksUnresolved++
			continue
		}

		key := dedupKey{sentenceID: link.SentenceID, wordIndex: link.WordIndex}
		perEntry, ok := seen[link.EntryID]
		if !ok {
			perEntry = make(map[dedupKey]struct{})
			seen[link.EntryID] = perEntry
		}
		if _, dup := perEntry[key]; dup {
			c.stats.LinksDuplicate++
			continue
		}
		perEntry[key] = struct{}{}

		sentence.WordIndex = link.WordIndex
		c.sentencesByEntryID[link.EntryID] = append(c.sentencesByEntryID[link.EntryID], sentence)
	}
	c.stats.EntriesWithExamples = len(c.sentencesByEntryID)
}

// summarize prepares the sorted root and class listings used for browsing.
func (c *Catalog) summarize() {
	c.rootList = make([]RootSummary, 0, len(c.byRoot))
	for root, entries := range c.byRoot {
		c.rootList = append(c.rootList, RootSummary{Root: root, Label: root.Label(), Entries: len(entries)})
	}
	sort.Slice(c.rootList, func(i, j int) bool {
		return c.rootList[i].Label < c.rootList[j].Label
	})

	c.classList = make([]ClassSummary, 0, len(c.byClass))
	for name, entries := range c.byClass {
		_, hasInfo := c.classes[name]
		c.classList = append(c.classList, ClassSummary{Name: name, Entries: len(entries), HasEndings: hasInfo})
	}
	sort.Slice(c.classList, func(i, j int) bool {
		return c.classList[i].Name < c.classList[j].Name
	})

	c.stats.Roots = len(c.rootList)
	c.stats.Classes = len(c.classList)
}

// MorphKey returns the part of a Source_ID before the first '.', the
// foreign key into the analyses. An ID without a '.' is its own key.
func MorphKey(sourceID string) string {
	key, _, _ := strings.Cut(strings.TrimSpace(sourceID), ".")
	return key
}

func isSearchableVerb(row *domain.DictionaryRow) bool {
	if strings.TrimSpace(row.Headword) == "" {
		return false
	}
	return strings.Contains(strings.ToLower(row.PartOfSpeech), "verb")
}

// searchMeta is the only substrate of substring search: anything not
// included here cannot be found.
func searchMeta(row *domain.DictionaryRow) string {
	h := domain.Normalize(row.HRoot.Label())
	g := domain.Normalize(row.GRoot.Label())

	tokens := domain.FormTokens(row.OtherForms)
	parts := make([]string, 0, 7+len(tokens))
	parts = append(parts,
		domain.Normalize(row.Headword),
		domain.Normalize(row.Syllabary),
		domain.Normalize(row.Definition),
		h, domain.StripHyphens(h),
		g, domain.StripHyphens(g),
	)
	for _, tok := range tokens {
		parts = append(parts, domain.Normalize(tok))
	}
	return strings.Join(parts, " ")
}
