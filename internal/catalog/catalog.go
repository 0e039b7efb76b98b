package catalog

import (
	"slices"
	"strings"

	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

// Catalog is one published snapshot of the linked datasets.
type Catalog struct {
	rows []*domain.DictionaryRow
	keys []scoreKeys

	entries            []*domain.MorphologicalEntry
	byEntryNo          map[string]*domain.MorphologicalEntry
	byRoot             map[domain.Root][]*domain.MorphologicalEntry
	byClass            map[string][]*domain.MorphologicalEntry
	sentencesByEntryID map[string][]domain.SentenceExample
	rowByEntryNo       map[string]*domain.DictionaryRow
	rowByIndex         map[string]*domain.DictionaryRow
	classes            map[string]domain.VerbClassInfo

	rootList  []RootSummary
	classList []ClassSummary
	stats     Stats
}

// RootSummary is one row of the root listing.
type RootSummary struct {
	Root    domain.Root `json:"root"`
	Label   string      `json:"label"`
	Entries int         `json:"entries"`
}

// ClassSummary is one row of the class listing.
type ClassSummary struct {
	Name       string `json:"name"`
	Entries    int    `json:"entries"`
	HasEndings bool   `json:"has_endings"`
}

// ByEntryNo returns the analysis with the given canonical entry number.
func (c *Catalog) ByEntryNo(entryNo string) (*domain.MorphologicalEntry, bool) {
	e, ok := c.byEntryNo[strings.TrimSpace(entryNo)]
	return e, ok
}

// ByRoot returns every analysis whose h-grade root equals root, in source
// order. Null and unknown roots are ordinary keys.
func (c *Catalog) ByRoot(root domain.Root) []*domain.MorphologicalEntry {
	return slices.Clone(c.byRoot[root])
}

// ByClass returns every analysis of the named class in source order.
// Analyses without a class are filed under domain.UnclassifiedClass.
func (c *Catalog) ByClass(name string) []*domain.MorphologicalEntry {
	return slices.Clone(c.byClass[name])
}

// Sentences returns the deduplicated examples linked to a dictionary
// entry index, in join-table order.
func (c *Catalog) Sentences(entryID string) []domain.SentenceExample {
	return slices.Clone(c.sentencesByEntryID[entryID])
}

// FindRowByEntryNo returns the first dictionary row whose join key equals
// entryNo.
func (c *Catalog) FindRowByEntryNo(entryNo string) (*domain.DictionaryRow, bool) {
	row, ok := c.rowByEntryNo[strings.TrimSpace(entryNo)]
	return row, ok
}

// RowByIndex returns the kept dictionary row with the given entry index.
func (c *Catalog) RowByIndex(entryIndex string) (*domain.DictionaryRow, bool) {
	row, ok := c.rowByIndex[strings.TrimSpace(entryIndex)]
	return row, ok
}

// ClassInfo returns the suffix endings of a verb class.
func (c *Catalog) ClassInfo(name string) (domain.VerbClassInfo, bool) {
	info, ok := c.classes[name]
	return info, ok
}

// Roots lists every h-grade root sorted by label.
func (c *Catalog) Roots() []RootSummary {
	return slices.Clone(c.rootList)
}

// Classes lists every class that has at least one analysis, sorted by name.
func (c *Catalog) Classes() []ClassSummary {
	return slices.Clone(c.classList)
}

// Len returns the number of searchable dictionary rows.
func (c *Catalog) Len() int { return len(c.rows) }

// Stats returns the counters collected by Build.
func (c *Catalog) Stats() Stats { return c.stats }
