// Package sentences parses the sentence table and the entry/sentence join
// table. Pure functions: bytes in, domain structs out.
package sentences

import (
	"fmt"

	"github.com/heartmarshall/cherokee-verbs/internal/app/loader/csvtable"
	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

// Column aliases for the sentence table; exports from different tools name
// the text columns differently.
var (
	colID              = []string{"ID", "Id", "id"}
	colSyllabary       = []string{"Syllabary", "Sentence_Syllabary"}
	colTransliteration = []string{"Transliteration", "Phonetic", "Latin"}
	colToneMarked      = []string{"Tone", "Tone_Marked", "Tone_Marked_Text"}
	colEnglish         = []string{"English", "Translation"}

	colEntryID    = []string{"Entry_ID"}
	colSentenceID = []string{"Sentence_ID"}
	colWordIndex  = []string{"Word_Index"}
)

// Stats holds parser statistics for logging.
type Stats struct {
	TotalRows   int
	MissingID   int
	DuplicateID int
}

// LinkStats holds join-table statistics for logging.
type LinkStats struct {
	TotalRows  int
	Incomplete int
}

// Parse reads the sentence table into a map keyed by trimmed sentence ID.
// Rows without an ID are dropped; for duplicate IDs the last row wins.
func Parse(data []byte) (map[string]domain.SentenceExample, Stats, error) {
	tbl, err := csvtable.Parse(data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("parse sentences csv: %w", err)
	}

	var stats Stats
	byID := make(map[string]domain.SentenceExample, len(tbl.Rows))

	for _, r := range tbl.Rows {
		stats.TotalRows++

		id := r.Get(colID...)
		if id == "" {
			stats.MissingID++
			continue
		}
		if _, dup := byID[id]; dup {
			stats.DuplicateID++
		}

		byID[id] = domain.SentenceExample{
			ID:              id,
			Syllabary:       r.Get(colSyllabary...),
			Transliteration: r.Get(colTransliteration...),
			ToneMarked:      r.Get(colToneMarked...),
			English:         r.Get(colEnglish...),
		}
	}

	return byID, stats, nil
}

// ParseLinks reads the join table in source order. Links missing either the
// entry or the sentence ID are dropped. An empty word index is kept: it is
// still part of the dedup key.
func ParseLinks(data []byte) ([]domain.SentenceLink, LinkStats, error) {
	tbl, err := csvtable.Parse(data)
	if err != nil {
		return nil, LinkStats{}, fmt.Errorf("parse join table csv: %w", err)
	}

	var stats LinkStats
	links := make([]domain.SentenceLink, 0, len(tbl.Rows))

	for _, r := range tbl.Rows {
		stats.TotalRows++

		link := domain.SentenceLink{
			EntryID:    r.Get(colEntryID...),
			SentenceID: r.Get(colSentenceID...),
			WordIndex:  r.Get(colWordIndex...),
		}
		if link.EntryID == "" || link.SentenceID == "" {
			stats.Incomplete++
			continue
		}
		links = append(links, link)
	}

	return links, stats, nil
}
