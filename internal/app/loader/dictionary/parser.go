// Package dictionary parses the flat dictionary table.
// Pure function: bytes in, domain rows out. Filtering and linking happen
// later in the catalog builder.
package dictionary

import (
	"fmt"
	"strconv"

	"github.com/heartmarshall/cherokee-verbs/internal/app/loader/csvtable"
	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

// Column names of the dictionary table. The index column is written by
// pandas without a header name, so the empty name is accepted too.
var (
	colIndex        = []string{"Index", "index", ""}
	colEntry        = []string{"Entry"}
	colSyllabary    = []string{"Syllabary"}
	colPartOfSpeech = []string{"Part_of_Speech"}
	colDefinition   = []string{"Definition"}
	colOtherForms   = []string{"Other_Forms"}
	colSourceID     = []string{"Source_ID"}
)

// Stats holds parser statistics for logging.
type Stats struct {
	TotalRows     int
	MissingIndex  int
	MissingSource int
}

// Parse reads the dictionary table. Every data line becomes a row; a row
// without an index value takes its 0-based position, which is what the
// join table uses for unnamed index columns.
func Parse(data []byte) ([]domain.DictionaryRow, Stats, error) {
	tbl, err := csvtable.Parse(data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("parse dictionary csv: %w", err)
	}

	var stats Stats
	rows := make([]domain.DictionaryRow, 0, len(tbl.Rows))

	for i, r := range tbl.Rows {
		stats.TotalRows++

		index := r.Get(colIndex...)
		if index == "" {
			stats.MissingIndex++
			index = strconv.Itoa(i)
		}

		sourceID := r.Get(colSourceID...)
		if sourceID == "" {
			stats.MissingSource++
		}

		otherForms := r.Raw(colOtherForms...)

		rows = append(rows, domain.DictionaryRow{
			EntryIndex:    index,
			SourceID:      sourceID,
			Headword:      r.Get(colEntry...),
			Syllabary:     r.Get(colSyllabary...),
			PartOfSpeech:  r.Get(colPartOfSpeech...),
			Definition:    r.Get(colDefinition...),
			OtherFormsRaw: otherForms,
			OtherForms:    domain.ParseOtherForms(otherForms),
		})
	}

	return rows, stats, nil
}
