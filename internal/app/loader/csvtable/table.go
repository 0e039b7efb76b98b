// Package csvtable reads header-keyed CSV tables. It is the shared front end
// of the dictionary, sentence and join-table loaders.
// Pure function: bytes in, rows out. No I/O.
package csvtable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Table is a parsed CSV file whose first line is the header.
type Table struct {
	columns map[string]int
	Header  []string
	Rows    []Row
}

// Row is one data line. Values are looked up by column name through the
// owning table.
type Row struct {
	table  *Table
	values []string
	// Line is the 1-based record number, header and empty lines excluded.
	Line int
}

// Parse reads a CSV document with a header row. Records may have fewer or
// more fields than the header; missing fields read as "". Blank lines are
// skipped. A malformed document (e.g. unterminated quote) is an error.
//
// Input is UTF-8 unless a byte order mark says otherwise; spreadsheet
// exports often arrive as UTF-16 with a BOM. The BOM itself is dropped.
func Parse(data []byte) (*Table, error) {
	decoded := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1 // allow variable column count
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Table{columns: map[string]int{}}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &Table{
		columns: make(map[string]int, len(header)),
		Header:  make([]string, len(header)),
	}
	for i, name := range header {
		name = strings.TrimSpace(name)
		t.Header[i] = name
		if _, dup := t.columns[name]; !dup {
			t.columns[name] = i
		}
	}

	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++

		if isBlank(record) {
			continue
		}
		t.Rows = append(t.Rows, Row{table: t, values: record, Line: line})
	}

	return t, nil
}

// HasColumn reports whether any of the given column names is present.
func (t *Table) HasColumn(names ...string) bool {
	for _, n := range names {
		if _, ok := t.columns[n]; ok {
			return true
		}
	}
	return false
}

// Get returns the trimmed value of the first listed column present in the
// header. Absent columns and short records yield "".
func (r Row) Get(names ...string) string {
	v, _ := r.Lookup(names...)
	return v
}

// Lookup is Get that also reports whether one of the columns exists in the
// header and the record reaches it.
func (r Row) Lookup(names ...string) (string, bool) {
	for _, n := range names {
		idx, ok := r.table.columns[n]
		if !ok {
			continue
		}
		if idx >= len(r.values) {
			return "", false
		}
		return strings.TrimSpace(r.values[idx]), true
	}
	return "", false
}

// Raw returns the untrimmed value of the first listed column.
func (r Row) Raw(names ...string) string {
	for _, n := range names {
		if idx, ok := r.table.columns[n]; ok && idx < len(r.values) {
			return r.values[idx]
		}
	}
	return ""
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
