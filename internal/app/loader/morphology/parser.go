// Package morphology parses the reconstructed-verb dataset: a JSON list of
// analysis objects. Elements are decoded one at a time so that a single
// malformed analysis is dropped instead of failing the load.
package morphology

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

// rawEntry mirrors one analysis object. Scalar fields are kept raw so that
// "absent", "null" and "" stay distinguishable and wrong types do not abort
// decoding of the whole element.
type rawEntry struct {
	EntryNo          json.RawMessage `json:"entry_no"`
	Definition       json.RawMessage `json:"definition"`
	ClassName        json.RawMessage `json:"class_name"`
	HGradeRoot       json.RawMessage `json:"h_grade_root"`
	GlottalGradeRoot json.RawMessage `json:"glottal_grade_root"`
	Config           domain.Value    `json:"config"`
	OriginalStems    domain.Value    `json:"original_stems"`
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalItems     int
	MalformedItems int
	MissingEntryNo int
}

// Parse decodes the dataset. The top level must be a JSON array; anything
// else is a parse failure of the whole source.
func Parse(data []byte) ([]domain.MorphologicalEntry, Stats, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, Stats{}, fmt.Errorf("decode morphology json: %w", err)
	}

	stats := Stats{TotalItems: len(items)}
	entries := make([]domain.MorphologicalEntry, 0, len(items))

	for _, item := range items {
		var raw rawEntry
		if err := json.Unmarshal(item, &raw); err != nil {
			stats.MalformedItems++
			continue
		}

		entry := domain.MorphologicalEntry{
			EntryNo:          EntryNoKey(raw.EntryNo),
			Definition:       textOf(raw.Definition),
			ClassName:        textOf(raw.ClassName),
			HGradeRoot:       domain.ResolveRoot(optionalText(raw.HGradeRoot)),
			GlottalGradeRoot: domain.ResolveRoot(optionalText(raw.GlottalGradeRoot)),
			Config:           raw.Config.Object(),
			OriginalStems:    raw.OriginalStems.Object(),
		}
		if entry.EntryNo == "" {
			stats.MissingEntryNo++
		}
		entries = append(entries, entry)
	}

	return entries, stats, nil
}

// EntryNoKey coerces a raw entry_no (string or number) to the canonical
// string key used by the index. Integral numbers print without a fraction,
// so 12, 12.0 and "12" all map to "12".
func EntryNoKey(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return ""
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return n.String()
}

// optionalText returns nil for an absent or null field and the string value
// otherwise. Non-string values count as absent.
func optionalText(raw json.RawMessage) *string {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

func textOf(raw json.RawMessage) string {
	if s := optionalText(raw); s != nil {
		return strings.TrimSpace(*s)
	}
	return ""
}
