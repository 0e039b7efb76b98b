package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/heartmarshall/cherokee-verbs/internal/catalog"
	"github.com/heartmarshall/cherokee-verbs/internal/domain"
	"github.com/heartmarshall/cherokee-verbs/internal/service/browse"
)

const maxDefinitionWidth = 60

// renderer prints views as aligned tables or, with asJSON, as indented JSON.
type renderer struct {
	w      io.Writer
	asJSON bool
}

func newRenderer(w io.Writer, asJSON bool) *renderer {
	return &renderer{w: w, asJSON: asJSON}
}

func (r *renderer) emit(v any, table func(tw *tabwriter.Writer)) error {
	if r.asJSON {
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func (r *renderer) searchResults(results []browse.SearchResult) error {
	return r.emit(results, func(tw *tabwriter.Writer) {
		if len(results) == 0 {
			fmt.Fprintln(tw, "no matches")
			return
		}
		fmt.Fprintln(tw, "SCORE\tINDEX\tHEADWORD\tSYLLABARY\tH-ROOT\tG-ROOT\tDEFINITION")
		for _, res := range results {
			row := res.Row
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				res.Score, row.EntryIndex, row.Headword, row.Syllabary,
				row.HRoot.Label(), row.GRoot.Label(), truncate(row.Definition))
		}
	})
}

func (r *renderer) rootView(v *browse.RootView) error {
	return r.emit(v, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "root %s: %d analyses\n\n", v.Root.Label(), len(v.Entries))
		writeEntryTable(tw, v.Entries)
	})
}

func (r *renderer) classView(v *browse.ClassView) error {
	return r.emit(v, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "class %s: %d analyses\n", v.Name, len(v.Entries))
		if v.Endings != nil {
			writeEndings(tw, *v.Endings)
		}
		fmt.Fprintln(tw)
		writeEntryTable(tw, v.Entries)
	})
}

func (r *renderer) entryView(v *browse.EntryView) error {
	return r.emit(v, func(tw *tabwriter.Writer) {
		writeEntryDetail(tw, v)
	})
}

func (r *renderer) rowView(v *browse.RowView) error {
	return r.emit(v, func(tw *tabwriter.Writer) {
		writeRow(tw, v.Row)
		if v.Entry != nil {
			fmt.Fprintln(tw)
			writeEntryDetail(tw, v.Entry)
			return
		}
		writeSentences(tw, v.Sentences)
	})
}

func (r *renderer) sentenceList(sentences []domain.SentenceExample) error {
	return r.emit(sentences, func(tw *tabwriter.Writer) {
		writeSentences(tw, sentences)
	})
}

func (r *renderer) rootList(roots []catalog.RootSummary) error {
	return r.emit(roots, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ROOT\tANALYSES")
		for _, root := range roots {
			fmt.Fprintf(tw, "%s\t%d\n", root.Label, root.Entries)
		}
	})
}

func (r *renderer) classList(classes []catalog.ClassSummary) error {
	return r.emit(classes, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "CLASS\tANALYSES\tENDINGS")
		for _, c := range classes {
			endings := "-"
			if c.HasEndings {
				endings = "yes"
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\n", c.Name, c.Entries, endings)
		}
	})
}

func (r *renderer) status(st browse.Status) error {
	return r.emit(st, func(tw *tabwriter.Writer) {
		s := st.Stats
		fmt.Fprintf(tw, "dictionary rows\t%d\n", s.RowsTotal)
		fmt.Fprintf(tw, "verb rows\t%d\n", s.RowsKept)
		fmt.Fprintf(tw, "linked rows\t%d\n", s.RowsLinked)
		fmt.Fprintf(tw, "analyses\t%d\n", s.Entries)
		fmt.Fprintf(tw, "roots\t%d\n", s.Roots)
		fmt.Fprintf(tw, "classes\t%d\n", s.Classes)
		fmt.Fprintf(tw, "sentence links\t%d (%d unresolved, %d duplicate)\n", s.LinksTotal, s.LinksUnresolved, s.LinksDuplicate)
		fmt.Fprintf(tw, "rows with examples\t%d\n", s.EntriesWithExamples)
	})
}

func writeEntryTable(tw *tabwriter.Writer, entries []browse.EntryView) {
	fmt.Fprintln(tw, "ENTRY\tCLASS\tH-ROOT\tG-ROOT\tHEADWORD\tDEFINITION")
	for _, e := range entries {
		headword := "-"
		if e.Row != nil {
			headword = e.Row.Headword
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Entry.EntryNo, e.Entry.ClassName, e.Entry.HGradeRoot.Label(),
			e.Entry.GlottalGradeRoot.Label(), headword, truncate(e.Entry.Definition))
	}
}

func writeEntryDetail(tw *tabwriter.Writer, v *browse.EntryView) {
	e := v.Entry
	fmt.Fprintf(tw, "entry\t%s\n", e.EntryNo)
	fmt.Fprintf(tw, "definition\t%s\n", e.Definition)
	fmt.Fprintf(tw, "class\t%s\n", e.ClassName)
	fmt.Fprintf(tw, "h-grade root\t%s\n", e.HGradeRoot.Label())
	fmt.Fprintf(tw, "glottal-grade root\t%s\n", e.GlottalGradeRoot.Label())
	if v.SetType != "" {
		fmt.Fprintf(tw, "set type\t%s\n", v.SetType)
	}
	fmt.Fprintf(tw, "distributive\t%t\n", v.Distributive)

	keys := make([]string, 0, len(v.Stems))
	for k := range v.Stems {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(tw, "stem %s\t%s\n", k, v.Stems[k])
	}
	if v.Class != nil {
		writeEndings(tw, *v.Class)
	}
	if v.Row != nil {
		fmt.Fprintln(tw)
		writeRow(tw, v.Row)
	}
	writeSentences(tw, v.Sentences)
}

func writeRow(tw *tabwriter.Writer, row *domain.DictionaryRow) {
	fmt.Fprintf(tw, "index\t%s\n", row.EntryIndex)
	fmt.Fprintf(tw, "headword\t%s\n", row.Headword)
	fmt.Fprintf(tw, "syllabary\t%s\n", row.Syllabary)
	fmt.Fprintf(tw, "part of speech\t%s\n", row.PartOfSpeech)
	fmt.Fprintf(tw, "definition\t%s\n", row.Definition)
	for _, f := range row.OtherForms {
		fmt.Fprintf(tw, "  %s\t%s %s %s\n", f.Label, f.Syllabary, f.Transliteration, f.ToneForm)
	}
}

func writeEndings(tw *tabwriter.Writer, info domain.VerbClassInfo) {
	fmt.Fprintf(tw, "present\t%s\n", info.Present)
	fmt.Fprintf(tw, "imperfective\t%s\n", info.Imperfective)
	fmt.Fprintf(tw, "perfective\t%s\n", info.Perfective)
	fmt.Fprintf(tw, "imperative\t%s\n", info.Imperative)
	fmt.Fprintf(tw, "infinitive\t%s\n", info.Infinitive)
}

func writeSentences(tw *tabwriter.Writer, sentences []domain.SentenceExample) {
	if len(sentences) == 0 {
		return
	}
	fmt.Fprintf(tw, "\n%d example sentences\n", len(sentences))
	for _, s := range sentences {
		fmt.Fprintf(tw, "  %s\t%s\n", s.ID, s.Syllabary)
		if s.Transliteration != "" {
			fmt.Fprintf(tw, "\t%s\n", s.Transliteration)
		}
		if s.English != "" {
			fmt.Fprintf(tw, "\t%s\n", s.English)
		}
	}
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxDefinitionWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxDefinitionWidth-1]) + "…"
}
