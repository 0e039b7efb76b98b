package browse

import (
	"context"
	"strings"

	"github.com/heartmarshall/cherokee-verbs/internal/catalog"
	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

// EntryView is an analysis with everything linked to it: the dictionary
// row, class endings and the row's example sentences.
type EntryView struct {
	Entry        *domain.MorphologicalEntry `json:"entry"`
	SetType      string                     `json:"set_type,omitempty"`
	Distributive bool                       `json:"distributive"`
	Stems        map[string]string          `json:"stems,omitempty"`
	Row          *domain.DictionaryRow      `json:"row,omitempty"`
	Class        *domain.VerbClassInfo      `json:"class,omitempty"`
	Sentences    []domain.SentenceExample   `json:"sentences"`
}

// RootView lists the analyses sharing one h-grade root.
type RootView struct {
	Root    domain.Root `json:"root"`
	Entries []EntryView `json:"entries"`
}

// ClassView lists the analyses of one verb class.
type ClassView struct {
	Name    string                `json:"name"`
	Endings *domain.VerbClassInfo `json:"endings,omitempty"`
	Entries []EntryView           `json:"entries"`
}

// RowView is a dictionary row with its analysis, if any, and sentences.
type RowView struct {
	Row       *domain.DictionaryRow    `json:"row"`
	Entry     *EntryView               `json:"entry,omitempty"`
	Sentences []domain.SentenceExample `json:"sentences"`
}

// Root returns every analysis filed under the root label. "null" and
// "unknown" address the two placeholder roots.
func (s *Service) Root(_ context.Context, label string) (*RootView, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	root := domain.ParseRootLabel(label)
	entries := snap.cat.ByRoot(root)
	if len(entries) == 0 {
		return nil, domain.ErrNotFound
	}

	return &RootView{Root: root, Entries: entryViews(snap.cat, entries)}, nil
}

// Class returns a verb class with its endings and analyses.
func (s *Service) Class(_ context.Context, name string) (*ClassView, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	entries := snap.cat.ByClass(name)
	info, hasInfo := snap.cat.ClassInfo(name)
	if len(entries) == 0 && !hasInfo {
		return nil, domain.ErrNotFound
	}

	view := &ClassView{Name: name, Entries: entryViews(snap.cat, entries)}
	if hasInfo {
		view.Endings = &info
	}
	return view, nil
}

// Entry returns one analysis by entry number.
func (s *Service) Entry(_ context.Context, entryNo string) (*EntryView, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	e, ok := snap.cat.ByEntryNo(entryNo)
	if !ok {
		return nil, domain.ErrNotFound
	}
	view := entryView(snap.cat, e)
	return &view, nil
}

// Row returns a dictionary row by entry index, the target of a search hit.
func (s *Service) Row(_ context.Context, entryIndex string) (*RowView, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	row, ok := snap.cat.RowByIndex(entryIndex)
	if !ok {
		return nil, domain.ErrNotFound
	}

	view := &RowView{Row: row, Sentences: nonNil(snap.cat.Sentences(row.EntryIndex))}
	if e, ok := snap.cat.ByEntryNo(row.MorphKey); ok && row.MorphKey != "" {
		ev := entryView(snap.cat, e)
		view.Entry = &ev
	}
	return view, nil
}

// Sentences returns the examples linked to a dictionary entry index.
func (s *Service) Sentences(_ context.Context, entryID string) ([]domain.SentenceExample, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(entryID) == "" {
		return nil, domain.NewValidationError("entry_id", "required")
	}
	return nonNil(snap.cat.Sentences(entryID)), nil
}

// Roots lists roots whose label starts with prefix, ignoring hyphens and
// case. An empty prefix lists every root.
func (s *Service) Roots(_ context.Context, prefix string) ([]catalog.RootSummary, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	all := snap.cat.Roots()
	p := domain.StripHyphens(domain.Normalize(prefix))
	if p == "" {
		return all, nil
	}

	out := make([]catalog.RootSummary, 0)
	for _, r := range all {
		if strings.HasPrefix(domain.StripHyphens(domain.Normalize(r.Label)), p) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Classes lists every verb class that has analyses.
func (s *Service) Classes(_ context.Context) ([]catalog.ClassSummary, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.cat.Classes(), nil
}

func entryViews(cat *catalog.Catalog, entries []*domain.MorphologicalEntry) []EntryView {
	views := make([]EntryView, len(entries))
	for i, e := range entries {
		views[i] = entryView(cat, e)
	}
	return views
}

func entryView(cat *catalog.Catalog, e *domain.MorphologicalEntry) EntryView {
	v := EntryView{
		Entry:        e,
		SetType:      e.SetType(),
		Distributive: e.Distributive(),
		Stems:        e.Stems(),
		Sentences:    []domain.SentenceExample{},
	}
	if row, ok := cat.FindRowByEntryNo(e.EntryNo); ok && e.EntryNo != "" {
		v.Row = row
		v.Sentences = nonNil(cat.Sentences(row.EntryIndex))
	}
	if info, ok := cat.ClassInfo(e.ClassName); ok {
		v.Class = &info
	}
	return v
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
