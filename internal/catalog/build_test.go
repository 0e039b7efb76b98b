package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

func fixtureInput() Input {
	return Input{
		Rows: []domain.DictionaryRow{
			{EntryIndex: "0", SourceID: "12.1", Headword: "adadega", Syllabary: "ᎠᏓᏕᎦ", PartOfSpeech: "verb (intransitive)",
				Definition: "it’s bouncing", OtherFormsRaw: "3rd:gadadega^ᎦᏓᏕᎦ^gạdạdéga"},
			{EntryIndex: "1", SourceID: "300.2", Headword: "ama", Syllabary: "ᎠᎹ", PartOfSpeech: "n.", Definition: "water"},
			{EntryIndex: "2", SourceID: "13.1", Headword: "", PartOfSpeech: "verb (transitive)", Definition: "no headword"},
			{EntryIndex: "3", SourceID: "13.4", Headword: "agiha", Syllabary: "ᎠᎩᎭ", PartOfSpeech: "VERB", Definition: "he is eating it"},
			{EntryIndex: "4", SourceID: "99", Headword: "galiha", PartOfSpeech: "verb (transitive)", Definition: "he is boiling it"},
			{EntryIndex: "5", SourceID: "12.2", Headword: "adadegi", PartOfSpeech: "verb (transitive)", Definition: "they are bouncing"},
		},
		Entries: []domain.MorphologicalEntry{
			{EntryNo: "12", Definition: "first", ClassName: "A",
				HGradeRoot: domain.NewRoot("a-dade-g"), GlottalGradeRoot: domain.NewRoot("a-dade-g")},
			{EntryNo: "13", Definition: "null grade", HGradeRoot: domain.NullRoot(), GlottalGradeRoot: domain.NullRoot()},
			{EntryNo: "14", Definition: "missing", ClassName: "B"},
			{EntryNo: "12", Definition: "second", ClassName: "A",
				HGradeRoot: domain.NewRoot("a-dade-g"), GlottalGradeRoot: domain.NewRoot("a-dade-h")},
			{EntryNo: "", Definition: "no number", ClassName: "B"},
		},
		Sentences: map[string]domain.SentenceExample{
			"s1": {ID: "s1", Syllabary: "ᎠᏓᏕᎦ ᎠᏂ", English: "it is bouncing here"},
			"s2": {ID: "s2", Syllabary: "ᎠᎩᎭ", English: "he is eating it"},
		},
		Links: []domain.SentenceLink{
			{EntryID: "0", SentenceID: "s1", WordIndex: "1"},
			{EntryID: "0", SentenceID: "s1", WordIndex: "1"},
			{EntryID: "0", SentenceID: "s1", WordIndex: "2"},
			{EntryID: "0", SentenceID: "s2", WordIndex: ""},
			{EntryID: "0", SentenceID: "missing", WordIndex: "1"},
			{EntryID: "3", SentenceID: "s2", WordIndex: "0"},
		},
		Classes: map[string]domain.VerbClassInfo{
			"A": {Present: "-a", Imperfective: "-o", Perfective: "-v", Imperative: "-a", Infinitive: "-di"},
		},
	}
}

func TestBuild_FiltersRows(t *testing.T) {
	t.Parallel()

	c := Build(fixtureInput())

	assert.Equal(t, 4, c.Len())
	_, ok := c.RowByIndex("1")
	assert.False(t, ok, "non-verb rows are dropped")
	_, ok = c.RowByIndex("2")
	assert.False(t, ok, "rows without a headword are dropped")

	row, ok := c.RowByIndex("3")
	require.True(t, ok, "part of speech match is case-insensitive")
	assert.Equal(t, "agiha", row.Headword)
}

func TestBuild_ResolvesRoots(t *testing.T) {
	t.Parallel()

	c := Build(fixtureInput())

	tests := []struct {
		index    string
		morphKey string
		hRoot    domain.Root
		gRoot    domain.Root
	}{
		{index: "0", morphKey: "12", hRoot: domain.NewRoot("a-dade-g"), gRoot: domain.NewRoot("a-dade-h")},
		{index: "3", morphKey: "13", hRoot: domain.NullRoot(), gRoot: domain.NullRoot()},
		{index: "4", morphKey: "99", hRoot: domain.UnknownRoot(), gRoot: domain.UnknownRoot()},
	}

	for _, tt := range tests {
		t.Run(tt.index, func(t *testing.T) {
			t.Parallel()
			row, ok := c.RowByIndex(tt.index)
			require.True(t, ok)
			assert.Equal(t, tt.morphKey, row.MorphKey)
			assert.Equal(t, tt.hRoot, row.HRoot)
			assert.Equal(t, tt.gRoot, row.GRoot)
		})
	}
}

func TestBuild_SearchMeta(t *testing.T) {
	t.Parallel()

	c := Build(fixtureInput())
	row, ok := c.RowByIndex("0")
	require.True(t, ok)

	for _, want := range []string{"adadega", "ᎠᏓᏕᎦ", "it's bouncing", "a-dade-g", "adadeg", "adadeh", "gadadega", "gạdạdéga"} {
		assert.Contains(t, row.SearchMeta, domain.Normalize(want))
	}
	assert.Equal(t, row.SearchMeta, domain.Normalize(row.SearchMeta))

	unlinked, ok := c.RowByIndex("4")
	require.True(t, ok)
	assert.Contains(t, unlinked.SearchMeta, "unknown")
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := fixtureInput()
	Build(in)

	assert.Empty(t, in.Rows[0].MorphKey)
	assert.Empty(t, in.Rows[0].SearchMeta)
	assert.Nil(t, in.Rows[0].OtherForms)
	assert.True(t, in.Rows[0].HRoot.IsUnknown())
}

func TestBuild_EntryIndexes(t *testing.T) {
	t.Parallel()

	c := Build(fixtureInput())

	e, ok := c.ByEntryNo("12")
	require.True(t, ok)
	assert.Equal(t, "second", e.Definition, "duplicate entry numbers: last write wins")

	_, ok = c.ByEntryNo("")
	assert.False(t, ok)
	_, ok = c.ByEntryNo("404")
	assert.False(t, ok)

	byRoot := c.ByRoot(domain.NewRoot("a-dade-g"))
	require.Len(t, byRoot, 2)
	assert.Equal(t, "first", byRoot[0].Definition)
	assert.Equal(t, "second", byRoot[1].Definition)

	null := c.ByRoot(domain.NullRoot())
	require.Len(t, null, 1)
	assert.Equal(t, "null grade", null[0].Definition)

	unknown := c.ByRoot(domain.UnknownRoot())
	require.Len(t, unknown, 2, "null and unknown stay distinct keys")
	assert.Equal(t, "missing", unknown[0].Definition)

	assert.Empty(t, c.ByRoot(domain.NewRoot("zzz")))

	assert.Len(t, c.ByClass("A"), 2)
	assert.Len(t, c.ByClass("B"), 2)
	unclassified := c.ByClass(domain.UnclassifiedClass)
	require.Len(t, unclassified, 1)
	assert.Equal(t, "null grade", unclassified[0].Definition)
	assert.Empty(t, c.ByClass("nope"))
}

func TestBuild_ReturnedSlicesAreCopies(t *testing.T) {
	t.Parallel()

	c := Build(fixtureInput())

	got := c.ByClass("A")
	got[0] = nil
	assert.NotNil(t, c.ByClass("A")[0])

	sentences := c.Sentences("0")
	sentences[0].English = "changed"
	assert.Equal(t, "it is bouncing here", c.Sentences("0")[0].English)
}

func TestBuild_Sentences(t *testing.T) {
	t.Parallel()

	c := Build(fixtureInput())

	got := c.Sentences("0")
	require.Len(t, got, 3)
	assert.Equal(t, "s1", got[0].ID)
	assert.Equal(t, "1", got[0].WordIndex)
	assert.Equal(t, "s1", got[1].ID)
	assert.Equal(t, "2", got[1].WordIndex, "same sentence with a different word index is kept")
	assert.Equal(t, "s2", got[2].ID)
	assert.Equal(t, "", got[2].WordIndex)

	other := c.Sentences("3")
	require.Len(t, other, 1)
	assert.Equal(t, "0", other[0].WordIndex)

	assert.Empty(t, c.Sentences("42"))
}

func TestBuild_FindRowByEntryNo(t *testing.T) {
	t.Parallel()

	c := Build(fixtureInput())

	row, ok := c.FindRowByEntryNo("12")
	require.True(t, ok)
	assert.Equal(t, "0", row.EntryIndex, "first row with the key wins")

	_, ok = c.FindRowByEntryNo("14")
	assert.False(t, ok)
}

func TestBuild_Listings(t *testing.T) {
	t.Parallel()

	c := Build(fixtureInput())

	roots := c.Roots()
	require.Len(t, roots, 3)
	assert.Equal(t, RootSummary{Root: domain.NewRoot("a-dade-g"), Label: "a-dade-g", Entries: 2}, roots[0])
	assert.Equal(t, "null", roots[1].Label)
	assert.Equal(t, "unknown", roots[2].Label)

	assert.Equal(t, []ClassSummary{
		{Name: "A", Entries: 2, HasEndings: true},
		{Name: "B", Entries: 2},
		{Name: domain.UnclassifiedClass, Entries: 1},
	}, c.Classes())

	info, ok := c.ClassInfo("A")
	require.True(t, ok)
	assert.Equal(t, "-di", info.Infinitive)
	_, ok = c.ClassInfo("B")
	assert.False(t, ok)
}

func strPtr(s string) *string { return &s }

func TestBuild_LiteralCategoricalRootsShareKey(t *testing.T) {
	t.Parallel()

	in := Input{
		Entries: []domain.MorphologicalEntry{
			{EntryNo: "1", HGradeRoot: domain.NullRoot()},
			{EntryNo: "2", HGradeRoot: domain.ResolveRoot(strPtr("null"))},
			{EntryNo: "3", HGradeRoot: domain.ResolveRoot(strPtr("unknown"))},
			{EntryNo: "4"},
		},
	}
	c := Build(in)

	assert.Len(t, c.ByRoot(domain.ParseRootLabel("null")), 2)
	assert.Len(t, c.ByRoot(domain.ParseRootLabel("unknown")), 2)
	assert.Equal(t, []RootSummary{
		{Root: domain.NullRoot(), Label: "null", Entries: 2},
		{Root: domain.UnknownRoot(), Label: "unknown", Entries: 2},
	}, c.Roots())
}

func TestBuild_Stats(t *testing.T) {
	t.Parallel()

	c := Build(fixtureInput())

	assert.Equal(t, Stats{
		RowsTotal:           6,
		RowsKept:            4,
		RowsLinked:          3,
		Entries:             5,
		Roots:               3,
		Classes:             3,
		LinksTotal:          6,
		LinksUnresolved:     1,
		LinksDuplicate:      1,
		EntriesWithExamples: 2,
	}, c.Stats())
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	c := Build(Input{})

	assert.Zero(t, c.Len())
	assert.Empty(t, c.Search("anything"))
	assert.Empty(t, c.Roots())
	assert.Empty(t, c.Classes())
}

func TestMorphKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{in: "12.1", want: "12"},
		{in: "12.1.3", want: "12"},
		{in: "12", want: "12"},
		{in: " 7.2 ", want: "7"},
		{in: "", want: ""},
		{in: ".5", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MorphKey(tt.in), tt.in)
	}
}
