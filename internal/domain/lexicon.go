package domain

// OtherForm is one alternate inflected form decoded from a dictionary
// row's "Other Forms" field.
type OtherForm struct {
	Label           string `json:"label"`
	Syllabary       string `json:"syllabary"`
	Transliteration string `json:"transliteration"`
	ToneForm        string `json:"tone_form"`
}

// DictionaryRow is one lexical entry of the flat dictionary table,
// decorated during index construction. Rows are immutable once built.
type DictionaryRow struct {
	EntryIndex    string      `json:"entry_index"`
	SourceID      string      `json:"source_id"`
	Headword      string      `json:"headword"`
	Syllabary     string      `json:"syllabary"`
	PartOfSpeech  string      `json:"part_of_speech"`
	Definition    string      `json:"definition"`
	OtherFormsRaw string      `json:"other_forms_raw,omitempty"`
	OtherForms    []OtherForm `json:"other_forms,omitempty"`

	// MorphKey is the leading segment of SourceID, the join key into
	// MorphologicalEntry.EntryNo.
	MorphKey   string `json:"morph_key"`
	HRoot      Root   `json:"h_root"`
	GRoot      Root   `json:"g_root"`
	SearchMeta string `json:"-"`
}

// IsLinked reports whether the row resolved to a morphological analysis
// with a usable h-grade root.
func (r *DictionaryRow) IsLinked() bool {
	return !r.HRoot.IsUnknown()
}

// MorphologicalEntry is one reconstructed verb analysis.
type MorphologicalEntry struct {
	EntryNo          string     `json:"entry_no"`
	Definition       string     `json:"definition"`
	ClassName        string     `json:"class_name"`
	HGradeRoot       Root       `json:"h_grade_root"`
	GlottalGradeRoot Root       `json:"glottal_grade_root"`
	Config           Attributes `json:"config,omitempty"`
	OriginalStems    Attributes `json:"original_stems,omitempty"`
}

// SetType returns the pronoun set type (config.pron.set_type), if any.
func (e *MorphologicalEntry) SetType() string {
	v, ok := e.Config.Lookup("pron", "set_type")
	if !ok {
		return ""
	}
	return v.String()
}

// Distributive reports the config.pre.distributive flag. The datasets are
// not consistent about its type, so any truthy value counts.
func (e *MorphologicalEntry) Distributive() bool {
	v, ok := e.Config.Lookup("pre", "distributive")
	return ok && v.Truthy()
}

// Stems returns the tense → stem mapping with non-scalar values dropped.
func (e *MorphologicalEntry) Stems() map[string]string {
	return e.OriginalStems.Strings()
}

// SentenceExample is a usage sentence attached to a dictionary entry.
// WordIndex identifies the highlighted word and is part of the identity:
// the same sentence may appear twice for one entry with different indices.
type SentenceExample struct {
	ID              string `json:"id"`
	Syllabary       string `json:"syllabary"`
	Transliteration string `json:"transliteration"`
	ToneMarked      string `json:"tone_marked"`
	English         string `json:"english"`
	WordIndex       string `json:"word_index"`
}

// SentenceLink is one row of the entry/sentence join table.
type SentenceLink struct {
	EntryID    string
	SentenceID string
	WordIndex  string
}

// VerbClassInfo lists the conjugation endings of a verb class. It is a
// display decoration only and is never joined structurally.
type VerbClassInfo struct {
	Present      string `json:"present"`
	Imperfective string `json:"imperfective"`
	Perfective   string `json:"perfective"`
	Imperative   string `json:"imperative"`
	Infinitive   string `json:"infinitive"`
}

// UnclassifiedClass is the class bucket for analyses without a class name.
const UnclassifiedClass = "Unclassified"
