package domain

import "strings"

const (
	formSeparator  = "|"
	labelSeparator = ":"
	partSeparator  = "^"
)

// ParseOtherForms decodes the "Other Forms" compound field:
//
//	label:syllabary^transliteration^toneForm|label2:...
//
// Missing trailing parts resolve to "". Entries without a ':' are dropped.
// The label ends at the first ':'; later colons belong to the form parts.
func ParseOtherForms(raw string) []OtherForm {
	if strings.TrimSpace(raw) == "" {
		return []OtherForm{}
	}

	entries := strings.Split(raw, formSeparator)
	forms := make([]OtherForm, 0, len(entries))
	for _, entry := range entries {
		label, rest, ok := strings.Cut(entry, labelSeparator)
		if !ok {
			continue
		}
		parts := strings.SplitN(rest, partSeparator, 3)
		forms = append(forms, OtherForm{
			Label:           strings.TrimSpace(label),
			Syllabary:       partAt(parts, 0),
			Transliteration: partAt(parts, 1),
			ToneForm:        partAt(parts, 2),
		})
	}
	return forms
}

// FlattenOtherForms returns every non-empty form token (syllabary,
// transliteration and tone form) in field order, for inclusion in search text.
func FlattenOtherForms(raw string) []string {
	return FormTokens(ParseOtherForms(raw))
}

// FormTokens flattens already parsed forms the same way FlattenOtherForms does.
func FormTokens(forms []OtherForm) []string {
	tokens := make([]string, 0, len(forms)*3)
	for _, f := range forms {
		for _, tok := range [...]string{f.Syllabary, f.Transliteration, f.ToneForm} {
			if tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}
	return tokens
}

func partAt(parts []string, i int) string {
	if i >= len(parts) {
		return ""
	}
	return strings.TrimSpace(parts[i])
}
