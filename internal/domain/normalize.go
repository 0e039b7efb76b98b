package domain

import "strings"

var quoteFolder = strings.NewReplacer(
	"\u2018", "'",
	"\u2019", "'",
)

// Normalize prepares text for comparison:
//   - converts to lowercase
//   - folds curly single quotes (U+2018, U+2019) to a straight apostrophe
//   - trims leading/trailing whitespace
//
// Hyphens, inner whitespace and combining marks are preserved; no Unicode
// normalization form is applied. Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = quoteFolder.Replace(text)
	return strings.TrimSpace(text)
}

// StripHyphens removes every '-' from s. Root labels such as "a-dade-g"
// are matched against user input with the morpheme boundaries removed.
func StripHyphens(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}
	return strings.ReplaceAll(s, "-", "")
}
