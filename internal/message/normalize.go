package message

import "strings"

// invisibleRunes are code points spawn bots commonly pad messages with.
// Stripping them keeps the template regexes stable across bot versions.
var invisibleRunes = map[rune]bool{
	'\u200B': true, // zero-width space
	'\u200C': true, // zero-width non-joiner
	'\u200D': true, // zero-width joiner
	'\uFEFF': true, // byte-order mark
	'\u00A0': true, // non-breaking space
}

// Normalize strips invisible characters and trims leading/trailing
// whitespace. Internal newlines are preserved: downstream parsers use line
// boundaries as field separators.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if invisibleRunes[r] {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
