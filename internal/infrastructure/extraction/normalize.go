package extraction

import (
	"strings"
	"unicode"
)

// Thai digit glyphs to their Arabic equivalents.
var thaiDigits = map[rune]rune{
	'๐': '0', '๑': '1', '๒': '2', '๓': '3', '๔': '4',
	'๕': '5', '๖': '6', '๗': '7', '๘': '8', '๙': '9',
}

// ConvertThaiDigits maps every Thai digit glyph to its Arabic equivalent and
// leaves all other characters untouched. Idempotent on already-Arabic input.
func ConvertThaiDigits(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if arabic, ok := thaiDigits[r]; ok {
			b.WriteRune(arabic)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize collapses whitespace runs to single spaces and replaces every
// character outside the allow-list (Thai script, Latin letters, digits and a
// small punctuation set) with a space. Pure and total; empty in, empty out.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(replaceDisallowed(text)), " ")
}

// normalizeLines applies the same character filtering but keeps line
// boundaries, so label patterns stay scoped to the line they appear on.
func normalizeLines(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(replaceDisallowed(line)), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func replaceDisallowed(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Thai, r):
			b.WriteRune(r)
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '/', r == '(', r == ')', r == ',', r == ':':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}
