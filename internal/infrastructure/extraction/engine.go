package extraction

import (
	"regexp"
	"strings"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
)

const maxSubjectRunes = 200

// Engine derives structured fields from recognized Thai document text. It is
// pure and total: any input, including empty or garbage text, yields a result
// with unmatched fields left at their zero values.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Extract runs every field rule against the text and assembles the result.
// Label patterns operate on line-scoped normalized text so a label only
// claims content from its own line; priority and keywords scan the flattened
// form of the whole document.
func (e *Engine) Extract(raw string) domain.ExtractedFields {
	lined := normalizeLines(raw)
	flat := Normalize(raw)

	subject := truncateRunes(firstMatch([]*regexp.Regexp{subjectPattern}, lined), maxSubjectRunes)

	title := subject
	if title == "" {
		title = domain.UntitledTitle
	}

	return domain.ExtractedFields{
		Department:     firstMatch(departmentPatterns, lined),
		DocumentNumber: cleanNumber(firstMatch(documentNumberPatterns, lined)),
		Date:           cleanNumber(firstMatch(datePatterns, lined)),
		Subject:        subject,
		SourceOffice:   firstMatch([]*regexp.Regexp{sourceOfficePattern}, lined),
		Title:          title,
		Priority:       detectPriority(flat),
		Keywords:       extractKeywords(flat),
		RawText:        raw,
	}
}

// firstMatch applies patterns in order and returns the capture of the first
// one that matches. Order encodes precedence.
func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// cleanNumber converts Thai digits to Arabic and normalizes spacing in a
// matched number or date fragment.
func cleanNumber(s string) string {
	if s == "" {
		return ""
	}
	s = ConvertThaiDigits(s)
	s = strings.Join(strings.Fields(s), " ")
	return separatorSpacing.ReplaceAllString(s, "$1")
}

func detectPriority(flat string) domain.Priority {
	for _, kw := range urgencyKeywords {
		if strings.Contains(flat, kw) {
			return domain.PriorityHigh
		}
	}
	return domain.PriorityNormal
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
