package extraction

import "regexp"

// Patterns run against line-scoped normalized text with Thai digits intact;
// digit classes therefore accept both Arabic and Thai glyphs. Within every
// list order is load-bearing: the first pattern that matches wins.

const (
	digit     = `[0-9๐-๙]`
	thaiMonth = `มกราคม|กุมภาพันธ์|มีนาคม|เมษายน|พฤษภาคม|มิถุนายน|กรกฎาคม|สิงหาคม|กันยายน|ตุลาคม|พฤศจิกายน|ธันวาคม`

	// Label boundary for free-text captures. วันที่ must come before ที่ so
	// the alternation never splits it, and the leading \s keeps the ที่
	// suffix of วันที่ from matching mid-word.
	labelBoundary = `(?:\s(?:วันที่|ที่|เรื่อง|เรียน)\s*:|$)`
)

// departmentPatterns locate the originating unit: the ส่วนราชการ label, the
// จาก label, then a bare organizational-prefix word.
var departmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)ส่วนราชการ\s*:?\s*(.+?)\s*` + labelBoundary),
	regexp.MustCompile(`(?m)จาก\s*:?\s*(.+?)\s*` + labelBoundary),
	regexp.MustCompile(`((?:กรม|กอง|แผนก|ฝ่าย|สำนัก|หน่วย)[ก-๏]+)`),
}

// documentNumberPatterns go from the most explicit shape to the loosest:
// labeled abbreviation form, labeled numeric form, bare abbreviation form,
// then a strict four-by-four numeric fallback.
var documentNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|\s)ที่\s*:?\s*([ก-ฮ]{1,4}\.?\s?` + digit + `{1,5}\s*[/-]\s*` + digit + `{1,5})`),
	regexp.MustCompile(`(?:^|\s)ที่\s*:?\s*(` + digit + `{1,5}\s*[/-]\s*` + digit + `{1,5})`),
	regexp.MustCompile(`([ก-ฮ]{1,4}\.?\s?` + digit + `{1,5}\s*[/-]\s*` + digit + `{1,5})`),
	regexp.MustCompile(`(` + digit + `{4}\s*/\s*` + digit + `{4})`),
}

// datePatterns prefer the labeled long Thai form, then the labeled numeric
// form, then an unlabeled long form anywhere in the text.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`วันที่\s*:?\s*(` + digit + `{1,2}\s+(?:` + thaiMonth + `)\s+` + digit + `{4})`),
	regexp.MustCompile(`วันที่\s*:?\s*(` + digit + `{1,2}\s*[/.-]\s*` + digit + `{1,2}\s*[/.-]\s*` + digit + `{2,4})`),
	regexp.MustCompile(`(` + digit + `{1,2}\s+(?:` + thaiMonth + `)\s+` + digit + `{4})`),
}

// sourceOfficePattern picks up the sending office from a จาก label.
var sourceOfficePattern = regexp.MustCompile(`(?m)จาก\s*:?\s*(.+?)\s*` + labelBoundary)

// separatorSpacing tidies OCR spacing around number separators.
var separatorSpacing = regexp.MustCompile(`\s*([/-])\s*`)

// subjectPattern captures the เรื่อง line up to a following เรียน label or
// the end of the line. Multiline mode keeps the capture line-scoped.
var subjectPattern = regexp.MustCompile(`(?m)เรื่อง\s*:?\s*(.+?)\s*(?:เรียน|$)`)

// urgencyKeywords are checked in order; ด่วนที่สุด and ด่วนมาก both contain
// ด่วน so the longer forms must come first.
var urgencyKeywords = []string{"ด่วนที่สุด", "ด่วนมาก", "ด่วน"}

// thaiTokenPattern splits text into runs of Thai letters for keyword counting.
var thaiTokenPattern = regexp.MustCompile(`[ก-๏]{3,}`)

// stopwords are high-frequency function words excluded from keyword counts.
var stopwords = map[string]struct{}{
	"และ":    {},
	"หรือ":   {},
	"ที่":    {},
	"ของ":    {},
	"ให้":    {},
	"ได้":    {},
	"การ":    {},
	"ความ":   {},
	"เป็น":   {},
	"ไม่":    {},
	"ว่า":    {},
	"กับ":    {},
	"แต่":    {},
	"ด้วย":   {},
	"จาก":    {},
	"ถึง":    {},
	"ตาม":    {},
	"เพื่อ":  {},
	"โดย":    {},
	"นี้":    {},
	"นั้น":   {},
	"เรื่อง": {},
	"เรียน":  {},
	"วันที่":     {},
	"ส่วนราชการ": {},
}
