package extraction

import (
	"strings"
	"testing"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
)

func TestExtractMemoHeader(t *testing.T) {
	raw := "ส่วนราชการ: กองคลัง\nที่: กค 0123/2568\nวันที่: 19 ตุลาคม 2568\nเรื่อง: ขออนุมัติงบประมาณ\nด่วนที่สุด"

	got := NewEngine().Extract(raw)

	if got.Department != "กองคลัง" {
		t.Fatalf("department = %q, want กองคลัง", got.Department)
	}
	if got.DocumentNumber != "กค 0123/2568" {
		t.Fatalf("document number = %q, want กค 0123/2568", got.DocumentNumber)
	}
	if got.Date != "19 ตุลาคม 2568" {
		t.Fatalf("date = %q, want 19 ตุลาคม 2568", got.Date)
	}
	if got.Subject != "ขออนุมัติงบประมาณ" {
		t.Fatalf("subject = %q, want ขออนุมัติงบประมาณ", got.Subject)
	}
	if got.Title != "ขออนุมัติงบประมาณ" {
		t.Fatalf("title = %q, want subject value", got.Title)
	}
	if got.Priority != domain.PriorityHigh {
		t.Fatalf("priority = %q, want high", got.Priority)
	}
	if got.RawText != raw {
		t.Fatalf("raw text must round-trip unchanged")
	}
}

func TestExtractThaiDigits(t *testing.T) {
	raw := "ที่: ศธ ๐๔๑๘๘/๒๕๖๘\nวันที่: ๑๙ ตุลาคม ๒๕๖๘"

	got := NewEngine().Extract(raw)

	if got.DocumentNumber != "ศธ 04188/2568" {
		t.Fatalf("document number = %q, want ศธ 04188/2568", got.DocumentNumber)
	}
	if got.Date != "19 ตุลาคม 2568" {
		t.Fatalf("date = %q, want 19 ตุลาคม 2568", got.Date)
	}
}

func TestExtractLabelPrecedence(t *testing.T) {
	raw := "ส่วนราชการ: สำนักงานปลัด\nจาก: กองช่าง"

	got := NewEngine().Extract(raw)

	if got.Department != "สำนักงานปลัด" {
		t.Fatalf("department = %q, want ส่วนราชการ label to win", got.Department)
	}
	if got.SourceOffice != "กองช่าง" {
		t.Fatalf("source office = %q, want กองช่าง", got.SourceOffice)
	}
}

func TestExtractBareOrganizationPrefix(t *testing.T) {
	got := NewEngine().Extract("หนังสือจัดส่งโดย กรมบัญชีกลาง เมื่อวานนี้")
	if got.Department != "กรมบัญชีกลาง" {
		t.Fatalf("department = %q, want กรมบัญชีกลาง", got.Department)
	}
}

func TestExtractSubjectStopsAtSalutation(t *testing.T) {
	got := NewEngine().Extract("เรื่อง ขอเชิญประชุมประจำเดือน เรียน ผู้อำนวยการกองคลัง")
	if got.Subject != "ขอเชิญประชุมประจำเดือน" {
		t.Fatalf("subject = %q, want capture to stop before เรียน", got.Subject)
	}
}

func TestExtractSubjectTruncation(t *testing.T) {
	long := strings.Repeat("ก", 300)
	got := NewEngine().Extract("เรื่อง: " + long)
	if n := len([]rune(got.Subject)); n != 200 {
		t.Fatalf("subject length = %d runes, want 200", n)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	got := NewEngine().Extract("")

	if got.Department != "" || got.DocumentNumber != "" || got.Date != "" || got.Subject != "" {
		t.Fatalf("expected zero fields for empty input, got %+v", got)
	}
	if got.Title != "เอกสารไม่มีชื่อเรื่อง" {
		t.Fatalf("title = %q, want untitled placeholder", got.Title)
	}
	if got.Priority != domain.PriorityNormal {
		t.Fatalf("priority = %q, want normal", got.Priority)
	}
	if got.Keywords != nil {
		t.Fatalf("keywords = %v, want nil", got.Keywords)
	}
}

func TestDetectPriorityVariants(t *testing.T) {
	for _, text := range []string{"ด่วนที่สุด", "หนังสือ ด่วนมาก ฉบับนี้", "ด่วน"} {
		if got := NewEngine().Extract(text).Priority; got != domain.PriorityHigh {
			t.Fatalf("Extract(%q).Priority = %q, want high", text, got)
		}
	}
	if got := NewEngine().Extract("หนังสือธรรมดา").Priority; got != domain.PriorityNormal {
		t.Fatalf("priority = %q, want normal without urgency marker", got)
	}
}

func TestExtractKeywordsFrequencyAndCap(t *testing.T) {
	raw := "งบประมาณ ประชุม งบประมาณ อนุมัติ ประชุม งบประมาณ และ ของ หนึ่ง สอง สาม สี่ ห้า หก"

	got := extractKeywords(Normalize(raw))

	if len(got) != 5 {
		t.Fatalf("keyword count = %d, want 5", len(got))
	}
	if got[0] != "งบประมาณ" || got[1] != "ประชุม" {
		t.Fatalf("keywords = %v, want frequency order งบประมาณ then ประชุม", got)
	}
	for _, kw := range got {
		if kw == "และ" || kw == "ของ" {
			t.Fatalf("stopword %q leaked into keywords %v", kw, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  กอง\tคลัง \n ", "กอง คลัง"},
		{"ที่ กค 0123/2568 *** draft!!", "ที่ กค 0123/2568 draft"},
		{"a@b#c", "a b c"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestConvertThaiDigits(t *testing.T) {
	if got := ConvertThaiDigits("๐๑๒๓๔๕๖๗๘๙"); got != "0123456789" {
		t.Fatalf("ConvertThaiDigits = %q", got)
	}
	if got := ConvertThaiDigits("no digits ๕ here"); got != "no digits 5 here" {
		t.Fatalf("ConvertThaiDigits mixed = %q", got)
	}
	once := ConvertThaiDigits("กค ๐๑/๖๘")
	if twice := ConvertThaiDigits(once); twice != once {
		t.Fatalf("conversion must be idempotent: %q != %q", once, twice)
	}
}
