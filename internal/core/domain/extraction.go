package domain

// ExtractedFields is the value object produced once per recognition job.
// Every field defaults to its zero value when no pattern matched; extraction
// is total over all inputs and never fails.
type ExtractedFields struct {
	Department     string   `json:"department,omitempty"`
	DocumentNumber string   `json:"document_number,omitempty"`
	Date           string   `json:"date,omitempty"`
	Subject        string   `json:"subject,omitempty"`
	SourceOffice   string   `json:"source_office,omitempty"`
	Title          string   `json:"title"`
	Priority       Priority `json:"priority"`
	Keywords       []string `json:"keywords,omitempty"`
	RawText        string   `json:"raw_text"`
}
