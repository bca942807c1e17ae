package domain

import "time"

// UntitledTitle is the placeholder title used until recognition or an
// operator supplies a real one.
const UntitledTitle = "เอกสารไม่มีชื่อเรื่อง"

type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// DocumentRecord is the persisted lifecycle entity for one scanned document.
// Status moves only through the guarded workflow transition; descriptive
// fields may additionally be overwritten by a manual amendment.
type DocumentRecord struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Direction      Direction        `json:"direction"`
	FromParty      string           `json:"from_party,omitempty"`
	ToParty        string           `json:"to_party,omitempty"`
	DocumentNumber string           `json:"document_number,omitempty"`
	DocumentDate   string           `json:"document_date,omitempty"`
	Subject        string           `json:"subject,omitempty"`
	Priority       Priority         `json:"priority"`
	Status         WorkflowStatus   `json:"status"`
	CompletedBy    string           `json:"completed_by,omitempty"`
	FilePath       string           `json:"file_path"`
	Extraction     *ExtractedFields `json:"extraction,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// IngestHints carries operator-entered values that accompany an upload.
// A hint always wins over an extracted value for the same field.
type IngestHints struct {
	Title          string    `json:"title,omitempty"`
	Direction      Direction `json:"direction,omitempty"`
	FromParty      string    `json:"from_party,omitempty"`
	ToParty        string    `json:"to_party,omitempty"`
	DocumentNumber string    `json:"document_number,omitempty"`
	DocumentDate   string    `json:"document_date,omitempty"`
	Subject        string    `json:"subject,omitempty"`
	Priority       Priority  `json:"priority,omitempty"`
}

// DocumentAmendment is the manual-edit payload. It deliberately has no
// status or completion-name field: those move only through transitions.
type DocumentAmendment struct {
	Title          *string    `json:"title,omitempty"`
	Direction      *Direction `json:"direction,omitempty"`
	FromParty      *string    `json:"from_party,omitempty"`
	ToParty        *string    `json:"to_party,omitempty"`
	DocumentNumber *string    `json:"document_number,omitempty"`
	DocumentDate   *string    `json:"document_date,omitempty"`
	Subject        *string    `json:"subject,omitempty"`
	Priority       *Priority  `json:"priority,omitempty"`
}

// Empty reports whether the amendment would change nothing.
func (a DocumentAmendment) Empty() bool {
	return a.Title == nil && a.Direction == nil && a.FromParty == nil &&
		a.ToParty == nil && a.DocumentNumber == nil && a.DocumentDate == nil &&
		a.Subject == nil && a.Priority == nil
}

// ListFilter narrows register listings.
type ListFilter struct {
	Direction Direction
	Status    WorkflowStatus
}
