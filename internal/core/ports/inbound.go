package ports

import (
	"context"
	"io"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
)

// IngestCommand carries one uploaded document into the system. Hints are
// operator-provided values that take precedence over anything recognition
// extracts later.
type IngestCommand struct {
	FileName  string
	Content   io.Reader
	Direction domain.Direction
	Priority  domain.Priority
	Hints     domain.IngestHints
}

// DocumentIngestor accepts uploads, persists the initial record and enqueues
// it for recognition. The returned record is already in the received state.
type DocumentIngestor interface {
	Ingest(ctx context.Context, cmd IngestCommand) (*domain.DocumentRecord, error)
}

// DocumentProcessor runs the recognition and extraction pipeline for one
// stored document. Safe to retry: reprocessing overwrites extraction output
// but never touches workflow state.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// WorkflowService exposes reads and state changes on stored documents.
type WorkflowService interface {
	Get(ctx context.Context, id string) (*domain.DocumentRecord, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.DocumentRecord, error)
	Transition(ctx context.Context, id string, action domain.WorkflowAction, completedBy, comment string) (*domain.DocumentRecord, error)
	Amend(ctx context.Context, id string, amendment domain.DocumentAmendment) (*domain.DocumentRecord, error)
	Events(ctx context.Context, documentID string) ([]domain.WorkflowEvent, error)
}
