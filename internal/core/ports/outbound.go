package ports

import (
	"context"
	"io"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
)

// DocumentRepository persists document records.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.DocumentRecord) error
	GetByID(ctx context.Context, id string) (*domain.DocumentRecord, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.DocumentRecord, error)

	// UpdateDetails persists the descriptive fields of doc. Workflow state
	// is out of scope for this method and is never written by it.
	UpdateDetails(ctx context.Context, doc *domain.DocumentRecord) error

	// UpdateStatusFrom moves a document from one status to another with an
	// optimistic guard: it fails with ErrConflict when the stored status no
	// longer matches from, and ErrDocumentNotFound when the row is gone.
	UpdateStatusFrom(ctx context.Context, id string, from, to domain.WorkflowStatus, completedBy string) error
}

// WorkflowEventRepository stores the append-only transition audit trail.
type WorkflowEventRepository interface {
	Append(ctx context.Context, event *domain.WorkflowEvent) error
	ListByDocument(ctx context.Context, documentID string) ([]domain.WorkflowEvent, error)
}

// RecognitionClient talks to the external OCR service. GetStatus returns
// (nil, nil) while the job is still running; a non-nil result is final.
type RecognitionClient interface {
	Submit(ctx context.Context, fileName string, content io.Reader) (string, error)
	GetStatus(ctx context.Context, jobID string) (*domain.RecognitionResult, error)
}

// TextLayerProbe inspects an uploaded file for embedded text. A file without
// a usable text layer yields an empty string and no error.
type TextLayerProbe interface {
	ExtractText(ctx context.Context, r io.Reader) (string, error)
}

// ObjectStorage keeps the original uploads.
type ObjectStorage interface {
	Save(ctx context.Context, name string, content io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// MessageQueue decouples ingestion from recognition work. Subscribe blocks
// until ctx is cancelled and the subscription drains.
type MessageQueue interface {
	PublishDocumentReceived(ctx context.Context, documentID string) error
	SubscribeDocumentReceived(ctx context.Context, handler func(ctx context.Context, documentID string) error) error
	Close()
}

// FieldExtractor turns recognized text into structured fields. Total over
// all inputs, including empty text.
type FieldExtractor interface {
	Extract(text string) domain.ExtractedFields
}
