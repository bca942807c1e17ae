package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
	"github.com/sarabun-dev/sarabun-core/internal/core/ports"
)

// IngestService persists an uploaded document and hands it to the recognition
// pipeline through the queue. Recognition itself happens out of band; the
// caller gets back a record already in the received state.
type IngestService struct {
	repo    ports.DocumentRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
	logger  *slog.Logger
	now     func() time.Time
}

func NewIngestService(repo ports.DocumentRepository, storage ports.ObjectStorage, queue ports.MessageQueue, logger *slog.Logger) *IngestService {
	return &IngestService{
		repo:    repo,
		storage: storage,
		queue:   queue,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *IngestService) Ingest(ctx context.Context, cmd ports.IngestCommand) (*domain.DocumentRecord, error) {
	const op = "ingest.document"

	if strings.TrimSpace(cmd.FileName) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, op, fmt.Errorf("file name is required"))
	}
	if cmd.Content == nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, op, fmt.Errorf("file content is required"))
	}

	direction, err := resolveDirection(cmd.Direction, cmd.Hints.Direction)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, op, err)
	}
	priority, err := resolvePriority(cmd.Priority, cmd.Hints.Priority)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, op, err)
	}

	path, err := s.storage.Save(ctx, cmd.FileName, cmd.Content)
	if err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, op, err)
	}

	now := s.now()
	record := &domain.DocumentRecord{
		ID:             uuid.NewString(),
		Title:          firstNonBlank(cmd.Hints.Title, domain.UntitledTitle),
		Direction:      direction,
		FromParty:      cmd.Hints.FromParty,
		ToParty:        cmd.Hints.ToParty,
		DocumentNumber: cmd.Hints.DocumentNumber,
		DocumentDate:   cmd.Hints.DocumentDate,
		Subject:        cmd.Hints.Subject,
		Priority:       priority,
		Status:         domain.StatusReceived,
		FilePath:       path,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.queue.PublishDocumentReceived(ctx, record.ID); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, op, err)
	}

	s.logger.Info("document ingested",
		slog.String("document_id", record.ID),
		slog.String("direction", string(record.Direction)),
		slog.String("priority", string(record.Priority)))

	return record, nil
}

func resolveDirection(explicit, hinted domain.Direction) (domain.Direction, error) {
	d := explicit
	if d == "" {
		d = hinted
	}
	switch d {
	case "":
		return domain.DirectionIncoming, nil
	case domain.DirectionIncoming, domain.DirectionOutgoing:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction %q", d)
	}
}

func resolvePriority(explicit, hinted domain.Priority) (domain.Priority, error) {
	p := explicit
	if p == "" {
		p = hinted
	}
	switch p {
	case "":
		return domain.PriorityNormal, nil
	case domain.PriorityNormal, domain.PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("unknown priority %q", p)
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
