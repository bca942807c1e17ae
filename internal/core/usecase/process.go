package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
	"github.com/sarabun-dev/sarabun-core/internal/core/ports"
)

// ProcessService runs the recognition pipeline for one stored document:
// probe the upload for an embedded text layer, fall back to the OCR service
// when there is none, extract structured fields and persist them. Operator
// hints recorded at ingest time are never overwritten.
type ProcessService struct {
	repo       ports.DocumentRepository
	storage    ports.ObjectStorage
	recognizer ports.RecognitionClient
	textLayer  ports.TextLayerProbe
	extractor  ports.FieldExtractor
	poller     *ResultPoller
	logger     *slog.Logger
	now        func() time.Time

	// OnRecognitionSource, when set, is told whether a document used its
	// embedded text layer or went through OCR.
	OnRecognitionSource func(source string)

	// OnQueueLag, when set, receives the delay between ingestion and the
	// start of processing.
	OnQueueLag func(lag time.Duration)
}

func NewProcessService(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	recognizer ports.RecognitionClient,
	textLayer ports.TextLayerProbe,
	extractor ports.FieldExtractor,
	poller *ResultPoller,
	logger *slog.Logger,
) *ProcessService {
	return &ProcessService{
		repo:       repo,
		storage:    storage,
		recognizer: recognizer,
		textLayer:  textLayer,
		extractor:  extractor,
		poller:     poller,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *ProcessService) ProcessByID(ctx context.Context, documentID string) error {
	const op = "process.document"

	record, err := s.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if s.OnQueueLag != nil {
		s.OnQueueLag(s.now().Sub(record.CreatedAt))
	}

	file, err := s.storage.Open(ctx, record.FilePath)
	if err != nil {
		return domain.WrapError(domain.ErrTemporary, op, err)
	}
	content, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return domain.WrapError(domain.ErrTemporary, op, err)
	}

	text, err := s.recognize(ctx, record, content)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	fields := s.extractor.Extract(text)
	mergeExtraction(record, fields)
	record.UpdatedAt = s.now()

	if err := s.repo.UpdateDetails(ctx, record); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("document processed",
		slog.String("document_id", record.ID),
		slog.String("title", record.Title),
		slog.Int("keywords", len(fields.Keywords)))
	return nil
}

// recognize prefers the file's own text layer; only files without one are
// sent to the OCR service.
func (s *ProcessService) recognize(ctx context.Context, record *domain.DocumentRecord, content []byte) (string, error) {
	embedded, err := s.textLayer.ExtractText(ctx, bytes.NewReader(content))
	if err != nil {
		s.logger.Warn("text layer probe failed, falling back to recognition",
			slog.String("document_id", record.ID),
			slog.String("error", err.Error()))
	}
	if strings.TrimSpace(embedded) != "" {
		s.logger.Info("using embedded text layer",
			slog.String("document_id", record.ID))
		s.reportSource("text_layer")
		return embedded, nil
	}
	s.reportSource("ocr")

	jobID, err := s.recognizer.Submit(ctx, record.FilePath, bytes.NewReader(content))
	if err != nil {
		return "", domain.WrapError(domain.ErrTemporary, "recognition.submit", err)
	}
	result, err := s.poller.Wait(ctx, jobID)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

func (s *ProcessService) reportSource(source string) {
	if s.OnRecognitionSource != nil {
		s.OnRecognitionSource(source)
	}
}

// mergeExtraction fills only fields the record does not already carry, so
// ingest hints and earlier amendments always win over recognition output.
// Workflow state is deliberately left alone.
func mergeExtraction(record *domain.DocumentRecord, fields domain.ExtractedFields) {
	if record.Title == "" || record.Title == domain.UntitledTitle {
		record.Title = fields.Title
	}
	if record.FromParty == "" {
		record.FromParty = firstNonBlank(fields.SourceOffice, fields.Department)
	}
	if record.DocumentNumber == "" {
		record.DocumentNumber = fields.DocumentNumber
	}
	if record.DocumentDate == "" {
		record.DocumentDate = fields.Date
	}
	if record.Subject == "" {
		record.Subject = fields.Subject
	}
	if record.Priority != domain.PriorityHigh && fields.Priority == domain.PriorityHigh {
		record.Priority = domain.PriorityHigh
	}
	record.Extraction = &fields
}
