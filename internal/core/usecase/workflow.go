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

// WorkflowUsecase serves register reads, guarded transitions and manual
// amendments. Transitions are applied with an optimistic status guard so two
// concurrent operators cannot both advance the same document.
type WorkflowUsecase struct {
	repo   ports.DocumentRepository
	events ports.WorkflowEventRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewWorkflowUsecase(repo ports.DocumentRepository, events ports.WorkflowEventRepository, logger *slog.Logger) *WorkflowUsecase {
	return &WorkflowUsecase{
		repo:   repo,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

func (u *WorkflowUsecase) Get(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	const op = "workflow.get"
	record, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return record, nil
}

func (u *WorkflowUsecase) List(ctx context.Context, filter domain.ListFilter) ([]domain.DocumentRecord, error) {
	const op = "workflow.list"
	if filter.Status != "" && !domain.ValidStatus(filter.Status) {
		return nil, domain.WrapError(domain.ErrInvalidInput, op, fmt.Errorf("unknown status %q", filter.Status))
	}
	if filter.Direction != "" && filter.Direction != domain.DirectionIncoming && filter.Direction != domain.DirectionOutgoing {
		return nil, domain.WrapError(domain.ErrInvalidInput, op, fmt.Errorf("unknown direction %q", filter.Direction))
	}
	records, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return records, nil
}

// Transition validates action against the current status, applies the change
// with an optimistic guard and appends one audit event. A concurrent
// transition observed between read and write surfaces as ErrConflict.
func (u *WorkflowUsecase) Transition(ctx context.Context, id string, action domain.WorkflowAction, completedBy, comment string) (*domain.DocumentRecord, error) {
	const op = "workflow.transition"

	record, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	next, err := domain.NextStatus(record.Status, action, completedBy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	completedBy = strings.TrimSpace(completedBy)
	if next != domain.StatusCompleted {
		completedBy = ""
	}

	if err := u.repo.UpdateStatusFrom(ctx, id, record.Status, next, completedBy); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := u.now()
	event := &domain.WorkflowEvent{
		ID:          uuid.NewString(),
		DocumentID:  id,
		Action:      action,
		Comment:     firstNonBlank(comment, domain.TransitionComment(next)),
		CompletedBy: completedBy,
		CreatedAt:   now,
	}
	// The status update and the event live in different tables without a
	// shared transaction; if Append fails here the status has already
	// advanced and the trail is one event short. The caller sees the error,
	// and the next transition still validates against the stored status.
	if err := u.events.Append(ctx, event); err != nil {
		return nil, fmt.Errorf("%s: append event: %w", op, err)
	}

	record.Status = next
	record.CompletedBy = completedBy
	record.UpdatedAt = now

	u.logger.Info("workflow transition applied",
		slog.String("document_id", id),
		slog.String("action", string(action)),
		slog.String("status", string(next)))

	return record, nil
}

// Amend overwrites descriptive fields by hand. Status and completion name are
// not amendable; they change only through Transition.
func (u *WorkflowUsecase) Amend(ctx context.Context, id string, amendment domain.DocumentAmendment) (*domain.DocumentRecord, error) {
	const op = "workflow.amend"

	if amendment.Empty() {
		return nil, domain.WrapError(domain.ErrInvalidInput, op, fmt.Errorf("no fields to amend"))
	}
	if amendment.Direction != nil && *amendment.Direction != domain.DirectionIncoming && *amendment.Direction != domain.DirectionOutgoing {
		return nil, domain.WrapError(domain.ErrInvalidInput, op, fmt.Errorf("unknown direction %q", *amendment.Direction))
	}
	if amendment.Priority != nil && *amendment.Priority != domain.PriorityNormal && *amendment.Priority != domain.PriorityHigh {
		return nil, domain.WrapError(domain.ErrInvalidInput, op, fmt.Errorf("unknown priority %q", *amendment.Priority))
	}

	record, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	applyAmendment(record, amendment)
	record.UpdatedAt = u.now()

	if err := u.repo.UpdateDetails(ctx, record); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return record, nil
}

func (u *WorkflowUsecase) Events(ctx context.Context, documentID string) ([]domain.WorkflowEvent, error) {
	const op = "workflow.events"
	if _, err := u.repo.GetByID(ctx, documentID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	events, err := u.events.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

func applyAmendment(record *domain.DocumentRecord, a domain.DocumentAmendment) {
	if a.Title != nil {
		record.Title = *a.Title
	}
	if a.Direction != nil {
		record.Direction = *a.Direction
	}
	if a.FromParty != nil {
		record.FromParty = *a.FromParty
	}
	if a.ToParty != nil {
		record.ToParty = *a.ToParty
	}
	if a.DocumentNumber != nil {
		record.DocumentNumber = *a.DocumentNumber
	}
	if a.DocumentDate != nil {
		record.DocumentDate = *a.DocumentDate
	}
	if a.Subject != nil {
		record.Subject = *a.Subject
	}
	if a.Priority != nil {
		record.Priority = *a.Priority
	}
}
