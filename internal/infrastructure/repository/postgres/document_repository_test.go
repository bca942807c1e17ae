package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
)

func newRepoWithMock(t *testing.T) (*DocumentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &DocumentRepository{db: db}, mock, func() { _ = db.Close() }
}

func documentRows(doc domain.DocumentRecord) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "direction", "from_party", "to_party", "document_number",
		"document_date", "subject", "priority", "status", "completed_by",
		"file_path", "extraction", "created_at", "updated_at",
	}).AddRow(
		doc.ID, doc.Title, string(doc.Direction), doc.FromParty, doc.ToParty,
		doc.DocumentNumber, doc.DocumentDate, doc.Subject, string(doc.Priority),
		string(doc.Status), doc.CompletedBy, doc.FilePath, nil,
		doc.CreatedAt, doc.UpdatedAt,
	)
}

func TestGetByIDReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, title, direction, from_party").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByIDScansRecord(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, title, direction, from_party").
		WithArgs("doc-1").
		WillReturnRows(documentRows(domain.DocumentRecord{
			ID:        "doc-1",
			Title:     "ขออนุมัติงบประมาณ",
			Direction: domain.DirectionIncoming,
			Priority:  domain.PriorityHigh,
			Status:    domain.StatusReceived,
			FilePath:  "uploads/doc-1.pdf",
			CreatedAt: now,
			UpdatedAt: now,
		}))

	doc, err := repo.GetByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if doc.Status != domain.StatusReceived || doc.Priority != domain.PriorityHigh {
		t.Fatalf("scanned document = %+v", doc)
	}
	if doc.Extraction != nil {
		t.Fatalf("expected nil extraction for NULL column")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateStatusFromAppliesGuardedTransition(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE documents").
		WithArgs("doc-1", string(domain.StatusSentOut), string(domain.StatusCompleted), "somsak", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatusFrom(context.Background(), "doc-1", domain.StatusSentOut, domain.StatusCompleted, "somsak")
	if err != nil {
		t.Fatalf("UpdateStatusFrom() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateStatusFromConflictWhenStatusMoved(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE documents").
		WithArgs("doc-1", string(domain.StatusReceived), string(domain.StatusPendingApproval), "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM documents").
		WithArgs("doc-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(string(domain.StatusPendingApproval)))

	err := repo.UpdateStatusFrom(context.Background(), "doc-1", domain.StatusReceived, domain.StatusPendingApproval, "")
	if !domain.IsKind(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateStatusFromNotFoundWhenRowGone(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE documents").
		WithArgs("missing", string(domain.StatusReceived), string(domain.StatusPendingApproval), "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM documents").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	err := repo.UpdateStatusFrom(context.Background(), "missing", domain.StatusReceived, domain.StatusPendingApproval, "")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateDetailsNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE documents").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateDetails(context.Background(), &domain.DocumentRecord{
		ID:        "missing",
		Title:     "x",
		Direction: domain.DirectionIncoming,
		Priority:  domain.PriorityNormal,
	})
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListAppliesFilters(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, title, direction, from_party.* WHERE direction = \\$1 AND status = \\$2").
		WithArgs(string(domain.DirectionIncoming), string(domain.StatusReceived)).
		WillReturnRows(documentRows(domain.DocumentRecord{
			ID:        "doc-1",
			Title:     "x",
			Direction: domain.DirectionIncoming,
			Priority:  domain.PriorityNormal,
			Status:    domain.StatusReceived,
			CreatedAt: now,
			UpdatedAt: now,
		}))

	docs, err := repo.List(context.Background(), domain.ListFilter{
		Direction: domain.DirectionIncoming,
		Status:    domain.StatusReceived,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "doc-1" {
		t.Fatalf("docs = %+v", docs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
