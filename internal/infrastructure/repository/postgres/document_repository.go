package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
)

const documentColumns = `id, title, direction, from_party, to_party, document_number, document_date, subject, priority, status, completed_by, file_path, extraction, created_at, updated_at`

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026052101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	direction TEXT NOT NULL,
	from_party TEXT NOT NULL DEFAULT '',
	to_party TEXT NOT NULL DEFAULT '',
	document_number TEXT NOT NULL DEFAULT '',
	document_date TEXT NOT NULL DEFAULT '',
	subject TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL,
	status TEXT NOT NULL,
	completed_by TEXT NOT NULL DEFAULT '',
	file_path TEXT NOT NULL,
	extraction JSONB,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
CREATE INDEX IF NOT EXISTS idx_documents_direction ON documents(direction);
CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at DESC);

CREATE TABLE IF NOT EXISTS workflow_events (
	id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	action TEXT NOT NULL,
	comment TEXT NOT NULL DEFAULT '',
	completed_by TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_workflow_events_document ON workflow_events(document_id, created_at);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.DocumentRecord) error {
	extraction, err := marshalExtraction(doc.Extraction)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO documents (`+documentColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
`,
		doc.ID, doc.Title, string(doc.Direction), doc.FromParty, doc.ToParty,
		doc.DocumentNumber, doc.DocumentDate, doc.Subject, string(doc.Priority),
		string(doc.Status), doc.CompletedBy, doc.FilePath, extraction,
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+documentColumns+`
FROM documents
WHERE id = $1
`, id)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "postgres.get", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return doc, nil
}

func (r *DocumentRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.DocumentRecord, error) {
	query := `SELECT ` + documentColumns + ` FROM documents`
	var clauses []string
	var args []any
	if filter.Direction != "" {
		args = append(args, string(filter.Direction))
		clauses = append(clauses, fmt.Sprintf("direction = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []domain.DocumentRecord
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		out = append(out, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}

// UpdateDetails persists descriptive fields and extraction output. Status and
// completed_by are intentionally absent from the statement.
func (r *DocumentRepository) UpdateDetails(ctx context.Context, doc *domain.DocumentRecord) error {
	extraction, err := marshalExtraction(doc.Extraction)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET title = $2, direction = $3, from_party = $4, to_party = $5,
	document_number = $6, document_date = $7, subject = $8, priority = $9,
	extraction = $10, updated_at = $11
WHERE id = $1
`,
		doc.ID, doc.Title, string(doc.Direction), doc.FromParty, doc.ToParty,
		doc.DocumentNumber, doc.DocumentDate, doc.Subject, string(doc.Priority),
		extraction, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document details: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document details rows: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "postgres.update", fmt.Errorf("id %s", doc.ID))
	}
	return nil
}

// UpdateStatusFrom applies a transition with an optimistic guard on the
// observed status. Zero affected rows means either the document vanished or
// another transition won the race; the follow-up read tells which.
func (r *DocumentRepository) UpdateStatusFrom(ctx context.Context, id string, from, to domain.WorkflowStatus, completedBy string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET status = $3, completed_by = $4, updated_at = $5
WHERE id = $1 AND status = $2
`, id, string(from), string(to), completedBy, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document status rows: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var current string
	err = r.db.QueryRowContext(ctx, `SELECT status FROM documents WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WrapError(domain.ErrDocumentNotFound, "postgres.status", fmt.Errorf("id %s", id))
	}
	if err != nil {
		return fmt.Errorf("read current status: %w", err)
	}
	return domain.WrapError(domain.ErrConflict, "postgres.status",
		fmt.Errorf("expected %s, found %s", from, current))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.DocumentRecord, error) {
	var doc domain.DocumentRecord
	var direction, priority, status string
	var extractionRaw []byte

	err := row.Scan(
		&doc.ID, &doc.Title, &direction, &doc.FromParty, &doc.ToParty,
		&doc.DocumentNumber, &doc.DocumentDate, &doc.Subject, &priority,
		&status, &doc.CompletedBy, &doc.FilePath, &extractionRaw,
		&doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.Direction = domain.Direction(direction)
	doc.Priority = domain.Priority(priority)
	doc.Status = domain.WorkflowStatus(status)
	if len(extractionRaw) > 0 {
		var fields domain.ExtractedFields
		if err := json.Unmarshal(extractionRaw, &fields); err != nil {
			return nil, fmt.Errorf("unmarshal extraction: %w", err)
		}
		doc.Extraction = &fields
	}
	return &doc, nil
}

func marshalExtraction(fields *domain.ExtractedFields) ([]byte, error) {
	if fields == nil {
		return nil, nil
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal extraction: %w", err)
	}
	return raw, nil
}
