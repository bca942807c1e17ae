package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
)

type WorkflowEventRepository struct {
	db *sql.DB
}

func NewWorkflowEventRepository(db *sql.DB) *WorkflowEventRepository {
	return &WorkflowEventRepository{db: db}
}

func (r *WorkflowEventRepository) Append(ctx context.Context, event *domain.WorkflowEvent) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO workflow_events (id, document_id, action, comment, completed_by, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`,
		event.ID, event.DocumentID, string(event.Action), event.Comment,
		event.CompletedBy, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert workflow event: %w", err)
	}
	return nil
}

func (r *WorkflowEventRepository) ListByDocument(ctx context.Context, documentID string) ([]domain.WorkflowEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, document_id, action, comment, completed_by, created_at
FROM workflow_events
WHERE document_id = $1
ORDER BY created_at, id
`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list workflow events: %w", err)
	}
	defer rows.Close()

	var out []domain.WorkflowEvent
	for rows.Next() {
		var event domain.WorkflowEvent
		var action string
		if err := rows.Scan(&event.ID, &event.DocumentID, &action, &event.Comment, &event.CompletedBy, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan workflow event: %w", err)
		}
		event.Action = domain.WorkflowAction(action)
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workflow events: %w", err)
	}
	return out, nil
}
