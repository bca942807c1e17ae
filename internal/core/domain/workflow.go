package domain

import (
	"fmt"
	"strings"
	"time"
)

type WorkflowStatus string

const (
	StatusReceived        WorkflowStatus = "received"
	StatusPendingApproval WorkflowStatus = "pending_approval"
	StatusSentOut         WorkflowStatus = "sent_out"
	StatusCompleted       WorkflowStatus = "completed"
)

type WorkflowAction string

const (
	ActionProcess  WorkflowAction = "process"
	ActionSendOut  WorkflowAction = "send_out"
	ActionComplete WorkflowAction = "complete"
)

// WorkflowEvent is one immutable audit record. Exactly one event is appended
// per accepted transition; the status column on DocumentRecord is a cached
// projection of the latest event.
type WorkflowEvent struct {
	ID          string         `json:"id"`
	DocumentID  string         `json:"document_id"`
	Action      WorkflowAction `json:"action"`
	Comment     string         `json:"comment,omitempty"`
	CompletedBy string         `json:"completed_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type transition struct {
	from WorkflowStatus
	to   WorkflowStatus
}

// The single legal forward path. Order matters and is the whole contract:
// received -> pending_approval -> sent_out -> completed, nothing else.
var transitions = map[WorkflowAction]transition{
	ActionProcess:  {from: StatusReceived, to: StatusPendingApproval},
	ActionSendOut:  {from: StatusPendingApproval, to: StatusSentOut},
	ActionComplete: {from: StatusSentOut, to: StatusCompleted},
}

var statusRank = map[WorkflowStatus]int{
	StatusReceived:        0,
	StatusPendingApproval: 1,
	StatusSentOut:         2,
	StatusCompleted:       3,
}

// ValidStatus reports whether s is one of the four workflow states.
func ValidStatus(s WorkflowStatus) bool {
	_, ok := statusRank[s]
	return ok
}

// Rank returns the position of s on the forward path, -1 for unknown states.
func (s WorkflowStatus) Rank() int {
	rank, ok := statusRank[s]
	if !ok {
		return -1
	}
	return rank
}

// NextStatus validates action against the current status and returns the
// status the record would move to. Complete additionally requires a non-blank
// completion name. The machine never silently no-ops: any request without a
// defined transition (including anything from completed) is rejected.
func NextStatus(current WorkflowStatus, action WorkflowAction, completedBy string) (WorkflowStatus, error) {
	tr, ok := transitions[action]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}
	if tr.from != current {
		return "", fmt.Errorf("%w: %s not allowed from %s", ErrInvalidTransition, action, current)
	}
	if action == ActionComplete && strings.TrimSpace(completedBy) == "" {
		return "", ErrMissingCompletionName
	}
	return tr.to, nil
}

// TransitionComment is the default audit comment summarizing the new status.
func TransitionComment(to WorkflowStatus) string {
	switch to {
	case StatusPendingApproval:
		return "document moved to pending approval"
	case StatusSentOut:
		return "document sent out"
	case StatusCompleted:
		return "document completed"
	default:
		return "document received"
	}
}
