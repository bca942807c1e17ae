package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound      = errors.New("document not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidTransition     = errors.New("invalid workflow transition")
	ErrMissingCompletionName = errors.New("completion name required")
	ErrConflict              = errors.New("concurrent transition conflict")
	ErrRecognitionTimeout    = errors.New("recognition timed out")
	ErrTemporary             = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
