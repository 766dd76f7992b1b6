package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a lookup or mutation matched no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials is returned by login on an unknown email or bad password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrForbidden is returned when the caller may not perform the operation.
	ErrForbidden = errors.New("forbidden")
)

// Transaction stages reported in StageError.
const (
	StageBegin           = "begin"
	StageOrderInsert     = "order_insert"
	StageLineInsert      = "line_insert"
	StageCartClear       = "cart_clear"
	StageInventoryUpdate = "inventory_update"
	StageLineDelete      = "line_delete"
	StageOrderDelete     = "order_delete"
	StageOrderRemoval    = "order_removal"
	StageFeedbackDelete  = "feedback_delete"
	StageUserDelete      = "user_delete"
	StageRollback        = "rollback"
	StageCommit          = "commit"
)

// ValidationError carries per-field messages for a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, field := range sortedKeys(e.Fields) {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(parts, "; ")
}

// StageError wraps a store failure inside a transaction with the step that failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
