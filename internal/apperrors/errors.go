// Package apperrors defines the error kinds the core services return. Every
// failure maps to one of these so the HTTP layer can pick a stable status
// code without string matching.
package apperrors

import (
	"fmt"
	"strings"
)

// ValidationError reports a bad input value with field-level detail.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidation(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// InvalidBank builds the validation error for a bank outside the team's
// configured list, naming the allowed set.
func InvalidBank(bank string, allowed []string) *ValidationError {
	return NewValidation("bank", "bank %q is not configured for this team (allowed: %s)",
		bank, strings.Join(allowed, ", "))
}

// NotFoundError reports an absent entity or one owned by another team. The
// two cases are indistinguishable to the caller.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func NewNotFound(entity string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports a detected write conflict, e.g. a concurrent update
// race or a duplicate active budget.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// IntegrityWarning is non-fatal: the operation proceeded with degraded data,
// e.g. a budget whose category has been deactivated.
type IntegrityWarning struct {
	Message string
}

func (e *IntegrityWarning) Error() string { return e.Message }

func NewIntegrityWarning(format string, args ...interface{}) *IntegrityWarning {
	return &IntegrityWarning{Message: fmt.Sprintf(format, args...)}
}
