package loom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/loom/dialect"
	"github.com/syssam/loom/schema"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotInitialized is returned when an operation runs before a
	// driver and dialect are bound to the client.
	ErrNotInitialized = errors.New("loom: client not initialized")

	// ErrValidation is the sentinel all validation failures match via
	// errors.Is, regardless of the concrete violation.
	ErrValidation = errors.New("loom: validation failed")
)

// RequiredError reports a required column whose value is null, or empty
// or whitespace-only for text columns.
type RequiredError struct {
	Column string
}

// Error returns the error string.
func (e *RequiredError) Error() string {
	return fmt.Sprintf("loom: required column %q is missing or empty", e.Column)
}

// Is reports whether the target error matches ErrValidation.
func (e *RequiredError) Is(err error) bool {
	return err == ErrValidation
}

// IsRequired returns true if the error is a RequiredError.
func IsRequired(err error) bool {
	if err == nil {
		return false
	}
	var e *RequiredError
	return errors.As(err, &e)
}

// UniqueError reports a unique column whose value already exists in the
// backing store. The check runs against committed state; the store-level
// UNIQUE constraint remains the authoritative enforcement.
type UniqueError struct {
	Column string
}

// Error returns the error string.
func (e *UniqueError) Error() string {
	return fmt.Sprintf("loom: column %q violates unique constraint", e.Column)
}

// Is reports whether the target error matches ErrValidation.
func (e *UniqueError) Is(err error) bool {
	return err == ErrValidation
}

// IsUnique returns true if the error is a UniqueError.
func IsUnique(err error) bool {
	if err == nil {
		return false
	}
	var e *UniqueError
	return errors.As(err, &e)
}

// CompositeKeyError reports an entity whose composite-key column values
// already identify an existing row.
type CompositeKeyError struct {
	Columns []string
}

// Error returns the error string.
func (e *CompositeKeyError) Error() string {
	return fmt.Sprintf("loom: composite key (%s) violates uniqueness", strings.Join(e.Columns, ", "))
}

// Is reports whether the target error matches ErrValidation.
func (e *CompositeKeyError) Is(err error) bool {
	return err == ErrValidation
}

// IsCompositeKey returns true if the error is a CompositeKeyError.
func IsCompositeKey(err error) bool {
	if err == nil {
		return false
	}
	var e *CompositeKeyError
	return errors.As(err, &e)
}

// IsValidation returns true if the error is any validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// StoreError wraps a statement the underlying store rejected: a syntax
// error, a store-level constraint violation, or connectivity loss. The
// original error is re-raised unchanged through Unwrap; no operation is
// retried.
type StoreError struct {
	Op  string // Operation (e.g., "insert", "create table").
	Err error  // Underlying store error.
}

// Error returns the error string.
func (e *StoreError) Error() string {
	return fmt.Sprintf("loom: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError returns true if the error is a StoreError.
func IsStoreError(err error) bool {
	if err == nil {
		return false
	}
	var e *StoreError
	return errors.As(err, &e)
}

// RollbackError wraps an error that occurred during a transaction rollback.
type RollbackError struct {
	Err error // Original error that triggered rollback, joined with the rollback failure.
}

// Error returns the error string.
func (e *RollbackError) Error() string {
	return fmt.Sprintf("loom: rollback failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *RollbackError) Unwrap() error {
	return e.Err
}

// IsUnsupportedType returns true if the error reports a column type with
// no mapping in the chosen dialect.
func IsUnsupportedType(err error) bool {
	if err == nil {
		return false
	}
	var e *dialect.UnsupportedTypeError
	return errors.As(err, &e)
}

// IsSchemaError returns true if the error reports a defect in a model
// declaration.
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}
	var e *schema.SchemaError
	return errors.As(err, &e)
}

// IsMissingTableName returns true if the error reports an unresolvable
// table name.
func IsMissingTableName(err error) bool {
	if err == nil {
		return false
	}
	var e *schema.MissingTableNameError
	return errors.As(err, &e)
}
