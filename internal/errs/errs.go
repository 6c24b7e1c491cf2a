// Package errs defines the error taxonomy used at every repository and
// gateway boundary. Low-level database and storage errors are classified
// into one of these types before they reach a handler, so handlers map
// errors to HTTP status codes with a single switch.
package errs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/lib/pq"
)

// Postgres error codes we care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ValidationError reports missing or malformed input. The message is
// safe to show to the user verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ConflictError reports a unique-constraint violation, typically a
// duplicate slug.
type ConflictError struct {
	Resource string
	Message  string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NotFoundError reports that a referenced id or slug does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// UploadError reports a failed storage operation. The underlying error
// is preserved for diagnostics.
type UploadError struct {
	Op    string
	Cause error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Cause)
}

func (e *UploadError) Unwrap() error { return e.Cause }

// TransientError reports a timeout or network failure. The caller may
// retry with backoff.
type TransientError struct {
	Op    string
	Cause error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: transient failure: %v", e.Op, e.Cause)
}

func (e *TransientError) Unwrap() error { return e.Cause }

// PartialFailureError reports that a multi-step operation stopped
// partway. The affected entity may be inconsistent and the caller
// should re-run the full operation rather than assume a rollback.
type PartialFailureError struct {
	Op        string
	Completed int
	Total     int
	Cause     error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s partially failed (%d of %d steps applied): %v", e.Op, e.Completed, e.Total, e.Cause)
}

func (e *PartialFailureError) Unwrap() error { return e.Cause }

// Validation builds a ValidationError for a single field.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFound builds a NotFoundError for a resource name.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// FromDatabase classifies a raw database error. sql.ErrNoRows becomes a
// NotFoundError for the given resource, unique violations become
// ConflictError, foreign key violations become ValidationError, and
// network timeouts become TransientError. Anything else is returned
// wrapped with the operation name.
func FromDatabase(op, resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Resource: resource}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return &ConflictError{
				Resource: resource,
				Message:  fmt.Sprintf("%s already exists: %s", resource, pqErr.Detail),
			}
		case pgForeignKeyViolation:
			return &ValidationError{Message: fmt.Sprintf("%s references a missing record", resource)}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &TransientError{Op: op, Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransientError{Op: op, Cause: err}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// IsRetryable reports whether the caller may safely retry the
// operation. Only transient failures qualify; validation, conflict and
// not-found errors are deterministic, and partial failures need an
// explicit full re-run by the caller.
func IsRetryable(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// HTTPStatus maps a classified error to the response status code.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		conflict   *ConflictError
		notFound   *NotFoundError
		upload     *UploadError
		transient  *TransientError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &upload):
		return http.StatusBadGateway
	case errors.As(err, &transient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the string surfaced to the client. Validation and
// conflict reasons are shown verbatim; everything else gets a generic
// message while the full detail goes to the logs.
func UserMessage(err error) string {
	var (
		validation *ValidationError
		conflict   *ConflictError
		notFound   *NotFoundError
		upload     *UploadError
		transient  *TransientError
	)
	switch {
	case errors.As(err, &validation):
		return validation.Error()
	case errors.As(err, &conflict):
		return conflict.Error()
	case errors.As(err, &notFound):
		return notFound.Error()
	case errors.As(err, &upload), errors.As(err, &transient):
		return "temporary failure, please retry"
	default:
		return "internal server error"
	}
}
