package errs_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"portfolio-backend/internal/errs"
)

func TestFromDatabase_NoRows(t *testing.T) {
	err := errs.FromDatabase("get project", "project", sql.ErrNoRows)

	var notFound *errs.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "project", notFound.Resource)
	assert.Equal(t, http.StatusNotFound, errs.HTTPStatus(err))
}

func TestFromDatabase_UniqueViolation(t *testing.T) {
	pqErr := &pq.Error{Code: "23505", Detail: "Key (slug)=(my-project) already exists."}

	err := errs.FromDatabase("create project", "project", pqErr)

	var conflict *errs.ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, http.StatusConflict, errs.HTTPStatus(err))
	assert.Contains(t, errs.UserMessage(err), "already exists")
}

func TestFromDatabase_ForeignKeyViolation(t *testing.T) {
	pqErr := &pq.Error{Code: "23503"}

	err := errs.FromDatabase("create association", "tool", pqErr)

	var validation *errs.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, http.StatusBadRequest, errs.HTTPStatus(err))
}

func TestFromDatabase_DeadlineExceeded(t *testing.T) {
	err := errs.FromDatabase("list projects", "project", context.DeadlineExceeded)

	var transient *errs.TransientError
	assert.ErrorAs(t, err, &transient)
	assert.True(t, errs.IsRetryable(err))
	assert.Equal(t, http.StatusServiceUnavailable, errs.HTTPStatus(err))
}

func TestFromDatabase_Nil(t *testing.T) {
	assert.NoError(t, errs.FromDatabase("op", "resource", nil))
}

func TestFromDatabase_UnknownWrapsOp(t *testing.T) {
	cause := errors.New("boom")

	err := errs.FromDatabase("list projects", "project", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "list projects")
	assert.Equal(t, http.StatusInternalServerError, errs.HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, errs.HTTPStatus(errs.Validation("title", "title is required")))
	assert.Equal(t, http.StatusNotFound, errs.HTTPStatus(errs.NotFound("tag")))
	assert.Equal(t, http.StatusBadGateway, errs.HTTPStatus(&errs.UploadError{Op: "upload", Cause: errors.New("x")}))
	assert.Equal(t, http.StatusServiceUnavailable, errs.HTTPStatus(&errs.TransientError{Op: "get", Cause: errors.New("x")}))
	assert.Equal(t, http.StatusInternalServerError, errs.HTTPStatus(errors.New("anything")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, errs.IsRetryable(&errs.TransientError{Op: "get", Cause: errors.New("timeout")}))

	assert.False(t, errs.IsRetryable(errs.Validation("x", "y")))
	assert.False(t, errs.IsRetryable(errs.NotFound("project")))
	assert.False(t, errs.IsRetryable(&errs.PartialFailureError{Op: "reorder", Completed: 1, Total: 3, Cause: errors.New("x")}))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "title: title is required", errs.UserMessage(errs.Validation("title", "title is required")))
	assert.Equal(t, "project not found", errs.UserMessage(errs.NotFound("project")))
	assert.Equal(t, "temporary failure, please retry", errs.UserMessage(&errs.TransientError{Op: "get", Cause: errors.New("x")}))
	assert.Equal(t, "internal server error", errs.UserMessage(errors.New("pq: deadlock detected")))
}

func TestPartialFailureError_Message(t *testing.T) {
	err := &errs.PartialFailureError{Op: "update image order", Completed: 2, Total: 5, Cause: errors.New("connection reset")}

	assert.Contains(t, err.Error(), "2 of 5")
	assert.ErrorIs(t, err, err.Cause)
}
