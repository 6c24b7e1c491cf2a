package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/errs"
	"portfolio-backend/internal/models"
)

// respondError maps a classified error to its status code and writes
// the envelope. Validation and conflict reasons go to the client
// verbatim; everything else is logged in full and surfaced generically.
func respondError(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.JSON(status, models.Failure(errs.UserMessage(err)))
}

// withReadRetry retries an idempotent read with backoff when the
// failure is transient, for three attempts total. Mutations never go
// through here.
func withReadRetry(fn func() error) error {
	err := fn()
	if err != nil && errs.IsRetryable(err) {
		return database.RetryWithBackoff(fn, 2)
	}
	return err
}
