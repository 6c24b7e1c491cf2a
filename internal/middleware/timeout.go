package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// OutboundTimeout bounds the network calls made on behalf of one
// request.
const OutboundTimeout = 30 * time.Second

// RequestTimeout attaches a deadline to the request context so database
// and storage calls cannot block a handler goroutine indefinitely. A
// timed-out call surfaces as a transient error and a 503.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
