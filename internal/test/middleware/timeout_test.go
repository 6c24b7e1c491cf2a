package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"portfolio-backend/internal/middleware"
)

func TestRequestTimeout_SetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var deadline time.Time
	var hasDeadline bool

	router := gin.New()
	router.Use(middleware.RequestTimeout(middleware.OutboundTimeout))
	router.GET("/test", func(c *gin.Context) {
		deadline, hasDeadline = c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	before := time.Now()
	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hasDeadline)
	assert.WithinDuration(t, before.Add(middleware.OutboundTimeout), deadline, 5*time.Second)
}

func TestRequestTimeout_ExpiredContextObservedByHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var ctxErr error

	router := gin.New()
	router.Use(middleware.RequestTimeout(time.Nanosecond))
	router.GET("/test", func(c *gin.Context) {
		<-c.Request.Context().Done()
		ctxErr = c.Request.Context().Err()
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "timeout"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.ErrorIs(t, ctxErr, context.DeadlineExceeded)
}
