package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/models"
)

type AnalyticsHandler struct {
	dbClient *database.Client
}

func NewAnalyticsHandler(dbClient *database.Client) *AnalyticsHandler {
	return &AnalyticsHandler{dbClient: dbClient}
}

// GetChatAnalytics godoc
// @Summary     Chat analytics
// @Description Aggregates sessions, message counts and recent messages for the period
// @Tags        analytics
// @Produce     json
// @Security    Bearer
// @Param       period query string false "Reporting period" Enums(24h, 7d, 30d, 90d) default(7d)
// @Param       limit  query int    false "Max sessions"     default(100)
// @Success     200 {object} models.Envelope
// @Router      /admin/analytics/chat [get]
func (h *AnalyticsHandler) GetChatAnalytics(c *gin.Context) {
	period := c.DefaultQuery("period", "7d")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	var analytics *models.ChatAnalytics
	err = withReadRetry(func() error {
		var e error
		analytics, e = h.dbClient.GetChatAnalytics(c.Request.Context(), period, limit)
		return e
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(analytics))
}

// GetContentUsage reports row counts per content type.
func (h *AnalyticsHandler) GetContentUsage(c *gin.Context) {
	var usage *models.ContentUsage
	err := withReadRetry(func() error {
		var e error
		usage, e = h.dbClient.GetContentUsage(c.Request.Context())
		return e
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(usage))
}

// GetSessionMessages returns one conversation in sequence order.
func (h *AnalyticsHandler) GetSessionMessages(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "session_id")
	if !ok {
		return
	}

	var messages []models.ChatMessage
	err := withReadRetry(func() error {
		var e error
		messages, e = h.dbClient.GetSessionMessages(c.Request.Context(), sessionID)
		return e
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(messages))
}
