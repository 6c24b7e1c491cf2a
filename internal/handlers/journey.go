package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/supabase"
)

type JourneyHandler struct {
	dbClient       *database.Client
	realtimeClient *supabase.RealtimeClient
}

func NewJourneyHandler(dbClient *database.Client, realtimeClient *supabase.RealtimeClient) *JourneyHandler {
	return &JourneyHandler{
		dbClient:       dbClient,
		realtimeClient: realtimeClient,
	}
}

// ListEntries godoc
// @Summary     List journey entries
// @Description Returns the timeline entries with their images, in display order
// @Tags        journey
// @Produce     json
// @Success     200 {object} models.Envelope
// @Router      /journey [get]
func (h *JourneyHandler) ListEntries(c *gin.Context) {
	var entries []models.JourneyEntry
	err := withReadRetry(func() error {
		var e error
		entries, e = h.dbClient.ListJourneyEntries(c.Request.Context())
		return e
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(entries))
}

func (h *JourneyHandler) GetEntry(c *gin.Context) {
	journeyID, ok := parseIDParam(c, "journey_id")
	if !ok {
		return
	}

	var entry *models.JourneyEntry
	err := withReadRetry(func() error {
		var e error
		entry, e = h.dbClient.GetJourneyEntry(c.Request.Context(), journeyID)
		return e
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(entry))
}

func (h *JourneyHandler) CreateEntry(c *gin.Context) {
	var req models.CreateJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Failure("invalid request body: "+err.Error()))
		return
	}

	entry, err := h.dbClient.CreateJourneyEntry(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.realtimeClient.NotifyContentChanged("journey", entry.ID, "created")
	c.JSON(http.StatusCreated, models.Success(entry))
}

func (h *JourneyHandler) UpdateEntry(c *gin.Context) {
	journeyID, ok := parseIDParam(c, "journey_id")
	if !ok {
		return
	}

	var req models.UpdateJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Failure("invalid request body: "+err.Error()))
		return
	}

	entry, err := h.dbClient.UpdateJourneyEntry(c.Request.Context(), journeyID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.realtimeClient.NotifyContentChanged("journey", entry.ID, "updated")
	c.JSON(http.StatusOK, models.Success(entry))
}

func (h *JourneyHandler) DeleteEntry(c *gin.Context) {
	journeyID, ok := parseIDParam(c, "journey_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteJourneyEntry(c.Request.Context(), journeyID); err != nil {
		respondError(c, err)
		return
	}

	h.realtimeClient.NotifyContentChanged("journey", journeyID, "deleted")
	c.JSON(http.StatusOK, models.Success(gin.H{"deleted": true}))
}
