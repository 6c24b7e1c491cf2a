package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/supabase"
)

type TagsHandler struct {
	dbClient       *database.Client
	realtimeClient *supabase.RealtimeClient
}

func NewTagsHandler(dbClient *database.Client, realtimeClient *supabase.RealtimeClient) *TagsHandler {
	return &TagsHandler{
		dbClient:       dbClient,
		realtimeClient: realtimeClient,
	}
}

// ListTags godoc
// @Summary     List tags
// @Tags        tags
// @Produce     json
// @Success     200 {object} models.Envelope
// @Router      /tags [get]
func (h *TagsHandler) ListTags(c *gin.Context) {
	var tags []models.Tag
	err := withReadRetry(func() error {
		var e error
		tags, e = h.dbClient.ListTags(c.Request.Context())
		return e
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(tags))
}

func (h *TagsHandler) CreateTag(c *gin.Context) {
	var req models.CreateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Failure("invalid request body: "+err.Error()))
		return
	}

	tag, err := h.dbClient.CreateTag(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.realtimeClient.NotifyContentChanged("tag", tag.ID, "created")
	c.JSON(http.StatusCreated, models.Success(tag))
}

func (h *TagsHandler) UpdateTag(c *gin.Context) {
	tagID, ok := parseIDParam(c, "tag_id")
	if !ok {
		return
	}

	var req models.UpdateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Failure("invalid request body: "+err.Error()))
		return
	}

	tag, err := h.dbClient.UpdateTag(c.Request.Context(), tagID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.realtimeClient.NotifyContentChanged("tag", tag.ID, "updated")
	c.JSON(http.StatusOK, models.Success(tag))
}

func (h *TagsHandler) DeleteTag(c *gin.Context) {
	tagID, ok := parseIDParam(c, "tag_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteTag(c.Request.Context(), tagID); err != nil {
		respondError(c, err)
		return
	}

	h.realtimeClient.NotifyContentChanged("tag", tagID, "deleted")
	c.JSON(http.StatusOK, models.Success(gin.H{"deleted": true}))
}
