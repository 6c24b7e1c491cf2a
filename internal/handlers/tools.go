package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/supabase"
)

type ToolsHandler struct {
	dbClient       *database.Client
	realtimeClient *supabase.RealtimeClient
}

func NewToolsHandler(dbClient *database.Client, realtimeClient *supabase.RealtimeClient) *ToolsHandler {
	return &ToolsHandler{
		dbClient:       dbClient,
		realtimeClient: realtimeClient,
	}
}

// ListTools godoc
// @Summary     List tools
// @Tags        tools
// @Produce     json
// @Success     200 {object} models.Envelope
// @Router      /tools [get]
func (h *ToolsHandler) ListTools(c *gin.Context) {
	var tools []models.Tool
	err := withReadRetry(func() error {
		var e error
		tools, e = h.dbClient.ListTools(c.Request.Context())
		return e
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(tools))
}

func (h *ToolsHandler) CreateTool(c *gin.Context) {
	var req models.CreateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Failure("invalid request body: "+err.Error()))
		return
	}

	tool, err := h.dbClient.CreateTool(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.realtimeClient.NotifyContentChanged("tool", tool.ID, "created")
	c.JSON(http.StatusCreated, models.Success(tool))
}

func (h *ToolsHandler) UpdateTool(c *gin.Context) {
	toolID, ok := parseIDParam(c, "tool_id")
	if !ok {
		return
	}

	var req models.UpdateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Failure("invalid request body: "+err.Error()))
		return
	}

	tool, err := h.dbClient.UpdateTool(c.Request.Context(), toolID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.realtimeClient.NotifyContentChanged("tool", tool.ID, "updated")
	c.JSON(http.StatusOK, models.Success(tool))
}

// DeleteTool removes the tool along with its project associations.
func (h *ToolsHandler) DeleteTool(c *gin.Context) {
	toolID, ok := parseIDParam(c, "tool_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteTool(c.Request.Context(), toolID); err != nil {
		respondError(c, err)
		return
	}

	h.realtimeClient.NotifyContentChanged("tool", toolID, "deleted")
	c.JSON(http.StatusOK, models.Success(gin.H{"deleted": true}))
}
