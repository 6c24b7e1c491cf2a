package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/models"
)

type GeneralInfoHandler struct {
	dbClient *database.Client
}

func NewGeneralInfoHandler(dbClient *database.Client) *GeneralInfoHandler {
	return &GeneralInfoHandler{dbClient: dbClient}
}

// ListEntries godoc
// @Summary     List knowledge-base entries
// @Tags        general-info
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.Envelope
// @Router      /admin/general-info [get]
func (h *GeneralInfoHandler) ListEntries(c *gin.Context) {
	var entries []models.GeneralInfo
	err := withReadRetry(func() error {
		var e error
		entries, e = h.dbClient.ListGeneralInfo(c.Request.Context())
		return e
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(entries))
}

// SaveEntry creates an entry when the body carries no id and updates
// the existing one otherwise.
func (h *GeneralInfoHandler) SaveEntry(c *gin.Context) {
	var req models.GeneralInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Failure("invalid request body: "+err.Error()))
		return
	}

	entry, err := h.dbClient.UpsertGeneralInfo(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if req.ID == nil {
		status = http.StatusCreated
	}
	c.JSON(status, models.Success(entry))
}
