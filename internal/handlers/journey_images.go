package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
	"portfolio-backend/internal/supabase"
)

type JourneyImagesHandler struct {
	dbClient       *database.Client
	imageService   *services.ImageService
	realtimeClient *supabase.RealtimeClient
}

func NewJourneyImagesHandler(dbClient *database.Client, imageService *services.ImageService, realtimeClient *supabase.RealtimeClient) *JourneyImagesHandler {
	return &JourneyImagesHandler{
		dbClient:       dbClient,
		imageService:   imageService,
		realtimeClient: realtimeClient,
	}
}

// UploadImages godoc
// @Summary     Upload journey entry images
// @Tags        journey-images
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       journey_id path string true "Journey entry ID"
// @Success     200 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /admin/journey/{journey_id}/images [post]
func (h *JourneyImagesHandler) UploadImages(c *gin.Context) {
	journeyID, ok := parseIDParam(c, "journey_id")
	if !ok {
		return
	}

	files, err := multipartFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Failure(err.Error()))
		return
	}

	result, err := h.imageService.UploadJourneyImages(c.Request.Context(), journeyID, files)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(result))
}

func (h *JourneyImagesHandler) DeleteImage(c *gin.Context) {
	imageID, ok := parseIDParam(c, "image_id")
	if !ok {
		return
	}

	if err := h.imageService.DeleteJourneyImage(c.Request.Context(), imageID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(gin.H{"deleted": true}))
}

func (h *JourneyImagesHandler) UpdateImageOrder(c *gin.Context) {
	journeyID, ok := parseIDParam(c, "journey_id")
	if !ok {
		return
	}

	var req models.UpdateImageOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Failure("invalid request body: "+err.Error()))
		return
	}
	if len(req.ImageIDs) == 0 {
		c.JSON(http.StatusBadRequest, models.Failure("image_ids is required"))
		return
	}

	reordered, err := h.dbClient.UpdateJourneyImageOrder(c.Request.Context(), journeyID, req.ImageIDs)
	if err != nil {
		_ = h.dbClient.ReindexJourneyImages(c.Request.Context(), journeyID)
		respondError(c, err)
		return
	}

	h.realtimeClient.NotifyContentChanged("journey", journeyID, "images_reordered")
	c.JSON(http.StatusOK, models.Success(gin.H{"reordered": reordered}))
}
