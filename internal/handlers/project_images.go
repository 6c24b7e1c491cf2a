package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
	"portfolio-backend/internal/supabase"
)

type ProjectImagesHandler struct {
	dbClient       *database.Client
	imageService   *services.ImageService
	realtimeClient *supabase.RealtimeClient
}

func NewProjectImagesHandler(dbClient *database.Client, imageService *services.ImageService, realtimeClient *supabase.RealtimeClient) *ProjectImagesHandler {
	return &ProjectImagesHandler{
		dbClient:       dbClient,
		imageService:   imageService,
		realtimeClient: realtimeClient,
	}
}

// UploadImages godoc
// @Summary     Upload project images
// @Description Stores each file and appends a row at the end of the project's ordering sequence
// @Tags        project-images
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Success     200 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /admin/projects/{project_id}/images [post]
func (h *ProjectImagesHandler) UploadImages(c *gin.Context) {
	projectID, ok := parseIDParam(c, "project_id")
	if !ok {
		return
	}

	files, err := multipartFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Failure(err.Error()))
		return
	}

	result, err := h.imageService.UploadProjectImages(c.Request.Context(), projectID, files)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(result))
}

func (h *ProjectImagesHandler) DeleteImage(c *gin.Context) {
	imageID, ok := parseIDParam(c, "image_id")
	if !ok {
		return
	}

	if err := h.imageService.DeleteProjectImage(c.Request.Context(), imageID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(gin.H{"deleted": true}))
}

// UpdateImageOrder applies the caller's ordering: each image takes the
// index of its position in image_ids.
func (h *ProjectImagesHandler) UpdateImageOrder(c *gin.Context) {
	projectID, ok := parseIDParam(c, "project_id")
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

	reordered, err := h.dbClient.UpdateProjectImageOrder(c.Request.Context(), projectID, req.ImageIDs)
	if err != nil {
		// A partial write leaves gaps; the reindex pass repairs them.
		_ = h.dbClient.ReindexProjectImages(c.Request.Context(), projectID)
		respondError(c, err)
		return
	}

	h.realtimeClient.NotifyContentChanged("project", projectID, "images_reordered")
	c.JSON(http.StatusOK, models.Success(gin.H{"reordered": reordered}))
}

// multipartFiles collects the uploaded files, accepting both the
// multi-file "images" field and the single-file "image" fallback the
// dashboard used.
func multipartFiles(c *gin.Context) ([]*multipart.FileHeader, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return nil, err
	}

	form := c.Request.MultipartForm
	if form != nil {
		if files := form.File["images"]; len(files) > 0 {
			return files, nil
		}
		if files := form.File["files"]; len(files) > 0 {
			return files, nil
		}
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, err
	}
	return []*multipart.FileHeader{fileHeader}, nil
}
