package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio-backend/internal/database"
	"portfolio-backend/internal/errs"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/supabase"
)

type ProjectsHandler struct {
	dbClient       *database.Client
	realtimeClient *supabase.RealtimeClient
}

func NewProjectsHandler(dbClient *database.Client, realtimeClient *supabase.RealtimeClient) *ProjectsHandler {
	return &ProjectsHandler{
		dbClient:       dbClient,
		realtimeClient: realtimeClient,
	}
}

// ListProjects godoc
// @Summary     List projects
// @Description Returns all projects with images, tools and tags, newest first
// @Tags        projects
// @Produce     json
// @Success     200 {object} models.Envelope
// @Router      /projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	var projects []models.Project
	err := withReadRetry(func() error {
		var e error
		projects, e = h.dbClient.ListProjects(c.Request.Context())
		return e
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(projects))
}

// GetProjectBySlug godoc
// @Summary     Get a project by slug
// @Tags        projects
// @Produce     json
// @Param       slug path string true "Project slug"
// @Success     200 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Router      /projects/{slug} [get]
func (h *ProjectsHandler) GetProjectBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var project *models.Project
	err := withReadRetry(func() error {
		var e error
		project, e = h.dbClient.GetProjectBySlug(c.Request.Context(), slug)
		return e
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Success(project))
}

// CreateProject godoc
// @Summary     Create a project
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     201 {object} models.Envelope
// @Failure     400 {object} models.Envelope
// @Failure     409 {object} models.Envelope
// @Router      /admin/projects [post]
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Failure("invalid request body: "+err.Error()))
		return
	}

	project, err := h.dbClient.CreateProject(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.realtimeClient.NotifyContentChanged("project", project.ID, "created")
	c.JSON(http.StatusCreated, models.Success(project))
}

func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Failure("invalid project id"))
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Failure("invalid request body: "+err.Error()))
		return
	}

	project, err := h.dbClient.UpdateProject(c.Request.Context(), projectID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.realtimeClient.NotifyContentChanged("project", project.ID, "updated")
	c.JSON(http.StatusOK, models.Success(project))
}

func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Failure("invalid project id"))
		return
	}

	if err := h.dbClient.DeleteProject(c.Request.Context(), projectID); err != nil {
		respondError(c, err)
		return
	}

	h.realtimeClient.NotifyContentChanged("project", projectID, "deleted")
	c.JSON(http.StatusOK, models.Success(gin.H{"deleted": true}))
}

// parseIDParam is shared by the image and taxonomy handlers.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, errs.Validation(name, "invalid id"))
		return uuid.Nil, false
	}
	return id, true
}
