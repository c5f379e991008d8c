package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trialworks/ediary-service/internal/services"
	"github.com/trialworks/ediary-service/internal/utils"
)

type ProjectHandler struct {
	BaseHandler
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService, logger utils.Logger) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:    NewBaseHandler(logger),
		projectService: projectService,
	}
}

// requireSuperScope rejects project-scoped keys. Project administration is
// reserved for the super key.
func (h *ProjectHandler) requireSuperScope(c *gin.Context) bool {
	if h.projectScope(c) != nil {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Project administration requires the super admin key",
		})
		return false
	}
	return true
}

// CreateProject creates a new study project and generates its admin key
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	h.LogRequest(c, "Creating project")
	if !h.requireSuperScope(c) {
		return
	}

	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// GetProject retrieves one project by id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	if !h.requireSuperScope(c) {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// ListProjects lists all projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	if !h.requireSuperScope(c) {
		return
	}

	projects, err := h.projectService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}
