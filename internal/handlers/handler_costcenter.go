package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zivabsuite/contable/internal/apperrors"
	portssvc "github.com/zivabsuite/contable/internal/core/ports/services"
	"github.com/zivabsuite/contable/internal/core/services"
	"github.com/zivabsuite/contable/internal/dto"
	"github.com/zivabsuite/contable/internal/middleware"
)

// costCenterHandler handles HTTP requests related to cost centers and projects.
type costCenterHandler struct {
	costCenterService portssvc.CostCenterSvcFacade
}

// newCostCenterHandler creates a new costCenterHandler.
func newCostCenterHandler(cs portssvc.CostCenterSvcFacade) *costCenterHandler {
	return &costCenterHandler{
		costCenterService: cs,
	}
}

// registerCostCenterRoutes registers cost center and project routes nested
// under a specific company.
func registerCostCenterRoutes(rg *gin.RouterGroup, costCenterService portssvc.CostCenterSvcFacade) {
	h := newCostCenterHandler(costCenterService)

	costCenters := rg.Group("/cost-centers")
	{
		costCenters.POST("", h.createCostCenter)
		costCenters.GET("", h.listCostCenters)
		costCenters.GET("/:cost_center_id", h.getCostCenter)
		costCenters.PUT("/:cost_center_id", h.updateCostCenter)
		costCenters.DELETE("/:cost_center_id", h.deactivateCostCenter)
	}

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:project_id", h.getProject)
		projects.PUT("/:project_id", h.updateProject)
	}
}

// respondCostCenterError maps shared service errors to HTTP responses.
// Returns true if it handled the error.
func respondCostCenterError(c *gin.Context, logger *slog.Logger, err error) bool {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("User forbidden for cost center operation")
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this operation"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate code")
		c.JSON(http.StatusConflict, gin.H{"error": "A resource with this code already exists in the company"})
	case errors.Is(err, services.ErrProjectClosed):
		logger.Warn("Project is closed", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		return false
	}
	return true
}

// createCostCenter godoc
// @Summary Create a cost center
// @Description Creates an analytic cost center, optionally under a parent.
// @Tags cost-centers
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   cost_center body dto.CreateCostCenterRequest true "Cost center details"
// @Success 201 {object} dto.CostCenterResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Code already exists"
// @Failure 500 {object} map[string]string "Failed to create cost center"
// @Router /companies/{company_id}/cost-centers [post]
func (h *costCenterHandler) createCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCostCenter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID), slog.String("company_id", companyID))

	cc, err := h.costCenterService.CreateCostCenter(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		if !respondCostCenterError(c, logger, err) {
			logger.Error("Failed to create cost center in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cost center"})
		}
		return
	}

	logger.Info("Cost center created successfully", slog.String("cost_center_id", cc.CostCenterID))
	c.JSON(http.StatusCreated, dto.ToCostCenterResponse(cc))
}

// listCostCenters godoc
// @Summary List cost centers of a company
// @Tags cost-centers
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {array} dto.CostCenterResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to list cost centers"
// @Router /companies/{company_id}/cost-centers [get]
func (h *costCenterHandler) listCostCenters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	ccs, err := h.costCenterService.ListCostCenters(c.Request.Context(), companyID, userID)
	if err != nil {
		if !respondCostCenterError(c, logger, err) {
			logger.Error("Failed to list cost centers from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cost centers"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListCostCentersResponse(ccs))
}

// getCostCenter godoc
// @Summary Get cost center details
// @Tags cost-centers
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   cost_center_id path string true "Cost center ID"
// @Success 200 {object} dto.CostCenterResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Cost center not found"
// @Failure 500 {object} map[string]string "Failed to retrieve cost center"
// @Router /companies/{company_id}/cost-centers/{cost_center_id} [get]
func (h *costCenterHandler) getCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	costCenterID := c.Param("cost_center_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	cc, err := h.costCenterService.GetCostCenterByID(c.Request.Context(), companyID, costCenterID, userID)
	if err != nil {
		if !respondCostCenterError(c, logger, err) {
			logger.Error("Failed to get cost center from service", slog.String("error", err.Error()), slog.String("cost_center_id", costCenterID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cost center"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCostCenterResponse(cc))
}

// updateCostCenter godoc
// @Summary Update a cost center
// @Tags cost-centers
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   cost_center_id path string true "Cost center ID"
// @Param   cost_center body dto.UpdateCostCenterRequest true "Fields to update"
// @Success 200 {object} dto.CostCenterResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Cost center not found"
// @Failure 500 {object} map[string]string "Failed to update cost center"
// @Router /companies/{company_id}/cost-centers/{cost_center_id} [put]
func (h *costCenterHandler) updateCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	costCenterID := c.Param("cost_center_id")

	var req dto.UpdateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCostCenter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("cost_center_id", costCenterID))

	cc, err := h.costCenterService.UpdateCostCenter(c.Request.Context(), companyID, costCenterID, req, userID)
	if err != nil {
		if !respondCostCenterError(c, logger, err) {
			logger.Error("Failed to update cost center in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cost center"})
		}
		return
	}

	logger.Info("Cost center updated successfully")
	c.JSON(http.StatusOK, dto.ToCostCenterResponse(cc))
}

// deactivateCostCenter godoc
// @Summary Deactivate a cost center
// @Tags cost-centers
// @Param   company_id path string true "Company ID"
// @Param   cost_center_id path string true "Cost center ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Cost center not found"
// @Failure 500 {object} map[string]string "Failed to deactivate cost center"
// @Router /companies/{company_id}/cost-centers/{cost_center_id} [delete]
func (h *costCenterHandler) deactivateCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	costCenterID := c.Param("cost_center_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("cost_center_id", costCenterID))

	if err := h.costCenterService.DeactivateCostCenter(c.Request.Context(), companyID, costCenterID, userID); err != nil {
		if !respondCostCenterError(c, logger, err) {
			logger.Error("Failed to deactivate cost center in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate cost center"})
		}
		return
	}

	logger.Info("Cost center deactivated successfully")
	c.Status(http.StatusNoContent)
}

// createProject godoc
// @Summary Create a project
// @Description Creates a project in PLANNING status, optionally tied to a cost center.
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Code already exists"
// @Failure 500 {object} map[string]string "Failed to create project"
// @Router /companies/{company_id}/projects [post]
func (h *costCenterHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID), slog.String("company_id", companyID))

	p, err := h.costCenterService.CreateProject(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		if !respondCostCenterError(c, logger, err) {
			logger.Error("Failed to create project in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		}
		return
	}

	logger.Info("Project created successfully", slog.String("project_id", p.ProjectID))
	c.JSON(http.StatusCreated, dto.ToProjectResponse(p))
}

// listProjects godoc
// @Summary List projects of a company
// @Tags projects
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {array} dto.ProjectResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to list projects"
// @Router /companies/{company_id}/projects [get]
func (h *costCenterHandler) listProjects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	ps, err := h.costCenterService.ListProjects(c.Request.Context(), companyID, userID)
	if err != nil {
		if !respondCostCenterError(c, logger, err) {
			logger.Error("Failed to list projects from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListProjectsResponse(ps))
}

// getProject godoc
// @Summary Get project details
// @Tags projects
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   project_id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Failed to retrieve project"
// @Router /companies/{company_id}/projects/{project_id} [get]
func (h *costCenterHandler) getProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	projectID := c.Param("project_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	p, err := h.costCenterService.GetProjectByID(c.Request.Context(), companyID, projectID, userID)
	if err != nil {
		if !respondCostCenterError(c, logger, err) {
			logger.Error("Failed to get project from service", slog.String("error", err.Error()), slog.String("project_id", projectID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(p))
}

// updateProject godoc
// @Summary Update a project
// @Description Updates a project's name, status or cost center. Closed projects cannot be reopened.
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   project_id path string true "Project ID"
// @Param   project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 409 {object} map[string]string "Project is closed"
// @Failure 500 {object} map[string]string "Failed to update project"
// @Router /companies/{company_id}/projects/{project_id} [put]
func (h *costCenterHandler) updateProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	projectID := c.Param("project_id")

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("project_id", projectID))

	p, err := h.costCenterService.UpdateProject(c.Request.Context(), companyID, projectID, req, userID)
	if err != nil {
		if !respondCostCenterError(c, logger, err) {
			logger.Error("Failed to update project in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		}
		return
	}

	logger.Info("Project updated successfully")
	c.JSON(http.StatusOK, dto.ToProjectResponse(p))
}
