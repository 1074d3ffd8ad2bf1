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

// companyHandler handles HTTP requests related to companies and memberships.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// newCompanyHandler creates a new companyHandler.
func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{
		companyService: cs,
	}
}

// registerCompanyRoutes registers routes related to companies and their members.
// It also registers ACCOUNT, TRANSACTION, TRANSACTION TYPE, COST CENTER and
// REPORT routes nested under a specific company.
func registerCompanyRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newCompanyHandler(services.Company)

	// Routes for managing companies themselves
	companiesTopLevel := rg.Group("/companies")
	{
		companiesTopLevel.POST("", h.createCompany)
		companiesTopLevel.GET("", h.listUserCompanies) // List companies the calling user belongs to
	}

	// Routes specific to a single company (identified by company_id)
	companySpecific := rg.Group("/companies/:company_id")
	{
		companySpecific.GET("", h.getCompany)
		companySpecific.PUT("", h.updateCompany)
		companySpecific.DELETE("", h.deactivateCompany)

		// Manage users within a company
		companyUsers := companySpecific.Group("/users")
		{
			companyUsers.POST("", h.addUserToCompany)
			companyUsers.PUT("/:user_id", h.updateUserRole)
			companyUsers.DELETE("/:user_id", h.removeUserFromCompany)
		}

		registerAccountRoutes(companySpecific, services.Account)
		registerTransactionRoutes(companySpecific, services.Transaction)
		registerTransactionTypeRoutes(companySpecific, services.TransactionType)
		registerCostCenterRoutes(companySpecific, services.CostCenter)
		registerReportingRoutes(companySpecific, services.Reporting)
	}
}

// createCompany godoc
// @Summary Create a new company
// @Description Creates a new company and assigns the creator as owner.
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Company with this RFC already exists"
// @Failure 500 {object} map[string]string "Failed to create company"
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create company", slog.String("company_name", req.Name))

	newCompany, err := h.companyService.CreateCompany(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRFC) {
			logger.Warn("Invalid RFC for new company", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate RFC for new company", slog.String("rfc", req.RFC))
			c.JSON(http.StatusConflict, gin.H{"error": "A company with this RFC already exists"})
		} else {
			logger.Error("Failed to create company in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company"})
		}
		return
	}

	logger.Info("Company created successfully", slog.String("company_id", newCompany.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(newCompany))
}

// listUserCompanies godoc
// @Summary List companies for current user
// @Description Retrieves a list of companies the acting user belongs to.
// @Tags companies
// @Produce  json
// @Success 200 {object} dto.ListCompaniesResponse
// @Failure 500 {object} map[string]string "Failed to list companies"
// @Router /companies [get]
func (h *companyHandler) listUserCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(slog.String("user_id", userID))

	companies, err := h.companyService.ListCompanies(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list companies from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list companies"})
		return
	}

	logger.Info("Companies listed successfully", slog.Int("count", len(companies)))
	c.JSON(http.StatusOK, dto.ToListCompaniesResponse(companies))
}

// getCompany godoc
// @Summary Get company details
// @Description Retrieves a company the acting user belongs to.
// @Tags companies
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to retrieve company"
// @Router /companies/{company_id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), companyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company not found", slog.String("company_id", companyID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}
		logger.Error("Failed to get company from service", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve company"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// updateCompany godoc
// @Summary Update company details
// @Description Updates a company's name, trade name or user limit (requires admin role).
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   company body dto.UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to update company"
// @Router /companies/{company_id} [put]
func (h *companyHandler) updateCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("company_id", companyID))

	company, err := h.companyService.UpdateCompany(c.Request.Context(), companyID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to update company")
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to update this company"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else if errors.Is(err, services.ErrInvalidRFC) {
			logger.Warn("Invalid RFC for company update", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update company in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company"})
		}
		return
	}

	logger.Info("Company updated successfully")
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// deactivateCompany godoc
// @Summary Deactivate a company
// @Description Marks a company as inactive (requires owner role).
// @Tags companies
// @Param   company_id path string true "Company ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to deactivate company"
// @Router /companies/{company_id} [delete]
func (h *companyHandler) deactivateCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("company_id", companyID))

	if err := h.companyService.DeactivateCompany(c.Request.Context(), companyID, userID); err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to deactivate company")
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to deactivate this company"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			logger.Error("Failed to deactivate company in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate company"})
		}
		return
	}

	logger.Info("Company deactivated successfully")
	c.Status(http.StatusNoContent)
}

// addUserToCompany godoc
// @Summary Add a user to a company
// @Description Adds a specified user to a company with a given role (requires admin role).
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   user_details body dto.AddUserToCompanyRequest true "User ID and Role"
// @Success 201 {object} dto.UserCompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden (caller is not admin)"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 409 {object} map[string]string "User already belongs to the company"
// @Failure 500 {object} map[string]string "Failed to add user"
// @Router /companies/{company_id}/users [post]
func (h *companyHandler) addUserToCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.AddUserToCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddUserToCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(
		slog.String("requesting_user_id", requestingUserID),
		slog.String("company_id", companyID),
		slog.String("target_user_id", req.UserID),
	)

	link, err := h.companyService.AddUserToCompany(c.Request.Context(), companyID, req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to add members")
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to add users to this company"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("User already belongs to company")
			c.JSON(http.StatusConflict, gin.H{"error": "User already belongs to this company"})
		} else if errors.Is(err, services.ErrUserLimitReached) {
			logger.Warn("Company user limit reached")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to add user to company in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add user to company"})
		}
		return
	}

	logger.Info("User added to company successfully")
	c.JSON(http.StatusCreated, dto.ToUserCompanyResponse(link))
}

// updateUserRole godoc
// @Summary Change a member's role
// @Description Changes the role of a company member (requires admin role; granting OWNER requires owner).
// @Tags companies
// @Accept  json
// @Param   company_id path string true "Company ID"
// @Param   user_id path string true "User ID"
// @Param   role body dto.UpdateUserCompanyRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company or membership not found"
// @Failure 409 {object} map[string]string "Cannot demote the last owner"
// @Failure 500 {object} map[string]string "Failed to update role"
// @Router /companies/{company_id}/users/{user_id} [put]
func (h *companyHandler) updateUserRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	targetUserID := c.Param("user_id")

	var req dto.UpdateUserCompanyRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUserRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(
		slog.String("requesting_user_id", requestingUserID),
		slog.String("company_id", companyID),
		slog.String("target_user_id", targetUserID),
	)

	err := h.companyService.UpdateUserRole(c.Request.Context(), companyID, targetUserID, req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to change roles")
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to change roles in this company"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company or membership not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company or membership not found"})
		} else if errors.Is(err, services.ErrLastOwner) {
			logger.Warn("Attempt to demote the last owner")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update role in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		}
		return
	}

	logger.Info("Role updated successfully", slog.String("new_role", string(req.Role)))
	c.Status(http.StatusNoContent)
}

// removeUserFromCompany godoc
// @Summary Remove a user from a company
// @Description Removes a member from a company (requires admin role). The last owner cannot be removed.
// @Tags companies
// @Param   company_id path string true "Company ID"
// @Param   user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company or membership not found"
// @Failure 409 {object} map[string]string "Cannot remove the last owner"
// @Failure 500 {object} map[string]string "Failed to remove user"
// @Router /companies/{company_id}/users/{user_id} [delete]
func (h *companyHandler) removeUserFromCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	targetUserID := c.Param("user_id")

	requestingUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(
		slog.String("requesting_user_id", requestingUserID),
		slog.String("company_id", companyID),
		slog.String("target_user_id", targetUserID),
	)

	err := h.companyService.RemoveUserFromCompany(c.Request.Context(), companyID, targetUserID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to remove members")
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to remove users from this company"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company or membership not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company or membership not found"})
		} else if errors.Is(err, services.ErrLastOwner) {
			logger.Warn("Attempt to remove the last owner")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to remove user in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user from company"})
		}
		return
	}

	logger.Info("User removed from company successfully")
	c.Status(http.StatusNoContent)
}
