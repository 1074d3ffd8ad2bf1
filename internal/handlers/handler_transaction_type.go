package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zivabsuite/contable/internal/apperrors"
	portssvc "github.com/zivabsuite/contable/internal/core/ports/services"
	"github.com/zivabsuite/contable/internal/dto"
	"github.com/zivabsuite/contable/internal/middleware"
)

// transactionTypeHandler handles HTTP requests related to folio series.
type transactionTypeHandler struct {
	typeService portssvc.TransactionTypeSvcFacade
}

// newTransactionTypeHandler creates a new transactionTypeHandler.
func newTransactionTypeHandler(ts portssvc.TransactionTypeSvcFacade) *transactionTypeHandler {
	return &transactionTypeHandler{
		typeService: ts,
	}
}

// registerTransactionTypeRoutes registers folio series routes nested under a specific company.
func registerTransactionTypeRoutes(rg *gin.RouterGroup, typeService portssvc.TransactionTypeSvcFacade) {
	h := newTransactionTypeHandler(typeService)

	types := rg.Group("/transaction-types")
	{
		types.POST("", h.createTransactionType)
		types.GET("", h.listTransactionTypes)
		types.GET("/:type_id", h.getTransactionType)
		types.PUT("/:type_id", h.updateTransactionType)
	}
}

// createTransactionType godoc
// @Summary Create a folio series
// @Description Creates a custom folio series for the company's transactions.
// @Tags transaction-types
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   type body dto.CreateTransactionTypeRequest true "Folio series details"
// @Success 201 {object} dto.TransactionTypeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 409 {object} map[string]string "Series code already exists"
// @Failure 500 {object} map[string]string "Failed to create folio series"
// @Router /companies/{company_id}/transaction-types [post]
func (h *transactionTypeHandler) createTransactionType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateTransactionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransactionType", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(
		slog.String("creator_user_id", creatorUserID),
		slog.String("company_id", companyID),
		slog.String("type_code", req.Code),
	)

	tt, err := h.typeService.CreateTransactionType(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to create folio series")
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to create folio series in this company"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Series code already exists")
			c.JSON(http.StatusConflict, gin.H{"error": "A folio series with this code already exists in the company"})
		} else {
			logger.Error("Failed to create folio series in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create folio series"})
		}
		return
	}

	logger.Info("Folio series created successfully", slog.String("type_id", tt.TransactionTypeID))
	c.JSON(http.StatusCreated, dto.ToTransactionTypeResponse(tt))
}

// listTransactionTypes godoc
// @Summary List folio series of a company
// @Description Retrieves the company's folio series ordered by code, built-in series included.
// @Tags transaction-types
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {array} dto.TransactionTypeResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to list folio series"
// @Router /companies/{company_id}/transaction-types [get]
func (h *transactionTypeHandler) listTransactionTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	tts, err := h.typeService.ListTransactionTypes(c.Request.Context(), companyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to list folio series", slog.String("company_id", companyID))
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to view this company's folio series"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company not found", slog.String("company_id", companyID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			logger.Error("Failed to list folio series from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list folio series"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionTypesResponse(tts))
}

// getTransactionType godoc
// @Summary Get folio series details
// @Description Retrieves a single folio series of the company.
// @Tags transaction-types
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   type_id path string true "Folio series ID"
// @Success 200 {object} dto.TransactionTypeResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Folio series not found"
// @Failure 500 {object} map[string]string "Failed to retrieve folio series"
// @Router /companies/{company_id}/transaction-types/{type_id} [get]
func (h *transactionTypeHandler) getTransactionType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	typeID := c.Param("type_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	tt, err := h.typeService.GetTransactionTypeByID(c.Request.Context(), companyID, typeID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to view folio series", slog.String("type_id", typeID))
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to view this folio series"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Folio series not found", slog.String("type_id", typeID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Folio series not found"})
		} else {
			logger.Error("Failed to get folio series from service", slog.String("error", err.Error()), slog.String("type_id", typeID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve folio series"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionTypeResponse(tt))
}

// updateTransactionType godoc
// @Summary Update a folio series
// @Description Updates the name, description or flags of a folio series. Numbering fields are frozen.
// @Tags transaction-types
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   type_id path string true "Folio series ID"
// @Param   type body dto.UpdateTransactionTypeRequest true "Fields to update"
// @Success 200 {object} dto.TransactionTypeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Folio series not found"
// @Failure 500 {object} map[string]string "Failed to update folio series"
// @Router /companies/{company_id}/transaction-types/{type_id} [put]
func (h *transactionTypeHandler) updateTransactionType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	typeID := c.Param("type_id")

	var req dto.UpdateTransactionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransactionType", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("type_id", typeID))

	tt, err := h.typeService.UpdateTransactionType(c.Request.Context(), companyID, typeID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to update folio series")
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to update this folio series"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Folio series not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Folio series not found"})
		} else {
			logger.Error("Failed to update folio series in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update folio series"})
		}
		return
	}

	logger.Info("Folio series updated successfully")
	c.JSON(http.StatusOK, dto.ToTransactionTypeResponse(tt))
}
