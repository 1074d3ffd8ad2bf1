package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zivabsuite/contable/internal/apperrors"
	"github.com/zivabsuite/contable/internal/core/domain"
	portssvc "github.com/zivabsuite/contable/internal/core/ports/services"
	"github.com/zivabsuite/contable/internal/core/services"
	"github.com/zivabsuite/contable/internal/dto"
	"github.com/zivabsuite/contable/internal/middleware"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers transaction routes nested under a specific company.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transaction_id", h.getTransaction)
		transactions.PUT("/:transaction_id", h.updateTransaction)

		transactions.POST("/:transaction_id/movements", h.addMovement)
		transactions.DELETE("/:transaction_id/movements/:movement_id", h.removeMovement)

		// Lifecycle transitions
		transactions.POST("/:transaction_id/validate", h.validateTransaction)
		transactions.POST("/:transaction_id/post", h.postTransaction)
		transactions.POST("/:transaction_id/cancel", h.cancelTransaction)
	}
}

// respondTransactionError maps service errors shared by the transaction
// endpoints to HTTP responses. Returns true if it handled the error.
func respondTransactionError(c *gin.Context, logger *slog.Logger, err error) bool {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("User forbidden for transaction operation")
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this operation"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Transaction not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	case errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, services.ErrTransactionNotEditable):
		logger.Warn("Invalid lifecycle operation", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnbalancedTransaction),
		errors.Is(err, domain.ErrInsufficientMovements),
		errors.Is(err, domain.ErrInvalidMovement),
		errors.Is(err, domain.ErrCrossCompanyReference),
		errors.Is(err, services.ErrAccountNotPostable),
		errors.Is(err, services.ErrCostCenterNotUsable),
		errors.Is(err, services.ErrProjectNotUsable),
		errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Transaction validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		return false
	}
	return true
}

// createTransaction godoc
// @Summary Create a draft transaction
// @Description Creates a draft transaction with its movements, assigning the next folio of the applicable series.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   transaction body dto.CreateTransactionRequest true "Transaction and movements"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 422 {object} map[string]string "Movement rules violated"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Router /companies/{company_id}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
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
		slog.String("kind", string(req.Kind)),
	)

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		if !respondTransactionError(c, logger, err) {
			logger.Error("Failed to create transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		}
		return
	}

	logger.Info("Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("folio", txn.Folio))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions of a company
// @Description Retrieves a paginated list of transactions, newest first, with optional status, kind and date filters.
// @Tags transactions
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination cursor from a previous page"
// @Param   status query string false "Filter by status (DRAFT, VALIDATED, POSTED, CANCELLED)"
// @Param   kind query string false "Filter by kind (INCOME, DISBURSEMENT, GENERAL, ADJUSTMENT)"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /companies/{company_id}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	response, err := h.transactionService.ListTransactions(c.Request.Context(), companyID, userID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid listing parameters", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to list transactions", slog.String("company_id", companyID))
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to view this company's transactions"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company not found", slog.String("company_id", companyID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			logger.Error("Failed to list transactions from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// getTransaction godoc
// @Summary Get a transaction with its movements
// @Description Retrieves a transaction and all of its movements.
// @Tags transactions
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Router /companies/{company_id}/transactions/{transaction_id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	transactionID := c.Param("transaction_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID))

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), companyID, transactionID, userID)
	if err != nil {
		if !respondTransactionError(c, logger, err) {
			logger.Error("Failed to get transaction from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a draft transaction header
// @Description Updates the date or memo of a draft transaction. Non-draft transactions are frozen.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   transaction_id path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not editable"
// @Failure 500 {object} map[string]string "Failed to update transaction"
// @Router /companies/{company_id}/transactions/{transaction_id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	transactionID := c.Param("transaction_id")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("transaction_id", transactionID))

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), companyID, transactionID, req, userID)
	if err != nil {
		if !respondTransactionError(c, logger, err) {
			logger.Error("Failed to update transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		}
		return
	}

	logger.Info("Transaction updated successfully")
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// addMovement godoc
// @Summary Add a movement to a draft transaction
// @Description Appends a debit or credit line to a draft and recomputes the header totals.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   transaction_id path string true "Transaction ID"
// @Param   movement body dto.AddMovementRequest true "Movement line"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not editable"
// @Failure 422 {object} map[string]string "Movement rules violated"
// @Failure 500 {object} map[string]string "Failed to add movement"
// @Router /companies/{company_id}/transactions/{transaction_id}/movements [post]
func (h *transactionHandler) addMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	transactionID := c.Param("transaction_id")

	var req dto.AddMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("transaction_id", transactionID))

	txn, err := h.transactionService.AddMovement(c.Request.Context(), companyID, transactionID, req, userID)
	if err != nil {
		if !respondTransactionError(c, logger, err) {
			logger.Error("Failed to add movement in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add movement"})
		}
		return
	}

	logger.Info("Movement added successfully")
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// removeMovement godoc
// @Summary Remove a movement from a draft transaction
// @Description Soft-deletes a movement line from a draft and recomputes the header totals.
// @Tags transactions
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   transaction_id path string true "Transaction ID"
// @Param   movement_id path string true "Movement ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction or movement not found"
// @Failure 409 {object} map[string]string "Transaction is not editable"
// @Failure 500 {object} map[string]string "Failed to remove movement"
// @Router /companies/{company_id}/transactions/{transaction_id}/movements/{movement_id} [delete]
func (h *transactionHandler) removeMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	transactionID := c.Param("transaction_id")
	movementID := c.Param("movement_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(
		slog.String("user_id", userID),
		slog.String("transaction_id", transactionID),
		slog.String("movement_id", movementID),
	)

	txn, err := h.transactionService.RemoveMovement(c.Request.Context(), companyID, transactionID, movementID, userID)
	if err != nil {
		if !respondTransactionError(c, logger, err) {
			logger.Error("Failed to remove movement in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove movement"})
		}
		return
	}

	logger.Info("Movement removed successfully")
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// validateTransaction godoc
// @Summary Validate a draft transaction
// @Description Advances a DRAFT transaction to VALIDATED after the balance check.
// @Tags transactions
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Invalid state transition"
// @Failure 422 {object} map[string]string "Transaction does not balance"
// @Failure 500 {object} map[string]string "Failed to validate transaction"
// @Router /companies/{company_id}/transactions/{transaction_id}/validate [post]
func (h *transactionHandler) validateTransaction(c *gin.Context) {
	h.lifecycle(c, "validate", h.transactionService.ValidateTransaction)
}

// postTransaction godoc
// @Summary Post a validated transaction
// @Description Advances a VALIDATED transaction to POSTED. Posted transactions feed every report.
// @Tags transactions
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Invalid state transition"
// @Failure 500 {object} map[string]string "Failed to post transaction"
// @Router /companies/{company_id}/transactions/{transaction_id}/post [post]
func (h *transactionHandler) postTransaction(c *gin.Context) {
	h.lifecycle(c, "post", h.transactionService.PostTransaction)
}

// cancelTransaction godoc
// @Summary Cancel a posted transaction
// @Description Advances a POSTED transaction to CANCELLED. Cancelled transactions drop out of reports but are retained.
// @Tags transactions
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Invalid state transition"
// @Failure 500 {object} map[string]string "Failed to cancel transaction"
// @Router /companies/{company_id}/transactions/{transaction_id}/cancel [post]
func (h *transactionHandler) cancelTransaction(c *gin.Context) {
	h.lifecycle(c, "cancel", h.transactionService.CancelTransaction)
}

type lifecycleFunc func(ctx context.Context, companyID string, transactionID string, requestingUserID string) (*domain.Transaction, error)

func (h *transactionHandler) lifecycle(c *gin.Context, operation string, fn lifecycleFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	transactionID := c.Param("transaction_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	logger = logger.With(
		slog.String("user_id", userID),
		slog.String("transaction_id", transactionID),
		slog.String("operation", operation),
	)

	txn, err := fn(c.Request.Context(), companyID, transactionID, userID)
	if err != nil {
		if !respondTransactionError(c, logger, err) {
			logger.Error("Lifecycle operation failed in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + operation + " transaction"})
		}
		return
	}

	logger.Info("Lifecycle operation completed", slog.String("status", string(txn.Status)))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
