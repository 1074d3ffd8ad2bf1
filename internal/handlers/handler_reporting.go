package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zivabsuite/contable/internal/apperrors"
	"github.com/zivabsuite/contable/internal/core/domain"
	portssvc "github.com/zivabsuite/contable/internal/core/ports/services"
	"github.com/zivabsuite/contable/internal/dto"
	"github.com/zivabsuite/contable/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	// Routes for reports are nested under a specific company
	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/general-ledger", h.getGeneralLedger)
		reportingGroup.GET("/cash-flow", h.getCashFlow)
	}
}

// respondReportError maps service errors shared by the report endpoints to
// HTTP responses. Returns true if it handled the error.
func respondReportError(c *gin.Context, logger *slog.Logger, err error) bool {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("User forbidden to access report")
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this report"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Company not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
	case errors.Is(err, domain.ErrIntegrityViolation):
		logger.Error("Ledger integrity violation detected", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ledger integrity violation detected; report aborted"})
	default:
		return false
	}
	return true
}

// parsePeriod extracts the from/to date range, defaulting to the current month.
func parsePeriod(c *gin.Context, logger *slog.Logger) (time.Time, time.Time, bool) {
	now := time.Now()
	firstDayOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	fromStr := c.DefaultQuery("from", firstDayOfMonth.Format("2006-01-02"))
	from, err := dto.ParseReportDate(fromStr)
	if err != nil {
		logger.Warn("Invalid from date format", slog.String("from", fromStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date format. Use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}

	toStr := c.DefaultQuery("to", now.Format("2006-01-02"))
	to, err := dto.ParseReportDate(toStr)
	if err != nil {
		logger.Warn("Invalid to date format", slog.String("to", toStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date format. Use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}

	if from.After(to) {
		logger.Warn("Invalid date range", slog.String("from", fromStr), slog.String("to", toStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be before or equal to to"})
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Generates a trial balance over posted transactions as of a specific date
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /companies/{company_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := dto.ParseReportDate(asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(
		slog.String("user_id", userID),
		slog.String("company_id", companyID),
		slog.String("asOf", asOfStr),
	)
	logger.Info("Received request to generate trial balance report")

	trialBalance, err := h.reportingService.TrialBalance(c.Request.Context(), companyID, asOf, userID)
	if err != nil {
		if !respondReportError(c, logger, err) {
			logger.Error("Failed to generate trial balance report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trial balance report"})
		}
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(trialBalance.Rows)))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(trialBalance))
}

// getIncomeStatement godoc
// @Summary Generate income statement report
// @Description Generates the profit and loss report for a specific period
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param from query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param to query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /companies/{company_id}/reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	from, to, ok := parsePeriod(c, logger)
	if !ok {
		return
	}

	logger = logger.With(
		slog.String("user_id", userID),
		slog.String("company_id", companyID),
	)
	logger.Info("Received request to generate income statement report")

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), companyID, from, to, userID)
	if err != nil {
		if !respondReportError(c, logger, err) {
			logger.Error("Failed to generate income statement report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate income statement report"})
		}
		return
	}

	logger.Info("Income statement report generated successfully",
		slog.Int("revenue_accounts", len(report.RevenueDetail)),
		slog.Int("expense_accounts", len(report.ExpenseDetail)))
	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Generates the statement of financial position as of a specific date, folding the period result into equity
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /companies/{company_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := dto.ParseReportDate(asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(
		slog.String("user_id", userID),
		slog.String("company_id", companyID),
		slog.String("asOf", asOfStr),
	)
	logger.Info("Received request to generate balance sheet report")

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), companyID, asOf, userID)
	if err != nil {
		if !respondReportError(c, logger, err) {
			logger.Error("Failed to generate balance sheet report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate balance sheet report"})
		}
		return
	}

	logger.Info("Balance sheet report generated successfully",
		slog.Int("asset_accounts", len(report.Assets)),
		slog.Int("liability_accounts", len(report.Liabilities)),
		slog.Int("equity_accounts", len(report.Equity)))
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getGeneralLedger godoc
// @Summary Generate general ledger report
// @Description Generates per-account movement detail with running balances for a period
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param from query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param to query string false "End date (YYYY-MM-DD)" default(current date)
// @Param accountID query string false "Restrict to a single account"
// @Success 200 {object} dto.GeneralLedgerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /companies/{company_id}/reports/general-ledger [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	from, to, ok := parsePeriod(c, logger)
	if !ok {
		return
	}

	var accountID *string
	if v := c.Query("accountID"); v != "" {
		accountID = &v
	}

	logger = logger.With(
		slog.String("user_id", userID),
		slog.String("company_id", companyID),
	)
	logger.Info("Received request to generate general ledger report")

	report, err := h.reportingService.GeneralLedger(c.Request.Context(), companyID, from, to, accountID, userID)
	if err != nil {
		if !respondReportError(c, logger, err) {
			logger.Error("Failed to generate general ledger report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate general ledger report"})
		}
		return
	}

	logger.Info("General ledger report generated successfully", slog.Int("account_count", len(report.Accounts)))
	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(report))
}

// getCashFlow godoc
// @Summary Generate cash flow report
// @Description Reconciles cash account movement over a period: opening + inflows - outflows = closing
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param from query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param to query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /companies/{company_id}/reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user required"})
		return
	}

	from, to, ok := parsePeriod(c, logger)
	if !ok {
		return
	}

	logger = logger.With(
		slog.String("user_id", userID),
		slog.String("company_id", companyID),
	)
	logger.Info("Received request to generate cash flow report")

	report, err := h.reportingService.CashFlow(c.Request.Context(), companyID, from, to, userID)
	if err != nil {
		if !respondReportError(c, logger, err) {
			logger.Error("Failed to generate cash flow report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate cash flow report"})
		}
		return
	}

	logger.Info("Cash flow report generated successfully",
		slog.Int("cash_accounts", len(report.CashAccounts)),
		slog.Int("inflow_count", len(report.Inflows)),
		slog.Int("outflow_count", len(report.Outflows)))
	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report))
}
