package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_aggregator/internal/core/ports/services"
	"github.com/SscSPs/ledger_aggregator/internal/dto"
	"github.com/SscSPs/ledger_aggregator/internal/middleware"
	"github.com/gin-gonic/gin"
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

// RegisterReportingRoutes registers routes related to financial reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	// Routes for reports are nested under a specific workplace
	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/cash-flow", h.getCashFlow)
		reportingGroup.GET("/compliance/:scheme", h.getComplianceScore)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Lists debit and credit totals per account for posted entries in the period
// @Tags reports
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param fromDate query string true "Start date, inclusive (YYYY-MM-DD)"
// @Param toDate query string true "End date, inclusive (YYYY-MM-DD)"
// @Param category query string false "Restrict to one account category" Enums(ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (User not authorized)"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID, userID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	var query dto.TrialBalanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid trial balance query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	period, err := query.Period()
	if err != nil {
		respondError(c, logger, err, "generate trial balance report")
		return
	}

	logger = logger.With(
		slog.String("user_id", userID),
		slog.String("workplace_id", workplaceID),
		slog.String("fromDate", query.FromDate),
		slog.String("toDate", query.ToDate),
	)
	logger.Info("Received request to generate trial balance report")

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), workplaceID, period, query.CategoryFilter(), userID)
	if err != nil {
		respondError(c, logger, err, "generate trial balance report")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet
// @Description Generates the statement of financial position as of a date, inclusive
// @Tags reports
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param asOf query string true "Report date (YYYY-MM-DD)"
// @Param detail query string false "Detail level" Enums(summary, detailed) default(summary)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (User not authorized)"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID, userID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	var query dto.BalanceSheetQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid balance sheet query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	asOf, err := query.AsOfDate()
	if err != nil {
		respondError(c, logger, err, "generate balance sheet")
		return
	}

	logger = logger.With(
		slog.String("user_id", userID),
		slog.String("workplace_id", workplaceID),
		slog.String("asOf", query.AsOf),
	)
	logger.Info("Received request to generate balance sheet")

	bs, err := h.reportingService.BalanceSheet(c.Request.Context(), workplaceID, asOf, query.DetailLevel(), userID)
	if err != nil {
		respondError(c, logger, err, "generate balance sheet")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(bs))
}

// getIncomeStatement godoc
// @Summary Generate income statement
// @Description Reports revenue, expenses, net income and net margin for the period
// @Tags reports
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param fromDate query string true "Start date, inclusive (YYYY-MM-DD)"
// @Param toDate query string true "End date, inclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (User not authorized)"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID, userID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	var query dto.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid income statement query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	period, err := query.Period()
	if err != nil {
		respondError(c, logger, err, "generate income statement")
		return
	}

	is, err := h.reportingService.IncomeStatement(c.Request.Context(), workplaceID, period, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("workplace_id", workplaceID)), err, "generate income statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(is))
}

// getCashFlow godoc
// @Summary Generate cash flow summary
// @Description Attributes net cash movement to operating, investing and financing activities
// @Tags reports
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param fromDate query string true "Start date, inclusive (YYYY-MM-DD)"
// @Param toDate query string true "End date, inclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} map[string]string "Invalid input or no activity mappings"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (User not authorized)"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID, userID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	var query dto.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid cash flow query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	period, err := query.Period()
	if err != nil {
		respondError(c, logger, err, "generate cash flow summary")
		return
	}

	cf, err := h.reportingService.CashFlow(c.Request.Context(), workplaceID, period, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("workplace_id", workplaceID)), err, "generate cash flow summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashFlowResponse(cf))
}

// getComplianceScore godoc
// @Summary Compute compliance score
// @Description Scores the period's journal entries against a configured compliance scheme
// @Tags reports
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param scheme path string true "Compliance scheme, e.g. gaap, sox, bir, ifrs"
// @Param fromDate query string true "Start date, inclusive (YYYY-MM-DD)"
// @Param toDate query string true "End date, inclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.ComplianceScoreResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown scheme"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (User not authorized)"
// @Failure 500 {object} map[string]string "Failed to compute score"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/reports/compliance/{scheme} [get]
func (h *reportingHandler) getComplianceScore(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID, userID, ok := requestScope(c, logger)
	if !ok {
		return
	}
	scheme := c.Param("scheme")

	var query dto.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid compliance query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	period, err := query.Period()
	if err != nil {
		respondError(c, logger, err, "compute compliance score")
		return
	}

	logger = logger.With(
		slog.String("user_id", userID),
		slog.String("workplace_id", workplaceID),
		slog.String("scheme", scheme),
	)

	result, err := h.reportingService.ComplianceScore(c.Request.Context(), workplaceID, scheme, period, userID)
	if err != nil {
		respondError(c, logger, err, "compute compliance score")
		return
	}

	logger.Info("Compliance score computed", slog.Int("score", result.Score))
	c.JSON(http.StatusOK, dto.ToComplianceScoreResponse(result))
}
