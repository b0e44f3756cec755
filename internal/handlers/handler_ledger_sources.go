package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_aggregator/internal/core/ports/services"
	"github.com/SscSPs/ledger_aggregator/internal/dto"
	"github.com/SscSPs/ledger_aggregator/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ledgerSourceHandler struct {
	sourceService portssvc.LedgerSourceService
}

// RegisterLedgerSourceRoutes registers the loan and application listing route
func RegisterLedgerSourceRoutes(rg *gin.RouterGroup, sourceService portssvc.LedgerSourceService) {
	h := &ledgerSourceHandler{sourceService: sourceService}
	rg.GET("/ledger-sources", h.listLedgerSources)
}

// listLedgerSources godoc
// @Summary List ledger sources
// @Description Lists loans and loan applications of a workplace, newest first, with token-based pagination
// @Tags ledger-sources
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param limit query int false "Page size" default(20) minimum(1) maximum(100)
// @Param nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListLedgerSourcesResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (User not authorized)"
// @Failure 500 {object} map[string]string "Failed to list ledger sources"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/ledger-sources [get]
func (h *ledgerSourceHandler) listLedgerSources(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID, userID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	var params dto.ListLedgerSourcesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid ledger source query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, nextToken, err := h.sourceService.ListSources(c.Request.Context(), workplaceID, params.Limit, params.NextToken, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("workplace_id", workplaceID)), err, "list ledger sources")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerSourcesResponse(records, nextToken))
}
