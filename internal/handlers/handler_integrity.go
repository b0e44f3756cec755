package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ledger_aggregator/internal/core/ports/services"
	"github.com/SscSPs/ledger_aggregator/internal/dto"
	"github.com/SscSPs/ledger_aggregator/internal/middleware"
	"github.com/gin-gonic/gin"
)

type integrityHandler struct {
	checks portssvc.IntegrityRequestSvc
	now    func() time.Time
}

// RegisterIntegrityRoutes registers the on-demand integrity check route
func RegisterIntegrityRoutes(rg *gin.RouterGroup, checks portssvc.IntegrityRequestSvc) {
	h := &integrityHandler{checks: checks, now: time.Now}
	rg.POST("/integrity-checks", h.requestIntegrityCheck)
}

// requestIntegrityCheck godoc
// @Summary Request a ledger integrity check
// @Description Queues a recomputation of the trial balance and balance sheet of the workplace as of a date. Requires the ADMIN role.
// @Tags integrity
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param request body dto.IntegrityCheckRequest false "Check date, defaults to today"
// @Success 202 {object} dto.IntegrityCheckResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (User not authorized)"
// @Failure 503 {object} map[string]string "Task queue unavailable"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/integrity-checks [post]
func (h *integrityHandler) requestIntegrityCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID, userID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	var req dto.IntegrityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Invalid integrity check request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	asOf, err := req.AsOfDate(h.now())
	if err != nil {
		respondError(c, logger, err, "request integrity check")
		return
	}

	queued, err := h.checks.RequestIntegrityCheck(c.Request.Context(), workplaceID, asOf, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("workplace_id", workplaceID)), err, "request integrity check")
		return
	}

	c.JSON(http.StatusAccepted, dto.ToIntegrityCheckResponse(queued))
}
