package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error to an HTTP status and JSON body.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	var inputErr *apperrors.InputError
	switch {
	case errors.As(err, &inputErr):
		logger.Warn("Invalid input for "+action, slog.String("field", inputErr.Field), slog.String("reason", inputErr.Reason))
		c.JSON(http.StatusBadRequest, gin.H{"error": inputErr.Error(), "field": inputErr.Field})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed for "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("User forbidden to " + action)
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this workplace"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found for " + action)
		c.JSON(http.StatusNotFound, gin.H{"error": "Workplace not found"})
	case errors.Is(err, apperrors.ErrUnavailable):
		logger.Error("Cannot "+action+", dependency unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable, try again later"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Warn("Request ended before "+action+" completed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request cancelled"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// requestScope extracts the workplace and user of a workplace-scoped request,
// writing the error response itself when either is missing.
func requestScope(c *gin.Context, logger *slog.Logger) (string, string, bool) {
	workplaceID := c.Param("workplace_id")
	if workplaceID == "" {
		logger.Error("Workplace ID missing from path")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Workplace ID required in path"})
		return "", "", false
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return workplaceID, userID, true
}
