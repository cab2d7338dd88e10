package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
	"github.com/SscSPs/pension_management_app/internal/core/contributions"
	"github.com/SscSPs/pension_management_app/internal/middleware"
)

// ErrorResponse is the generic error body returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RejectionResponse is returned when a contribution is not admitted.
// Error carries the human-readable message and Reason the machine-readable kind.
type RejectionResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// respondError maps service errors to HTTP responses. Unexpected errors are logged
// and reported with the fallback message.
func respondError(c *gin.Context, err error, fallback string) {
	var rejection *contributions.Rejection
	if errors.As(err, &rejection) {
		status := http.StatusBadRequest
		if errors.Is(rejection, apperrors.ErrDuplicate) {
			status = http.StatusConflict
		}
		c.JSON(status, RejectionResponse{Error: rejection.Message, Reason: string(rejection.Kind)})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		middleware.GetLoggerFromCtx(c.Request.Context()).Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// requireUserID reads the authenticated user ID, aborting with 401 when it is missing.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
