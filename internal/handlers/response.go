package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gather/internal/middleware"
	"github.com/joshua-takyi/gather/internal/models"
)

const (
	invalidRequestBody = "Invalid request body"
	serverError        = "Server error"
)

// statusFor maps an error kind to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Typed errors carry their message to
// the client; anything else is logged and reported as a generic server error.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		c.JSON(statusFor(err), models.ErrorResponse(appErr.Message))
		return
	}

	requestID, _ := c.Get(middleware.RequestIDKey)
	logger.Error("Unexpected error",
		"request_id", requestID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse(serverError))
}

func badRequestBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse(invalidRequestBody))
}
