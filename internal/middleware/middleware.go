package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/gather/internal/helpers"
	"github.com/joshua-takyi/gather/internal/models"
	"github.com/joshua-takyi/gather/internal/services"
)

const (
	RequestIDKey = "request_id"
	IdentityKey  = "identity"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get(RequestIDKey)

		attrs := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if identity, ok := GetIdentity(c); ok {
			attrs = append(attrs, "user_id", identity.UserID.Hex())
		}
		logger.Info("HTTP Request", attrs...)
	}
}

// ErrorHandler turns panics into the generic server error envelope. Details
// are logged, never returned.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				requestID, _ := c.Get(RequestIDKey)
				logger.Error("Panic recovered",
					"request_id", requestID,
					"error", fmt.Sprint(rec),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse("Server error"))
			}
		}()

		c.Next()
	}
}

// AuthMiddleware requires a valid bearer token and stores the caller's
// Identity on the context.
func AuthMiddleware(authService *services.AuthService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := authService.Verify(c.GetHeader("Authorization"))
		if err != nil {
			var appErr *models.AppError
			msg := "Unauthorized"
			if errors.As(err, &appErr) {
				msg = appErr.Message
			}
			logger.Debug("Authentication failed", "path", c.Request.URL.Path, "reason", msg)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(msg))
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

func GetIdentity(c *gin.Context) (*helpers.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*helpers.Identity)
	return identity, ok
}
