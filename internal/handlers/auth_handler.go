package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gather/internal/metrics"
	"github.com/joshua-takyi/gather/internal/models"
	"github.com/joshua-takyi/gather/internal/services"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Signup(as *services.AuthService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequestBody(c)
			return
		}

		user, err := as.Signup(c.Request.Context(), in)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(user, "Signup successful"))
	}
}

func Login(as *services.AuthService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequestBody(c)
			return
		}

		result, err := as.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			outcome := "error"
			if errors.Is(err, models.ErrAuth) || errors.Is(err, models.ErrValidation) {
				outcome = "invalid"
			}
			metrics.LoginAttempts.WithLabelValues(outcome).Inc()
			respondError(c, logger, err)
			return
		}

		metrics.LoginAttempts.WithLabelValues("success").Inc()
		c.JSON(http.StatusOK, models.SuccessResponse(result, "Login successful"))
	}
}
