package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gather/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", models.NewValidationError("Title and date required"), http.StatusBadRequest, `{"success":false,"error":"Title and date required"}`},
		{"conflict", models.NewConflictError("Already joined this event"), http.StatusBadRequest, `{"success":false,"error":"Already joined this event"}`},
		{"auth", models.NewAuthError("Invalid credentials"), http.StatusUnauthorized, `{"success":false,"error":"Invalid credentials"}`},
		{"forbidden", models.NewForbiddenError("Not authorized to edit this event"), http.StatusForbidden, `{"success":false,"error":"Not authorized to edit this event"}`},
		{"not found", models.NewNotFoundError("Event not found"), http.StatusNotFound, `{"success":false,"error":"Event not found"}`},
		{"wrapped", fmt.Errorf("lookup: %w", models.NewNotFoundError("User not found")), http.StatusNotFound, `{"success":false,"error":"User not found"}`},
		{"unexpected", errors.New("connection reset by peer"), http.StatusInternalServerError, `{"success":false,"error":"Server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/events", nil)

			respondError(c, logger, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}
