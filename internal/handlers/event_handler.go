package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gather/internal/helpers"
	"github.com/joshua-takyi/gather/internal/metrics"
	"github.com/joshua-takyi/gather/internal/middleware"
	"github.com/joshua-takyi/gather/internal/models"
	"github.com/joshua-takyi/gather/internal/services"
)

func ListEvents(es *services.EventService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := es.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}

// ListMyEvents returns the events owned by the caller.
func ListMyEvents(es *services.EventService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}

		events, err := es.ListMine(c.Request.Context(), identity)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}

func GetEvent(es *services.EventService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := es.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}

func CreateEvent(es *services.EventService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}

		var in services.CreateEventInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequestBody(c)
			return
		}

		event, err := es.Create(c.Request.Context(), identity, in)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(event, "Event created successfully"))
	}
}

func UpdateEvent(es *services.EventService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}

		var in services.UpdateEventInput
		if err := c.ShouldBindJSON(&in); err != nil {
			// ownership is decided before the body is judged
			if err := es.CheckEditable(c.Request.Context(), identity, c.Param("id")); err != nil {
				respondError(c, logger, err)
				return
			}
			badRequestBody(c)
			return
		}

		event, err := es.Update(c.Request.Context(), identity, c.Param("id"), in)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(event, "Event updated successfully"))
	}
}

func DeleteEvent(es *services.EventService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}

		if err := es.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event deleted successfully"))
	}
}

func JoinEvent(es *services.EventService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}

		event, err := es.Join(c.Request.Context(), identity, c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		metrics.MembershipChanges.WithLabelValues("join").Inc()
		c.JSON(http.StatusOK, models.SuccessResponse(event, "Joined the event successfully"))
	}
}

func LeaveEvent(es *services.EventService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}

		event, err := es.Leave(c.Request.Context(), identity, c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		metrics.MembershipChanges.WithLabelValues("leave").Inc()
		c.JSON(http.StatusOK, models.SuccessResponse(event, "Left the event successfully"))
	}
}

func requireIdentity(c *gin.Context) (*helpers.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized"))
		return nil, false
	}
	return identity, true
}
