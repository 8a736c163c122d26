package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gather/internal/container"
	"github.com/joshua-takyi/gather/internal/handlers"
	"github.com/joshua-takyi/gather/internal/metrics"
	"github.com/joshua-takyi/gather/internal/middleware"
	"github.com/joshua-takyi/gather/internal/models"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(metrics.Middleware())
	r.Use(middleware.ErrorHandler(container.Logger))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger := container.Logger
	requireAuth := middleware.AuthMiddleware(container.AuthService, logger)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "gather-api",
			})
		})
	}

	authRoutes := api.Group("/auth")
	authRoutes.Use(middleware.RateLimit(container.Config.AuthRatePerMinute))
	{
		authRoutes.POST("/signup", handlers.Signup(container.AuthService, logger))
		authRoutes.POST("/login", handlers.Login(container.AuthService, logger))
	}

	userRoutes := api.Group("/users", requireAuth)
	{
		userRoutes.GET("/me", handlers.Me(container.AuthService, logger))
	}

	eventRoutes := api.Group("/events")
	{
		eventRoutes.GET("", handlers.ListEvents(container.EventService, logger))
		// must stay ahead of /:id
		eventRoutes.GET("/my", requireAuth, handlers.ListMyEvents(container.EventService, logger))
		eventRoutes.GET("/:id", handlers.GetEvent(container.EventService, logger))

		eventRoutes.POST("", requireAuth, handlers.CreateEvent(container.EventService, logger))
		eventRoutes.PUT("/:id", requireAuth, handlers.UpdateEvent(container.EventService, logger))
		eventRoutes.DELETE("/:id", requireAuth, handlers.DeleteEvent(container.EventService, logger))
		eventRoutes.POST("/:id/join", requireAuth, handlers.JoinEvent(container.EventService, logger))
		eventRoutes.POST("/:id/leave", requireAuth, handlers.LeaveEvent(container.EventService, logger))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse("Route not found"))
	})

	return r
}
