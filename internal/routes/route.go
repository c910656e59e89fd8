package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/calendar/internal/container"
	"github.com/joshua-takyi/calendar/internal/handlers"
	"github.com/joshua-takyi/calendar/internal/middleware"
	"github.com/joshua-takyi/calendar/internal/services"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(middleware.CORS(container.AllowedOrigins))
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(middleware.Recovery(container.Logger))

	r.GET("/health", health)
	eventRoutes(r.Group("/events"), container.EventService)

	// API version 1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", health)
		eventRoutes(v1.Group("/events"), container.EventService)
	}

	return r
}

func eventRoutes(g *gin.RouterGroup, eventService *services.EventService) {
	g.POST("", handlers.CreateEvent(eventService))
	g.GET("", handlers.ListEvents(eventService))
	g.GET("/:id", handlers.GetEvent(eventService))
	g.PUT("/:id", handlers.UpdateEvent(eventService))
	g.DELETE("/:id", handlers.DeleteEvent(eventService))
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "calendar-api",
	})
}
