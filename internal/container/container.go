package container

import (
	"log/slog"

	"github.com/joshua-takyi/calendar/internal/models"
	"github.com/joshua-takyi/calendar/internal/notify"
	"github.com/joshua-takyi/calendar/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	EventService   *services.EventService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	eventsRepo models.EventsRepo,
	publisher notify.Publisher,
	allowedOrigins []string,
) *Container {
	eventService := services.NewEventService(eventsRepo, publisher, logger)

	return &Container{
		Logger:         logger,
		AllowedOrigins: allowedOrigins,
		EventService:   eventService,
	}
}
