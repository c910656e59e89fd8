package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshua-takyi/calendar/internal/models"
	"github.com/joshua-takyi/calendar/internal/notify"
)

type EventService struct {
	eventsRepo models.EventsRepo
	publisher  notify.Publisher
	logger     *slog.Logger
}

func NewEventService(eventsRepo models.EventsRepo, publisher notify.Publisher, logger *slog.Logger) *EventService {
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{
		eventsRepo: eventsRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (es *EventService) CreateEvent(ctx context.Context, input *models.EventInput) (*models.Event, error) {
	if err := models.ValidateEventInput(input); err != nil {
		return nil, err
	}

	event := &models.Event{}
	models.Apply(input, event)

	created, err := es.eventsRepo.SaveEvent(ctx, event)
	if err != nil {
		return nil, err
	}

	es.publish(ctx, notify.EventCreated, models.ToResponse(created))
	return created, nil
}

func (es *EventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	return es.eventsRepo.ListEvents(ctx)
}

// GetEvent returns nil without an error when the id is unknown.
func (es *EventService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	return es.eventsRepo.GetEventByID(ctx, id)
}

func (es *EventService) UpdateEvent(ctx context.Context, id int64, input *models.EventInput) (*models.Event, error) {
	if err := models.ValidateEventInput(input); err != nil {
		return nil, err
	}

	existing, err := es.eventsRepo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("event with id %d: %w", id, models.ErrNotFound)
	}

	models.Apply(input, existing)
	if err := existing.Validate(); err != nil {
		return nil, err
	}

	updated, err := es.eventsRepo.SaveEvent(ctx, existing)
	if err != nil {
		return nil, err
	}

	es.publish(ctx, notify.EventUpdated, models.ToResponse(updated))
	return updated, nil
}

// DeleteEvent succeeds for ids that do not exist.
func (es *EventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := es.eventsRepo.DeleteEvent(ctx, id); err != nil {
		return err
	}

	es.publish(ctx, notify.EventDeleted, map[string]int64{"id": id})
	return nil
}

func (es *EventService) publish(ctx context.Context, routingKey string, data interface{}) {
	if err := es.publisher.Publish(ctx, routingKey, data); err != nil {
		es.logger.Warn("Failed to publish event notification",
			"routing_key", routingKey,
			"error", err,
		)
	}
}
