package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	EventsTable = "events"
)

// ErrNotFound is returned by repos and services when an event id has no row.
var ErrNotFound = errors.New("event not found")

// Event is the stored representation of a calendar event.
// Column names double as the PostgREST/Mongo field names.
type Event struct {
	ID            int64     `gorm:"column:id;primaryKey" bson:"_id" json:"id"`
	Title         string    `gorm:"column:title;not null" bson:"title" json:"title"`
	Description   string    `gorm:"column:description" bson:"description" json:"description"`
	StartDateTime time.Time `gorm:"column:start_date_time;not null" bson:"start_date_time" json:"start_date_time"` // UTC
	EndDateTime   time.Time `gorm:"column:end_date_time;not null" bson:"end_date_time" json:"end_date_time"`       // UTC
	Location      string    `gorm:"column:location" bson:"location" json:"location"`
}

func (Event) TableName() string {
	return EventsTable
}

// Validate re-checks the entity right before it is persisted.
func (e *Event) Validate() error {
	input := EventInput{
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
	}
	if !e.StartDateTime.IsZero() {
		input.StartDateTime = &Timestamp{Time: e.StartDateTime}
	}
	if !e.EndDateTime.IsZero() {
		input.EndDateTime = &Timestamp{Time: e.EndDateTime}
	}
	return ValidateEventInput(&input)
}

// BeforeSave runs on gorm Create and Updates.
func (e *Event) BeforeSave(tx *gorm.DB) error {
	return e.Validate()
}

// EventInput is the mutate payload used by create and update. It never carries an id.
type EventInput struct {
	Title         string     `json:"title" validate:"notblank"`
	Description   string     `json:"description"`
	StartDateTime *Timestamp `json:"startDateTime" validate:"required"`
	EndDateTime   *Timestamp `json:"endDateTime" validate:"required"`
	Location      string     `json:"location"`
}

// EventResponse is what clients get back.
type EventResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartDateTime Timestamp `json:"startDateTime"`
	EndDateTime   Timestamp `json:"endDateTime"`
	Location      string    `json:"location"`
}

// Apply overwrites every mutable field of event with the input. The id is left untouched.
func Apply(input *EventInput, event *Event) {
	event.Title = input.Title
	event.Description = input.Description
	event.StartDateTime = time.Time{}
	if input.StartDateTime != nil {
		event.StartDateTime = input.StartDateTime.UTC()
	}
	event.EndDateTime = time.Time{}
	if input.EndDateTime != nil {
		event.EndDateTime = input.EndDateTime.UTC()
	}
	event.Location = input.Location
}

func ToResponse(event *Event) EventResponse {
	return EventResponse{
		ID:            event.ID,
		Title:         event.Title,
		Description:   event.Description,
		StartDateTime: Timestamp{Time: event.StartDateTime.UTC()},
		EndDateTime:   Timestamp{Time: event.EndDateTime.UTC()},
		Location:      event.Location,
	}
}

func ToResponses(events []*Event) []EventResponse {
	res := make([]EventResponse, 0, len(events))
	for _, e := range events {
		res = append(res, ToResponse(e))
	}
	return res
}
