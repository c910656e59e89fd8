package models

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// eventRow is the PostgREST body for inserts and updates; the id is generated by the table.
func eventRow(event *Event) map[string]interface{} {
	return map[string]interface{}{
		"title":           event.Title,
		"description":     event.Description,
		"start_date_time": event.StartDateTime.UTC(),
		"end_date_time":   event.EndDateTime.UTC(),
		"location":        event.Location,
	}
}

func decodeEvents(data []byte) ([]*Event, error) {
	var events []*Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal events: %w", err)
	}
	return events, nil
}

func (su *SupabaseRepo) GetEventByID(ctx context.Context, id int64) (*Event, error) {
	data, _, err := su.supabaseClient.
		From(EventsTable).
		Select("*", "", false).
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get event %d: %w", id, err)
	}

	events, err := decodeEvents(data)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return events[0], nil
}

func (su *SupabaseRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	data, _, err := su.supabaseClient.From(EventsTable).Select("*", "", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events, err := decodeEvents(data)
	if err != nil {
		return nil, err
	}
	if events == nil {
		return []*Event{}, nil
	}
	slices.SortFunc(events, func(a, b *Event) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return events, nil
}

func (su *SupabaseRepo) SaveEvent(ctx context.Context, event *Event) (*Event, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if event.ID == 0 {
		data, _, err = su.supabaseClient.
			From(EventsTable).
			Insert(eventRow(event), false, "", "representation", "").
			Execute()
	} else {
		data, _, err = su.supabaseClient.
			From(EventsTable).
			Update(eventRow(event), "representation", "").
			Eq("id", strconv.FormatInt(event.ID, 10)).
			Execute()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	saved, err := decodeEvents(data)
	if err != nil {
		return nil, err
	}
	if len(saved) == 0 {
		// an update that matched no row
		return nil, fmt.Errorf("event with id %d: %w", event.ID, ErrNotFound)
	}

	*event = *saved[0]
	return event, nil
}

func (su *SupabaseRepo) DeleteEvent(ctx context.Context, id int64) error {
	_, _, err := su.supabaseClient.
		From(EventsTable).
		Delete("minimal", "").
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	return nil
}
