package models

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRepo keeps events in process memory. Used for local runs (STORE_DRIVER=memory) and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	events map[int64]Event
	lastID int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		events: make(map[int64]Event),
	}
}

func (m *MemoryRepo) GetEventByID(ctx context.Context, id int64) (*Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	event, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	return &event, nil
}

func (m *MemoryRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]*Event, 0, len(m.events))
	for _, e := range m.events {
		event := e
		events = append(events, &event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (m *MemoryRepo) SaveEvent(ctx context.Context, event *Event) (*Event, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if event.ID == 0 {
		m.lastID++
		event.ID = m.lastID
	} else if _, ok := m.events[event.ID]; !ok {
		return nil, fmt.Errorf("event with id %d: %w", event.ID, ErrNotFound)
	}

	stored := *event
	stored.StartDateTime = stored.StartDateTime.UTC()
	stored.EndDateTime = stored.EndDateTime.UTC()
	m.events[stored.ID] = stored

	*event = stored
	return event, nil
}

func (m *MemoryRepo) DeleteEvent(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.events, id)
	return nil
}
