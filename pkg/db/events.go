package db

import (
	"context"
	"fmt"

	"github.com/jakechorley/volunteer-hours/pkg/core/model"
)

// GetEvents retrieves all event records
func (db *DB) GetEvents(ctx context.Context) ([]model.Event, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return db.loadEvents(), nil
}

// SaveEvents replaces the event collection
func (db *DB) SaveEvents(ctx context.Context, events []model.Event) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	return db.saveEvents(events)
}

// InsertEvent appends an event record
func (db *DB) InsertEvent(ctx context.Context, event model.Event) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	events := append(db.loadEvents(), event)
	if err := db.saveEvents(events); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (db *DB) loadEvents() []model.Event {
	var events []model.Event
	if !db.readDocument(EventsFile, &events) || events == nil {
		return []model.Event{}
	}
	return events
}

func (db *DB) saveEvents(events []model.Event) error {
	if events == nil {
		events = []model.Event{}
	}
	return db.writeDocument(EventsFile, events)
}
