package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-hours/pkg/core/model"
)

// GetVolunteers retrieves all volunteer records
func (db *DB) GetVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return db.loadVolunteers(), nil
}

// SaveVolunteers replaces the volunteer collection
func (db *DB) SaveVolunteers(ctx context.Context, volunteers []model.Volunteer) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	return db.saveVolunteers(volunteers)
}

// InsertVolunteer appends a volunteer record
func (db *DB) InsertVolunteer(ctx context.Context, volunteer model.Volunteer) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	volunteers := append(db.loadVolunteers(), volunteer)
	if err := db.saveVolunteers(volunteers); err != nil {
		return fmt.Errorf("failed to insert volunteer: %w", err)
	}
	return nil
}

// DeleteVolunteerCascade removes a volunteer and every event referencing it.
// Both documents are staged before either is replaced; events are committed first so a
// failure part way never leaves events behind for a volunteer that no longer exists.
// It reports false if no volunteer has the given ID.
func (db *DB) DeleteVolunteerCascade(ctx context.Context, volunteerID string) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	volunteers := db.loadVolunteers()
	remaining := make([]model.Volunteer, 0, len(volunteers))
	for _, v := range volunteers {
		if v.ID != volunteerID {
			remaining = append(remaining, v)
		}
	}
	if len(remaining) == len(volunteers) {
		return false, nil
	}

	events := db.loadEvents()
	keptEvents := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.VolunteerID != volunteerID {
			keptEvents = append(keptEvents, e)
		}
	}

	eventsTmp, err := db.stageDocument(EventsFile, keptEvents)
	if err != nil {
		return false, fmt.Errorf("failed to stage events: %w", err)
	}
	volunteersTmp, err := db.stageDocument(VolunteersFile, remaining)
	if err != nil {
		discard(eventsTmp)
		return false, fmt.Errorf("failed to stage volunteers: %w", err)
	}

	if err := db.commitDocument(EventsFile, eventsTmp); err != nil {
		discard(eventsTmp, volunteersTmp)
		return false, err
	}
	if err := db.commitDocument(VolunteersFile, volunteersTmp); err != nil {
		discard(volunteersTmp)
		return false, err
	}

	db.logger.Debug("Deleted volunteer with cascade",
		zap.String("volunteer_id", volunteerID),
		zap.Int("events_removed", len(events)-len(keptEvents)))

	return true, nil
}

func (db *DB) loadVolunteers() []model.Volunteer {
	var volunteers []model.Volunteer
	if !db.readDocument(VolunteersFile, &volunteers) || volunteers == nil {
		return []model.Volunteer{}
	}
	return volunteers
}

func (db *DB) saveVolunteers(volunteers []model.Volunteer) error {
	if volunteers == nil {
		volunteers = []model.Volunteer{}
	}
	return db.writeDocument(VolunteersFile, volunteers)
}
