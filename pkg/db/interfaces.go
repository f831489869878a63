package db

import (
	"context"

	"github.com/jakechorley/volunteer-hours/pkg/core/model"
)

// VolunteerStore defines the interface for volunteer record operations
type VolunteerStore interface {
	GetVolunteers(ctx context.Context) ([]model.Volunteer, error)
	SaveVolunteers(ctx context.Context, volunteers []model.Volunteer) error
}

// EventStore defines the interface for event record operations
type EventStore interface {
	GetEvents(ctx context.Context) ([]model.Event, error)
	SaveEvents(ctx context.Context, events []model.Event) error
}

// SettingsStore defines the interface for the persisted application settings
type SettingsStore interface {
	GetSettings(ctx context.Context) (*model.Settings, error)
	SaveSettings(ctx context.Context, settings *model.Settings) error
}

// Database defines the interface for all record operations.
// The file-backed db.DB implements this interface.
type Database interface {
	VolunteerStore
	EventStore
	SettingsStore
	InsertVolunteer(ctx context.Context, volunteer model.Volunteer) error
	InsertEvent(ctx context.Context, event model.Event) error
	DeleteVolunteerCascade(ctx context.Context, volunteerID string) (bool, error)
}
