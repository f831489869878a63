package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-hours/pkg/core/model"
)

// EventInput is the client-supplied part of a new event
type EventInput struct {
	VolunteerID string      `json:"volunteerId" validate:"required"`
	Name        string      `json:"name" validate:"required"`
	Location    string      `json:"location"`
	Date        string      `json:"date" validate:"required"`
	Hours       model.Hours `json:"hours"`
}

// EventStore defines the database operations needed to manage events
type EventStore interface {
	GetVolunteers(ctx context.Context) ([]model.Volunteer, error)
	GetEvents(ctx context.Context) ([]model.Event, error)
	InsertEvent(ctx context.Context, event model.Event) error
}

// ListEvents returns all events in stored order
func ListEvents(ctx context.Context, store EventStore) ([]model.Event, error) {
	events, err := store.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}

// ListVolunteerEvents returns the events logged against one volunteer ID.
// An unknown ID yields an empty list.
func ListVolunteerEvents(ctx context.Context, store EventStore, volunteerID string) ([]model.Event, error) {
	events, err := store.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	filtered := make([]model.Event, 0)
	for _, e := range events {
		if e.VolunteerID == volunteerID {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// CreateEvent validates input and appends a new event with a generated ID and timestamp.
// Events referencing an unknown volunteer are accepted and logged.
func CreateEvent(ctx context.Context, store EventStore, logger *zap.Logger, input EventInput) (*model.Event, error) {
	input.VolunteerID = strings.TrimSpace(input.VolunteerID)
	input.Name = strings.TrimSpace(input.Name)
	input.Location = strings.TrimSpace(input.Location)
	input.Date = strings.TrimSpace(input.Date)

	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	volunteers, err := store.GetVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteers: %w", err)
	}
	if !containsVolunteer(volunteers, input.VolunteerID) {
		logger.Warn("Event created for unknown volunteer", zap.String("volunteer_id", input.VolunteerID))
	}

	event := model.Event{
		ID:          uuid.New().String(),
		VolunteerID: input.VolunteerID,
		Name:        input.Name,
		Location:    input.Location,
		Date:        input.Date,
		Hours:       input.Hours,
		CreatedAt:   time.Now().UTC(),
	}

	if err := store.InsertEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	logger.Info("Event created",
		zap.String("id", event.ID),
		zap.String("volunteer_id", event.VolunteerID),
		zap.String("hours", string(event.Hours)))

	return &event, nil
}

func containsVolunteer(volunteers []model.Volunteer, id string) bool {
	for _, v := range volunteers {
		if v.ID == id {
			return true
		}
	}
	return false
}
