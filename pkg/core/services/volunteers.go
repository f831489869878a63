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

// VolunteerInput is the client-supplied part of a new volunteer
type VolunteerInput struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

// VolunteerStore defines the database operations needed to manage volunteers
type VolunteerStore interface {
	GetVolunteers(ctx context.Context) ([]model.Volunteer, error)
	InsertVolunteer(ctx context.Context, volunteer model.Volunteer) error
	DeleteVolunteerCascade(ctx context.Context, volunteerID string) (bool, error)
}

// ListVolunteers returns volunteers in stored order
func ListVolunteers(ctx context.Context, store VolunteerStore) ([]model.Volunteer, error) {
	volunteers, err := store.GetVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteers: %w", err)
	}
	return volunteers, nil
}

// GetVolunteer returns the volunteer with the given ID or ErrNotFound
func GetVolunteer(ctx context.Context, store VolunteerStore, id string) (*model.Volunteer, error) {
	volunteers, err := store.GetVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteers: %w", err)
	}

	for i := range volunteers {
		if volunteers[i].ID == id {
			return &volunteers[i], nil
		}
	}

	return nil, fmt.Errorf("volunteer %s: %w", id, ErrNotFound)
}

// CreateVolunteer validates input and appends a new volunteer with a generated ID and timestamp
func CreateVolunteer(ctx context.Context, store VolunteerStore, logger *zap.Logger, input VolunteerInput) (*model.Volunteer, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Email = strings.TrimSpace(input.Email)

	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	volunteer := model.Volunteer{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		CreatedAt: time.Now().UTC(),
	}

	if err := store.InsertVolunteer(ctx, volunteer); err != nil {
		return nil, fmt.Errorf("failed to save volunteer: %w", err)
	}

	logger.Info("Volunteer created", zap.String("id", volunteer.ID), zap.String("name", volunteer.Name))

	return &volunteer, nil
}

// DeleteVolunteer removes a volunteer and all of their events.
// It returns ErrNotFound if the volunteer does not exist.
func DeleteVolunteer(ctx context.Context, store VolunteerStore, logger *zap.Logger, id string) error {
	deleted, err := store.DeleteVolunteerCascade(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete volunteer: %w", err)
	}
	if !deleted {
		return fmt.Errorf("volunteer %s: %w", id, ErrNotFound)
	}

	logger.Info("Volunteer deleted", zap.String("id", id))
	return nil
}

// VolunteerSummary is a volunteer with their display ID and total hours for one listing
type VolunteerSummary struct {
	DisplayID  int
	Volunteer  model.Volunteer
	TotalHours string
	EventCount int
}

// SummarizeVolunteers orders volunteers by name and attaches display IDs and hour totals,
// matching the rows of the "Volunteers" worksheet
func SummarizeVolunteers(volunteers []model.Volunteer, events []model.Event) []VolunteerSummary {
	byVolunteer := GroupEventsByVolunteer(events)
	sorted := SortVolunteersByName(volunteers)

	summaries := make([]VolunteerSummary, len(sorted))
	for i, v := range sorted {
		summaries[i] = VolunteerSummary{
			DisplayID:  i + 1,
			Volunteer:  v,
			TotalHours: FormatHours(TotalHours(byVolunteer[v.ID])),
			EventCount: len(byVolunteer[v.ID]),
		}
	}
	return summaries
}
