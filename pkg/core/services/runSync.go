package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-hours/pkg/core/model"
)

// SyncStore defines the database operations needed to run a sync
type SyncStore interface {
	GetVolunteers(ctx context.Context) ([]model.Volunteer, error)
	GetEvents(ctx context.Context) ([]model.Event, error)
	GetSettings(ctx context.Context) (*model.Settings, error)
}

// RunSheetsSync loads the stored records and configuration and syncs them to the spreadsheet.
// A Go error is returned only when the records cannot be loaded.
func RunSheetsSync(ctx context.Context, store SyncStore, newWriter WorksheetWriterFactory, logger *zap.Logger) (*SyncResult, error) {
	settings, err := store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	volunteers, err := store.GetVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteers: %w", err)
	}

	events, err := store.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	return SyncSheets(ctx, newWriter, logger, settings.SheetsConfig, volunteers, events), nil
}
