package db

import (
	"context"
	"fmt"

	"github.com/jakechorley/volunteer-hours/pkg/core/model"
)

// DefaultAdminPassword is used until a password has been saved
const DefaultAdminPassword = "admin123"

// DefaultSettings returns the settings used when no settings document exists
func DefaultSettings() *model.Settings {
	return &model.Settings{
		AdminPassword: DefaultAdminPassword,
	}
}

// GetSettings retrieves the application settings, falling back to defaults
func (db *DB) GetSettings(ctx context.Context) (*model.Settings, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	settings := DefaultSettings()
	if !db.readDocument(SettingsFile, settings) {
		return DefaultSettings(), nil
	}
	return settings, nil
}

// SaveSettings replaces the application settings
func (db *DB) SaveSettings(ctx context.Context, settings *model.Settings) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if settings == nil {
		return fmt.Errorf("settings must not be nil")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.writeDocument(SettingsFile, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
