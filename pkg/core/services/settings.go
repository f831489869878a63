package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-hours/pkg/core/model"
)

// SettingsStore defines the database operations needed for application settings
type SettingsStore interface {
	GetSettings(ctx context.Context) (*model.Settings, error)
	SaveSettings(ctx context.Context, settings *model.Settings) error
}

// SheetsConfigView is the spreadsheet configuration with the credential secret withheld
type SheetsConfigView struct {
	Configured    bool   `json:"configured"`
	SpreadsheetID string `json:"spreadsheetId"`
	ClientEmail   string `json:"clientEmail"`
}

// SheetsConfigInput is a new spreadsheet configuration
type SheetsConfigInput struct {
	SpreadsheetID string          `json:"spreadsheetId" validate:"required"`
	Credentials   json.RawMessage `json:"credentials"`
}

// GetAdminPassword returns the shared admin password
func GetAdminPassword(ctx context.Context, store SettingsStore) (string, error) {
	settings, err := store.GetSettings(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load settings: %w", err)
	}
	return settings.AdminPassword, nil
}

// SetAdminPassword replaces the shared admin password, keeping other settings
func SetAdminPassword(ctx context.Context, store SettingsStore, logger *zap.Logger, password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	settings, err := store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	settings.AdminPassword = password
	if err := store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	logger.Info("Admin password updated")
	return nil
}

// GetSheetsConfig returns the spreadsheet configuration without the credential key
func GetSheetsConfig(ctx context.Context, store SettingsStore) (*SheetsConfigView, error) {
	settings, err := store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	cfg := settings.SheetsConfig
	if cfg == nil {
		return &SheetsConfigView{}, nil
	}

	return &SheetsConfigView{
		Configured:    cfg.SpreadsheetID != "" && cfg.HasCredentials(),
		SpreadsheetID: cfg.SpreadsheetID,
		ClientEmail:   cfg.ClientEmail(),
	}, nil
}

// SetSheetsConfig replaces the spreadsheet configuration, keeping other settings.
// Credentials must be a JSON object, optionally JSON-encoded as a string.
func SetSheetsConfig(ctx context.Context, store SettingsStore, logger *zap.Logger, input SheetsConfigInput) error {
	input.SpreadsheetID = strings.TrimSpace(input.SpreadsheetID)
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	trimmed := bytes.TrimSpace(input.Credentials)

	// Credentials pasted as a JSON-encoded string are unwrapped
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return fmt.Errorf("%w: credentials: %v", ErrInvalidInput, err)
		}
		trimmed = bytes.TrimSpace([]byte(encoded))
	}

	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return fmt.Errorf("%w: credentials must be a service account JSON object", ErrInvalidInput)
	}

	settings, err := store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	settings.SheetsConfig = &model.SheetsConfig{
		SpreadsheetID: input.SpreadsheetID,
		Credentials:   trimmed,
	}
	if err := store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	logger.Info("Sheets configuration updated",
		zap.String("spreadsheet_id", input.SpreadsheetID),
		zap.String("client_email", settings.SheetsConfig.ClientEmail()))
	return nil
}
