package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-hours/internal/config"
	"github.com/jakechorley/volunteer-hours/pkg/core/services"
	"github.com/jakechorley/volunteer-hours/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg       *config.Config
	Database  db.Database
	NewWriter services.WorksheetWriterFactory
	Logger    *zap.Logger
	Ctx       context.Context
}
