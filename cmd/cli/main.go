package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-hours/cmd/cli/commands"
	"github.com/jakechorley/volunteer-hours/internal/config"
	"github.com/jakechorley/volunteer-hours/pkg/core/services"
	"github.com/jakechorley/volunteer-hours/pkg/db"
	"github.com/jakechorley/volunteer-hours/pkg/utils/logging"
)

var (
	env        string
	configPath string
	app        = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "volunteer-hours",
		Short: "Volunteer Hours - Track volunteers and the hours they give",
		Long:  `A server and CLI for recording volunteers and their events, with a one-way export to Google Sheets.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (dev, test, prod, etc.)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a config file (overrides --env lookup)")

	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.SyncSheetsCmd(app))
	rootCmd.AddCommand(commands.ListVolunteersCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up config, logger and database
func initApp() error {
	var err error
	app.Ctx = context.Background()
	app.NewWriter = services.NewSheetsWriter

	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.LoadWithEnv(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger, err = logging.InitLogger(env, app.Cfg.LogsDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Info("Starting application", zap.String("environment", env))
	app.Logger.Debug("Configuration loaded",
		zap.Int("port", app.Cfg.Port),
		zap.String("data_dir", app.Cfg.DataDir))

	app.Database, err = db.NewDB(app.Cfg.DataDir, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to open data directory: %w", err)
	}
	app.Logger.Debug("Database initialized", zap.String("dir", app.Cfg.DataDir))

	return nil
}
