package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/volunteer-hours/pkg/api"
	"github.com/jakechorley/volunteer-hours/pkg/core/services"
)

// SyncSheetsCmd creates the syncSheets command
func SyncSheetsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "syncSheets",
		Short: "Overwrite the configured Google Sheet with all volunteers and events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.RunSheetsSync(app.Ctx, app.Database, app.NewWriter, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !result.Success {
				if result.ErrorKind == services.SyncErrorPermission {
					return fmt.Errorf("%s (%s)", api.PermissionHint(result.ServiceAccount), result.Error)
				}
				return fmt.Errorf("sync failed: %s", result.Error)
			}

			fmt.Fprintf(out, "\n✓ Sync complete!\n\n")
			fmt.Fprintf(out, "Volunteers: %d\n", result.VolunteersCount)
			fmt.Fprintf(out, "Events:     %d\n\n", result.EventsCount)

			return nil
		},
	}
}
