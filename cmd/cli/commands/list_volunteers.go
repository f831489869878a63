package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jakechorley/volunteer-hours/pkg/core/services"
)

// ListVolunteersCmd creates the listVolunteers command
func ListVolunteersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listVolunteers",
		Short: "List volunteers with their total hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			volunteers, err := app.Database.GetVolunteers(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch volunteers: %w", err)
			}
			events, err := app.Database.GetEvents(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch events: %w", err)
			}

			return printVolunteerSummaries(cmd.OutOrStdout(), services.SummarizeVolunteers(volunteers, events))
		},
	}
}

func printVolunteerSummaries(out io.Writer, summaries []services.VolunteerSummary) error {
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No volunteers found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tPhone\tEmail\tEvents\tTotal Hours")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
			s.DisplayID,
			s.Volunteer.Name,
			s.Volunteer.Phone,
			s.Volunteer.Email,
			s.EventCount,
			s.TotalHours,
		)
	}
	return tw.Flush()
}
