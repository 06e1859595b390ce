package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/parks-scoring/pkg/core/services"
)

// FindVolunteersCmd creates the findVolunteers command
func FindVolunteersCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "findVolunteers <activity_id>",
		Short: "List active volunteers who can register for an activity, best matches first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateFlag, _ := cmd.Flags().GetString("date")
			date, err := parseDateFlag(dateFlag, app.Location)
			if err != nil {
				return err
			}

			search, err := services.FindCompatibleVolunteers(app.Ctx, app.Activities, app.Volunteers, app.Checker, app.Logger,
				args[0], services.SlotRequest{Date: date, Now: time.Now(), Location: app.Location})
			if err != nil {
				return err
			}

			fmt.Printf("\n%s on %s\n\n", search.Activity.Name, formatSlotDate(search.Slot.Date))
			printDataIssues(search.DataIssues)

			if search.Full {
				fmt.Printf("%sActivity is full%s\n\n", colorRed, colorReset)
				return nil
			}
			if len(search.Matches) == 0 {
				fmt.Println("No active volunteers.")
				return nil
			}

			for _, m := range search.Matches {
				marker := colorGreen + "✓" + colorReset
				if len(m.Result.Warnings) > 0 {
					marker = colorYellow + "⚠" + colorReset
				}
				fmt.Printf("%s %s (%s)\n", marker, m.Volunteer.DisplayName(), m.Volunteer.ID)
				if len(m.Result.Warnings) > 0 {
					fmt.Printf("    %s%s%s\n", colorDim, strings.Join(m.Result.Warnings, "; "), colorReset)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("date", "", "Occurrence date (YYYY-MM-DD); defaults to the next scheduled occurrence")

	return cmd
}
