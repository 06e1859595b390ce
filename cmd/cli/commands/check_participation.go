package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/parks-scoring/pkg/core/services"
)

// CheckParticipationCmd creates the checkParticipation command
func CheckParticipationCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkParticipation <volunteer_id> <activity_id>",
		Short: "Check whether a volunteer can register for an activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateFlag, _ := cmd.Flags().GetString("date")
			date, err := parseDateFlag(dateFlag, app.Location)
			if err != nil {
				return err
			}

			check, err := services.CheckParticipation(app.Ctx, app.Activities, app.Volunteers, app.Checker, app.Logger,
				args[0], args[1], services.SlotRequest{Date: date, Now: time.Now(), Location: app.Location})
			if err != nil {
				return err
			}

			fmt.Printf("\n%s → %s on %s\n\n",
				check.Volunteer.DisplayName(), check.Activity.Name, formatSlotDate(check.Slot.Date))
			printCompatibility(check.Result)

			if check.Result.Blocked() {
				fmt.Printf("\n%sRegistration blocked%s\n", colorRed, colorReset)
			} else {
				fmt.Printf("\n%sRegistration allowed%s\n", colorGreen, colorReset)
			}

			printDataIssues(check.DataIssues)
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("date", "", "Occurrence date (YYYY-MM-DD); defaults to the next scheduled occurrence")

	return cmd
}
