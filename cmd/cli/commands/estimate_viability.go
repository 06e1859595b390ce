package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/parks-scoring/pkg/core/model"
	"github.com/jakechorley/parks-scoring/pkg/core/services"
)

// EstimateViabilityCmd creates the estimateViability command
func EstimateViabilityCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimateViability [activity_id]",
		Short: "Estimate the financial viability of a stored activity or of the given numbers",
		Long: `Estimate the financial viability of an activity.

With an activity ID the stored price, capacity and duration are used.
Without one, the --price, --capacity and --duration flags describe the activity;
any flag left out is treated as missing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				estimate, err := services.EstimateActivity(app.Ctx, app.Activities, app.Estimator, app.Logger, args[0])
				if err != nil {
					return err
				}

				fmt.Printf("\n%s (%s) - %s\n\n", estimate.Activity.Name, estimate.Activity.ID, estimate.Activity.Status)
				printAnalysis(estimate.Analysis)
				return nil
			}

			input, err := financialInputFromFlags(cmd)
			if err != nil {
				return err
			}

			app.Logger.Debug("estimateViability command (ad hoc)",
				zap.Any("price", input.Price),
				zap.Any("capacity", input.Capacity),
				zap.Any("duration_minutes", input.DurationMinutes))

			fmt.Println()
			printAnalysis(app.Estimator.Estimate(input))
			return nil
		},
	}

	cmd.Flags().Float64("price", 0, "Price per participant")
	cmd.Flags().Int("capacity", 0, "Maximum participants")
	cmd.Flags().Int("duration", 0, "Duration in minutes (defaults to 60 when missing)")

	return cmd
}

// financialInputFromFlags only sets the fields whose flags were given
func financialInputFromFlags(cmd *cobra.Command) (model.ActivityFinancialInput, error) {
	var input model.ActivityFinancialInput
	flags := cmd.Flags()

	if flags.Changed("price") {
		price, err := flags.GetFloat64("price")
		if err != nil {
			return input, fmt.Errorf("invalid price: %w", err)
		}
		input.Price = &price
	}
	if flags.Changed("capacity") {
		capacity, err := flags.GetInt("capacity")
		if err != nil {
			return input, fmt.Errorf("invalid capacity: %w", err)
		}
		input.Capacity = &capacity
	}
	if flags.Changed("duration") {
		duration, err := flags.GetInt("duration")
		if err != nil {
			return input, fmt.Errorf("invalid duration: %w", err)
		}
		input.DurationMinutes = &duration
	}

	return input, nil
}
