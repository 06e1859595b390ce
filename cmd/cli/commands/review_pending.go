package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/parks-scoring/pkg/core/model"
	"github.com/jakechorley/parks-scoring/pkg/core/services"
)

// ReviewPendingCmd creates the reviewPending command
func ReviewPendingCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reviewPending",
		Short: "Estimate every pending activity, riskiest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			review, err := services.ReviewPendingActivities(app.Ctx, app.Activities, app.Estimator, app.Logger)
			if err != nil {
				return err
			}

			if len(review.Estimates) == 0 {
				fmt.Println("\nNo pending activities.")
				return nil
			}

			fmt.Printf("\nPending activities (%d)\n\n", len(review.Estimates))

			nameColWidth := 20
			for _, e := range review.Estimates {
				if len(e.Activity.Name)+2 > nameColWidth {
					nameColWidth = len(e.Activity.Name) + 2
				}
			}

			fmt.Printf("%-*s%10s%12s%12s  %-10s%-8s\n", nameColWidth, "Activity", "Margin", "Costs", "Break-even", "Verdict", "Risk")
			fmt.Println(strings.Repeat("-", nameColWidth+10+12+12+2+10+8))

			for _, e := range review.Estimates {
				a := e.Analysis
				fmt.Printf("%-*s%9.1f%%%12.2f%12d  %s%-10s%s%s%-8s%s\n",
					nameColWidth, e.Activity.Name,
					a.ProfitMargin,
					a.EstimatedCosts,
					a.BreakEvenPoint,
					recommendationColor(a.Recommendation, colorRed, colorYellow, colorGreen), a.Recommendation, colorReset,
					riskColor(a.RiskLevel, colorRed, colorYellow, colorGreen), a.RiskLevel, colorReset)
			}

			fmt.Printf("\n%sapprove: %d  review: %d  reject: %d%s\n\n",
				colorDim,
				review.Counts[model.RecommendationApprove],
				review.Counts[model.RecommendationReview],
				review.Counts[model.RecommendationReject],
				colorReset)

			return nil
		},
	}
}
