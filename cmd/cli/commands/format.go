package commands

import (
	"fmt"
	"time"

	"github.com/jakechorley/parks-scoring/pkg/core/model"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

const dateLayout = "2006-01-02"

// riskColor picks the color for a risk level
func riskColor(risk model.RiskLevel, high, medium, low string) string {
	switch risk {
	case model.RiskHigh:
		return high
	case model.RiskMedium:
		return medium
	}
	return low
}

// recommendationColor picks the color for a recommendation
func recommendationColor(rec model.Recommendation, reject, review, approve string) string {
	switch rec {
	case model.RecommendationReject:
		return reject
	case model.RecommendationReview:
		return review
	}
	return approve
}

// parseDateFlag parses an optional YYYY-MM-DD flag value in the given location
func parseDateFlag(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD, got: %s", value)
	}
	return &date, nil
}

func formatSlotDate(date *time.Time) string {
	if date == nil {
		return "undated"
	}
	return date.Format("2006-01-02 (Monday)")
}

func printAnalysis(a model.FinancialAnalysis) {
	recColor := recommendationColor(a.Recommendation, colorRed, colorYellow, colorGreen)
	rColor := riskColor(a.RiskLevel, colorRed, colorYellow, colorGreen)

	fmt.Printf("Estimated costs:  %10.2f\n", a.EstimatedCosts)
	fmt.Printf("Revenue (min):    %10.2f\n", a.MinRevenue)
	fmt.Printf("Revenue (avg):    %10.2f\n", a.AvgRevenue)
	fmt.Printf("Revenue (max):    %10.2f\n", a.MaxRevenue)
	fmt.Printf("Profit margin:    %9.2f%%\n", a.ProfitMargin)
	fmt.Printf("Break-even point: %10d participants\n\n", a.BreakEvenPoint)
	fmt.Printf("Recommendation:   %s%s%s\n", recColor, a.Recommendation, colorReset)
	fmt.Printf("Risk level:       %s%s%s\n\n", rColor, a.RiskLevel, colorReset)
}

func printCompatibility(result model.CompatibilityResult) {
	for _, msg := range result.Errors {
		fmt.Printf("  %s✗ %s%s\n", colorRed, msg, colorReset)
	}
	for _, msg := range result.Warnings {
		fmt.Printf("  %s⚠ %s%s\n", colorYellow, msg, colorReset)
	}
	for _, msg := range result.Infos {
		fmt.Printf("  %s✓ %s%s\n", colorGreen, msg, colorReset)
	}
}

func printDataIssues(issues []string) {
	for _, issue := range issues {
		fmt.Printf("%sdata issue: %s%s\n", colorDim, issue, colorReset)
	}
}
