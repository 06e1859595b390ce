package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/parks-scoring/pkg/core/model"
	"github.com/jakechorley/parks-scoring/pkg/core/viability"
	"github.com/jakechorley/parks-scoring/pkg/db"
)

// ActivityEstimate pairs an activity with its financial analysis
type ActivityEstimate struct {
	Activity db.Activity
	Analysis model.FinancialAnalysis
}

// EstimateActivity loads an activity and runs the viability estimator on it
func EstimateActivity(ctx context.Context, store db.ActivityStore, estimator *viability.Estimator, logger *zap.Logger, activityID string) (*ActivityEstimate, error) {
	logger.Debug("Estimating activity viability", zap.String("activity_id", activityID))

	activity, err := store.GetActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity %s: %w", activityID, err)
	}

	analysis := estimator.Estimate(activity.FinancialInput())

	logger.Debug("Activity estimated",
		zap.String("activity_id", activity.ID),
		zap.Float64("profit_margin", analysis.ProfitMargin),
		zap.Int("break_even", analysis.BreakEvenPoint),
		zap.String("recommendation", string(analysis.Recommendation)),
		zap.String("risk", string(analysis.RiskLevel)))

	return &ActivityEstimate{
		Activity: *activity,
		Analysis: analysis,
	}, nil
}
