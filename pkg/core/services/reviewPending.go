package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/parks-scoring/pkg/core/model"
	"github.com/jakechorley/parks-scoring/pkg/core/viability"
	"github.com/jakechorley/parks-scoring/pkg/db"
)

// PendingReview is the viability review of every pending activity
type PendingReview struct {
	// Estimates are ordered riskiest first, then by ascending margin
	Estimates []ActivityEstimate
	Counts    map[model.Recommendation]int
}

// ReviewPendingActivities estimates every activity awaiting approval
func ReviewPendingActivities(ctx context.Context, store db.ActivityStore, estimator *viability.Estimator, logger *zap.Logger) (*PendingReview, error) {
	logger.Debug("Fetching pending activities")
	activities, err := store.GetActivitiesByStatus(ctx, db.ActivityStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending activities: %w", err)
	}
	logger.Debug("Found pending activities", zap.Int("count", len(activities)))

	review := &PendingReview{
		Estimates: make([]ActivityEstimate, 0, len(activities)),
		Counts: map[model.Recommendation]int{
			model.RecommendationApprove: 0,
			model.RecommendationReview:  0,
			model.RecommendationReject:  0,
		},
	}

	for _, activity := range activities {
		analysis := estimator.Estimate(activity.FinancialInput())
		review.Estimates = append(review.Estimates, ActivityEstimate{
			Activity: activity,
			Analysis: analysis,
		})
		review.Counts[analysis.Recommendation]++
	}

	sortEstimates(review.Estimates)

	logger.Info("Pending activities reviewed",
		zap.Int("total", len(review.Estimates)),
		zap.Int("approve", review.Counts[model.RecommendationApprove]),
		zap.Int("review", review.Counts[model.RecommendationReview]),
		zap.Int("reject", review.Counts[model.RecommendationReject]))

	return review, nil
}

// sortEstimates orders by risk (high first), then margin (lowest first), then ID
func sortEstimates(estimates []ActivityEstimate) {
	sort.SliceStable(estimates, func(i, j int) bool {
		a, b := estimates[i], estimates[j]
		if ra, rb := a.Analysis.RiskLevel.Rank(), b.Analysis.RiskLevel.Rank(); ra != rb {
			return ra > rb
		}
		if a.Analysis.ProfitMargin != b.Analysis.ProfitMargin {
			return a.Analysis.ProfitMargin < b.Analysis.ProfitMargin
		}
		return a.Activity.ID < b.Activity.ID
	})
}
