package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/parks-scoring/pkg/core/compatibility"
	"github.com/jakechorley/parks-scoring/pkg/core/model"
	"github.com/jakechorley/parks-scoring/pkg/db"
)

// ParticipationCheck is the outcome of checking one volunteer against one activity slot
type ParticipationCheck struct {
	Volunteer db.Volunteer
	Activity  db.Activity
	Slot      model.ActivitySlot
	Result    model.CompatibilityResult
	// DataIssues lists source records that could not be fully decoded
	DataIssues []string
}

// CheckParticipation loads the volunteer and activity, resolves the slot date and runs the checker
func CheckParticipation(
	ctx context.Context,
	activities db.ActivityStore,
	volunteers db.VolunteerStore,
	checker *compatibility.Checker,
	logger *zap.Logger,
	volunteerID, activityID string,
	req SlotRequest,
) (*ParticipationCheck, error) {
	logger.Debug("Checking participation",
		zap.String("volunteer_id", volunteerID),
		zap.String("activity_id", activityID))

	volunteer, err := volunteers.GetVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer %s: %w", volunteerID, err)
	}

	activity, err := activities.GetActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity %s: %w", activityID, err)
	}

	slot, slotIssues := resolveSlot(*activity, req, logger)
	profile, profileIssues := volunteerProfile(*volunteer, logger)

	result := checker.Check(profile, slot)

	logger.Debug("Participation checked",
		zap.String("volunteer_id", volunteer.ID),
		zap.String("activity_id", activity.ID),
		zap.Bool("blocked", result.Blocked()),
		zap.Int("warnings", len(result.Warnings)))

	return &ParticipationCheck{
		Volunteer:  *volunteer,
		Activity:   *activity,
		Slot:       slot,
		Result:     result,
		DataIssues: append(slotIssues, profileIssues...),
	}, nil
}
