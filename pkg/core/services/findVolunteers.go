package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/parks-scoring/pkg/core/compatibility"
	"github.com/jakechorley/parks-scoring/pkg/core/model"
	"github.com/jakechorley/parks-scoring/pkg/db"
)

// VolunteerMatch is an active volunteer who may register for the slot
type VolunteerMatch struct {
	Volunteer db.Volunteer
	Result    model.CompatibilityResult
}

// VolunteerSearch lists the volunteers that can be offered an activity slot
type VolunteerSearch struct {
	Activity db.Activity
	Slot     model.ActivitySlot
	// Full is set when the slot has no capacity left; Matches is then empty
	Full bool
	// Matches are ordered by warning count, then display name
	Matches []VolunteerMatch
	// DataIssues lists source records that could not be fully decoded
	DataIssues []string
}

// FindCompatibleVolunteers checks every active volunteer against an activity slot
func FindCompatibleVolunteers(
	ctx context.Context,
	activities db.ActivityStore,
	volunteers db.VolunteerStore,
	checker *compatibility.Checker,
	logger *zap.Logger,
	activityID string,
	req SlotRequest,
) (*VolunteerSearch, error) {
	activity, err := activities.GetActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity %s: %w", activityID, err)
	}

	allVolunteers, err := volunteers.ListVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}

	slot, slotIssues := resolveSlot(*activity, req, logger)
	search := &VolunteerSearch{
		Activity:   *activity,
		Slot:       slot,
		Matches:    []VolunteerMatch{},
		DataIssues: slotIssues,
	}

	// The capacity gate depends only on the slot
	if checker.Check(model.VolunteerProfile{}, slot).Blocked() {
		search.Full = true
		logger.Info("Activity slot is full, no volunteers offered",
			zap.String("activity_id", activity.ID))
		return search, nil
	}

	active := filterActiveVolunteers(allVolunteers)
	logger.Debug("Checking active volunteers",
		zap.String("activity_id", activity.ID),
		zap.Int("active", len(active)),
		zap.Int("total", len(allVolunteers)))

	for _, volunteer := range active {
		profile, issues := volunteerProfile(volunteer, logger)
		search.DataIssues = append(search.DataIssues, issues...)
		result := checker.Check(profile, slot)
		search.Matches = append(search.Matches, VolunteerMatch{Volunteer: volunteer, Result: result})
	}

	sortMatches(search.Matches)

	logger.Info("Volunteer search complete",
		zap.String("activity_id", activity.ID),
		zap.Bool("full", search.Full),
		zap.Int("matches", len(search.Matches)))

	return search, nil
}

func filterActiveVolunteers(volunteers []db.Volunteer) []db.Volunteer {
	active := make([]db.Volunteer, 0, len(volunteers))
	for _, v := range volunteers {
		if v.IsActive() {
			active = append(active, v)
		}
	}
	return active
}

func sortMatches(matches []VolunteerMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if len(a.Result.Warnings) != len(b.Result.Warnings) {
			return len(a.Result.Warnings) < len(b.Result.Warnings)
		}
		if a.Volunteer.DisplayName() != b.Volunteer.DisplayName() {
			return a.Volunteer.DisplayName() < b.Volunteer.DisplayName()
		}
		return a.Volunteer.ID < b.Volunteer.ID
	})
}
