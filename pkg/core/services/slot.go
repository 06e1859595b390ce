package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/parks-scoring/pkg/core/model"
	"github.com/jakechorley/parks-scoring/pkg/core/schedule"
	"github.com/jakechorley/parks-scoring/pkg/db"
)

// SlotRequest identifies which occurrence of an activity is being booked
type SlotRequest struct {
	// Date is the explicit occurrence; when nil it is resolved from the activity's schedule
	Date *time.Time
	Now  time.Time
	// Location decides what "today" is when resolving a recurrence (UTC when nil)
	Location *time.Location
}

// resolveSlot builds the activity slot for a request.
// An unusable recurrence rule is a data-quality issue: the activity start date is used instead.
func resolveSlot(activity db.Activity, req SlotRequest, logger *zap.Logger) (model.ActivitySlot, []string) {
	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}

	var issues []string
	date, err := schedule.ResolveDate(req.Date, activity.StartDate, activity.RecurrenceRule, req.Now.In(loc))
	if err != nil {
		logger.Warn("Activity recurrence rule is invalid, using start date",
			zap.String("activity_id", activity.ID),
			zap.String("rule", activity.RecurrenceRule),
			zap.Error(err))
		issues = append(issues, err.Error())
		date = activity.StartDate
	}

	if date == nil {
		logger.Debug("Activity has no date, day check will be skipped", zap.String("activity_id", activity.ID))
	}

	return activity.Slot(date), issues
}

// volunteerProfile normalizes a volunteer, logging undecodable list fields
func volunteerProfile(volunteer db.Volunteer, logger *zap.Logger) (model.VolunteerProfile, []string) {
	profile, err := volunteer.Profile()
	if err != nil {
		logger.Warn("Volunteer has malformed list fields, treating them as empty",
			zap.String("volunteer_id", volunteer.ID),
			zap.Error(err))
		return profile, []string{err.Error()}
	}
	return profile, nil
}
