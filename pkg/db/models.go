package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jakechorley/parks-scoring/pkg/core/listparse"
	"github.com/jakechorley/parks-scoring/pkg/core/model"
)

type ActivityStatus string

const (
	ActivityStatusPending   ActivityStatus = "pending"
	ActivityStatusApproved  ActivityStatus = "approved"
	ActivityStatusRejected  ActivityStatus = "rejected"
	ActivityStatusCancelled ActivityStatus = "cancelled"
)

func (s ActivityStatus) IsValid() bool {
	switch s {
	case ActivityStatusPending, ActivityStatusApproved, ActivityStatusRejected, ActivityStatusCancelled:
		return true
	}
	return false
}

// Activity represents an activity record from the parks database
type Activity struct {
	ID              string
	Name            string
	Category        string
	Price           *float64 // nullable, free when absent
	Capacity        *int     // nullable, uncapped when absent
	DurationMinutes *int     // nullable
	Status          ActivityStatus
	StartDate       *time.Time // nullable
	RecurrenceRule  string     // empty for one-off activities

	// CurrentEnrollment is the number of registered participations
	CurrentEnrollment int
}

// FinancialInput extracts the numbers the viability estimator needs
func (a Activity) FinancialInput() model.ActivityFinancialInput {
	return model.ActivityFinancialInput{
		Price:           a.Price,
		Capacity:        a.Capacity,
		DurationMinutes: a.DurationMinutes,
	}
}

// Slot builds the activity slot for the given date (nil when the activity is undated)
func (a Activity) Slot(date *time.Time) model.ActivitySlot {
	capacity := 0
	if a.Capacity != nil {
		capacity = *a.Capacity
	}
	return model.ActivitySlot{
		Date:              date,
		Category:          a.Category,
		Capacity:          capacity,
		CurrentEnrollment: a.CurrentEnrollment,
	}
}

// Volunteer represents a volunteer record.
// AvailableDays and InterestAreas hold the raw stored encoding.
type Volunteer struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Status        string
	AvailableDays string
	InterestAreas string
}

func (v Volunteer) DisplayName() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}

// IsActive reports whether the volunteer status is active (case-insensitive)
func (v Volunteer) IsActive() bool {
	return strings.EqualFold(v.Status, "active")
}

// Profile normalizes the raw list fields into a VolunteerProfile.
// Fields that cannot be decoded become empty sets and are reported in the returned error,
// which is a data-quality signal rather than a failure: the profile is always usable.
func (v Volunteer) Profile() (model.VolunteerProfile, error) {
	days, daysErr := listparse.ParseLower(v.AvailableDays)
	areas, areasErr := listparse.Parse(v.InterestAreas)

	var errs []error
	if daysErr != nil {
		errs = append(errs, fmt.Errorf("available days: %w", daysErr))
	}
	if areasErr != nil {
		errs = append(errs, fmt.Errorf("interest areas: %w", areasErr))
	}

	return model.VolunteerProfile{
		AvailableDays: days,
		InterestAreas: areas,
	}, errors.Join(errs...)
}
