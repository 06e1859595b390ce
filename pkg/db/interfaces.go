package db

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// ActivityStore defines the read operations for activity records
type ActivityStore interface {
	GetActivity(ctx context.Context, id string) (*Activity, error)
	GetActivitiesByStatus(ctx context.Context, status ActivityStatus) ([]Activity, error)
}

// VolunteerStore defines the read operations for volunteer records
type VolunteerStore interface {
	GetVolunteer(ctx context.Context, id string) (*Volunteer, error)
	ListVolunteers(ctx context.Context) ([]Volunteer, error)
}

// Database defines all data-source operations.
// postgres.DB implements it; sheetsclient.Client only provides VolunteerStore.
type Database interface {
	ActivityStore
	VolunteerStore
}
