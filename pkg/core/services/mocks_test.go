package services

import (
	"context"
	"fmt"

	"github.com/jakechorley/parks-scoring/pkg/db"
)

// mockActivityStore implements db.ActivityStore
type mockActivityStore struct {
	activities []db.Activity
	err        error
}

func (m *mockActivityStore) GetActivity(ctx context.Context, id string) (*db.Activity, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.activities {
		if m.activities[i].ID == id {
			a := m.activities[i]
			return &a, nil
		}
	}
	return nil, fmt.Errorf("activity %s: %w", id, db.ErrNotFound)
}

func (m *mockActivityStore) GetActivitiesByStatus(ctx context.Context, status db.ActivityStatus) ([]db.Activity, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []db.Activity
	for _, a := range m.activities {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

// mockVolunteerStore implements db.VolunteerStore
type mockVolunteerStore struct {
	volunteers []db.Volunteer
	err        error
}

func (m *mockVolunteerStore) GetVolunteer(ctx context.Context, id string) (*db.Volunteer, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.volunteers {
		if m.volunteers[i].ID == id {
			v := m.volunteers[i]
			return &v, nil
		}
	}
	return nil, fmt.Errorf("volunteer %s: %w", id, db.ErrNotFound)
}

func (m *mockVolunteerStore) ListVolunteers(ctx context.Context) ([]db.Volunteer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.volunteers, nil
}

func ptr[T any](v T) *T {
	return &v
}
