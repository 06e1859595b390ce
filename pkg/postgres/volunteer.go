package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/parks-scoring/pkg/db"
)

// GetVolunteer retrieves a single volunteer by ID
func (d *DB) GetVolunteer(ctx context.Context, id string) (*db.Volunteer, error) {
	var v db.Volunteer
	err := d.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, status, available_days, interest_areas
		FROM volunteer
		WHERE id = $1
	`, id).Scan(&v.ID, &v.FirstName, &v.LastName, &v.Email, &v.Status, &v.AvailableDays, &v.InterestAreas)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("volunteer %s: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteer: %w", err)
	}

	return &v, nil
}

// ListVolunteers retrieves all volunteer records ordered by name
func (d *DB) ListVolunteers(ctx context.Context) ([]db.Volunteer, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, first_name, last_name, email, status, available_days, interest_areas
		FROM volunteer
		ORDER BY first_name, last_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteers: %w", err)
	}
	defer rows.Close()

	var volunteers []db.Volunteer
	for rows.Next() {
		var v db.Volunteer
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName, &v.Email, &v.Status, &v.AvailableDays, &v.InterestAreas); err != nil {
			return nil, fmt.Errorf("failed to scan volunteer: %w", err)
		}
		volunteers = append(volunteers, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating volunteers: %w", err)
	}

	return volunteers, nil
}
