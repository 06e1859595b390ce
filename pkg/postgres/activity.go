package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/parks-scoring/pkg/db"
)

// activityColumns selects an activity together with its registered participation count
const activityColumns = `
	a.id, a.name, a.category, a.price, a.capacity, a.duration_minutes,
	a.status, a.start_date, a.recurrence_rule,
	(SELECT COUNT(*) FROM participation p
	  WHERE p.activity_id = a.id AND p.status = 'registered') AS current_enrollment
`

// GetActivity retrieves a single activity by ID. IDs that are not UUIDs cannot exist.
func (d *DB) GetActivity(ctx context.Context, id string) (*db.Activity, error) {
	activityID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("activity %s: %w", id, db.ErrNotFound)
	}

	row := d.pool.QueryRow(ctx, `SELECT `+activityColumns+` FROM activity a WHERE a.id = $1`, activityID)

	activity, err := scanActivity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("activity %s: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return activity, nil
}

// GetActivitiesByStatus retrieves all activities with the given status, ordered by start date
func (d *DB) GetActivitiesByStatus(ctx context.Context, status db.ActivityStatus) ([]db.Activity, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+activityColumns+`
		FROM activity a
		WHERE a.status = $1
		ORDER BY a.start_date NULLS LAST, a.name
	`, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []db.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, *activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	return activities, nil
}

func scanActivity(row pgx.Row) (*db.Activity, error) {
	var a db.Activity
	var status string
	var enrollment int64
	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Category,
		&a.Price,
		&a.Capacity,
		&a.DurationMinutes,
		&status,
		&a.StartDate,
		&a.RecurrenceRule,
		&enrollment,
	); err != nil {
		return nil, err
	}
	a.Status = db.ActivityStatus(status)
	a.CurrentEnrollment = int(enrollment)
	return &a, nil
}
