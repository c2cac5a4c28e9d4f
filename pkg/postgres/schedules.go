package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

// GetSchedules retrieves all schedules, newest month first
func (db *DB) GetSchedules(ctx context.Context) ([]model.Schedule, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, month, fairness_score, created_at
		FROM schedule
		ORDER BY month DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []model.Schedule
	for rows.Next() {
		var s model.Schedule
		if err := rows.Scan(&s.ID, &s.Month, &s.FairnessScore, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedules: %w", err)
	}

	return schedules, nil
}

// GetScheduleByMonth returns the schedule for a YYYY-MM month, or nil when
// none exists
func (db *DB) GetScheduleByMonth(ctx context.Context, month string) (*model.Schedule, error) {
	var s model.Schedule
	err := db.pool.QueryRow(ctx, `
		SELECT id, month, fairness_score, created_at
		FROM schedule
		WHERE month = $1
	`, month).Scan(&s.ID, &s.Month, &s.FairnessScore, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule for month %s: %w", month, err)
	}
	return &s, nil
}

// CreateSchedule inserts a schedule record
func (db *DB) CreateSchedule(ctx context.Context, schedule *model.Schedule) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO schedule (id, month)
		VALUES ($1, $2)
	`, schedule.ID, schedule.Month)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}
	return nil
}

// DeleteSchedule removes a schedule; shifts and assignments cascade
func (db *DB) DeleteSchedule(ctx context.Context, id string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM schedule WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}

// UpdateScheduleFairnessScore stores the overall fairness score after a
// generation run
func (db *DB) UpdateScheduleFairnessScore(ctx context.Context, scheduleID string, overall float64) error {
	_, err := db.pool.Exec(ctx, `
		UPDATE schedule SET fairness_score = $2 WHERE id = $1
	`, scheduleID, overall)
	if err != nil {
		return fmt.Errorf("failed to update fairness score: %w", err)
	}
	return nil
}
