package postgres

import (
	"context"
	"fmt"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

// GetMonthlyNurseStats aggregates hours and shift counts per nurse for the
// schedule of a YYYY-MM month. Nurses without assignments appear with
// zeroes.
func (db *DB) GetMonthlyNurseStats(ctx context.Context, month string) ([]model.NurseMonthlyStats, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT n.id, n.name, n.role,
		       COALESCE(SUM(CASE s.type
		           WHEN 'day_8h' THEN 8
		           WHEN 'night_16h' THEN 16
		           WHEN 'weekend_24h' THEN 24
		       END), 0)::INT AS total_hours,
		       COUNT(s.id) FILTER (WHERE s.type = 'day_8h')::INT AS day_shifts,
		       COUNT(s.id) FILTER (WHERE s.type = 'night_16h')::INT AS night_shifts,
		       COUNT(s.id) FILTER (WHERE s.type = 'weekend_24h')::INT AS weekend_shifts
		FROM nurse n
		LEFT JOIN (
		    shift_assignment a
		    JOIN shift s ON s.id = a.shift_id
		    JOIN schedule sc ON sc.id = s.schedule_id AND sc.month = $1
		) ON a.nurse_id = n.id
		GROUP BY n.id, n.name, n.role
		ORDER BY n.name
	`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly stats: %w", err)
	}
	defer rows.Close()

	var stats []model.NurseMonthlyStats
	for rows.Next() {
		var s model.NurseMonthlyStats
		if err := rows.Scan(&s.NurseID, &s.NurseName, &s.Role,
			&s.TotalHours, &s.DayShifts, &s.NightShifts, &s.WeekendShifts); err != nil {
			return nil, fmt.Errorf("failed to scan monthly stats: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly stats: %w", err)
	}

	return stats, nil
}

// GetNurseShiftsForMonth retrieves the shifts a nurse is assigned to in
// the schedule of a YYYY-MM month, in date order
func (db *DB) GetNurseShiftsForMonth(ctx context.Context, nurseID string, month string) ([]model.Shift, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT s.id, s.schedule_id, s.shift_date, s.type, s.start_time, s.end_time, s.required_staff
		FROM shift s
		JOIN shift_assignment a ON a.shift_id = s.id
		JOIN schedule sc ON sc.id = s.schedule_id
		WHERE a.nurse_id = $1 AND sc.month = $2
		ORDER BY s.shift_date, s.start_time
	`, nurseID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query nurse shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		var s model.Shift
		if err := rows.Scan(&s.ID, &s.ScheduleID, &s.Date, &s.Type, &s.StartTime, &s.EndTime, &s.RequiredStaff); err != nil {
			return nil, fmt.Errorf("failed to scan nurse shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nurse shifts: %w", err)
	}

	return shifts, nil
}
