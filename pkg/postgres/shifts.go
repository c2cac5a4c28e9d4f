package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/emreacar/nurseshift/pkg/core/model"
	"github.com/emreacar/nurseshift/pkg/core/scheduler"
)

// BulkCreateShifts inserts the planned demands for a schedule in a single
// transaction and returns them with their generated ids, in input order
func (db *DB) BulkCreateShifts(ctx context.Context, scheduleID string, demands []scheduler.ShiftDemand) ([]scheduler.ShiftDemand, error) {
	if len(demands) == 0 {
		return nil, nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	created := make([]scheduler.ShiftDemand, len(demands))
	for i, demand := range demands {
		demand.ID = uuid.New().String()
		_, err := tx.Exec(ctx, `
			INSERT INTO shift (id, schedule_id, shift_date, type, start_time, end_time, required_staff)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, demand.ID, scheduleID, demand.Date, demand.Type, demand.StartTime, demand.EndTime, demand.RequiredStaff)
		if err != nil {
			return nil, fmt.Errorf("failed to insert shift for %s: %w", demand.Date, err)
		}
		created[i] = demand
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return created, nil
}

// BulkCreateAssignments inserts assignments in a single transaction and
// returns how many were written
func (db *DB) BulkCreateAssignments(ctx context.Context, assignments []model.Assignment) (int, error) {
	if len(assignments) == 0 {
		return 0, nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO shift_assignment (id, shift_id, nurse_id, assigned_by)
			VALUES ($1, $2, $3, $4)
		`, a.ID, a.ShiftID, a.NurseID, a.AssignedBy)
		if err != nil {
			return 0, fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(assignments), nil
}

// GetShiftByID returns a shift by id, or nil when not found
func (db *DB) GetShiftByID(ctx context.Context, id string) (*model.Shift, error) {
	var s model.Shift
	err := db.pool.QueryRow(ctx, `
		SELECT id, schedule_id, shift_date, type, start_time, end_time, required_staff
		FROM shift
		WHERE id = $1
	`, id).Scan(&s.ID, &s.ScheduleID, &s.Date, &s.Type, &s.StartTime, &s.EndTime, &s.RequiredStaff)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shift %s: %w", id, err)
	}
	return &s, nil
}

// GetShiftsByMonth retrieves all shifts generated for a month, ordered by
// date and start time
func (db *DB) GetShiftsByMonth(ctx context.Context, month string) ([]model.Shift, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT s.id, s.schedule_id, s.shift_date, s.type, s.start_time, s.end_time, s.required_staff
		FROM shift s
		JOIN schedule sc ON sc.id = s.schedule_id
		WHERE sc.month = $1
		ORDER BY s.shift_date, s.start_time
	`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		var s model.Shift
		if err := rows.Scan(&s.ID, &s.ScheduleID, &s.Date, &s.Type, &s.StartTime, &s.EndTime, &s.RequiredStaff); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// NurseAssignedOnDate reports whether the nurse already has any
// assignment on the date
func (db *DB) NurseAssignedOnDate(ctx context.Context, nurseID string, date string) (bool, error) {
	var assigned bool
	err := db.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM shift_assignment a
			JOIN shift s ON s.id = a.shift_id
			WHERE a.nurse_id = $1 AND s.shift_date = $2
		)
	`, nurseID, date).Scan(&assigned)
	if err != nil {
		return false, fmt.Errorf("failed to check assignments for %s: %w", date, err)
	}
	return assigned, nil
}

// InsertAssignment writes a single assignment
func (db *DB) InsertAssignment(ctx context.Context, a *model.Assignment) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO shift_assignment (id, shift_id, nurse_id, assigned_by)
		VALUES ($1, $2, $3, $4)
	`, a.ID, a.ShiftID, a.NurseID, a.AssignedBy)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

// DeleteAssignmentByShiftAndNurse removes a nurse from a shift and
// reports whether an assignment existed
func (db *DB) DeleteAssignmentByShiftAndNurse(ctx context.Context, shiftID string, nurseID string) (bool, error) {
	tag, err := db.pool.Exec(ctx, `
		DELETE FROM shift_assignment
		WHERE shift_id = $1 AND nurse_id = $2
	`, shiftID, nurseID)
	if err != nil {
		return false, fmt.Errorf("failed to delete assignment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetShiftsWithAssignments retrieves a schedule's shifts with their
// assignments and completeness status, ordered by date and start time
func (db *DB) GetShiftsWithAssignments(ctx context.Context, scheduleID string) ([]model.ShiftWithAssignments, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT s.id, s.schedule_id, s.shift_date, s.type, s.start_time, s.end_time, s.required_staff,
		       c.staff_count, c.responsible_count, c.is_complete
		FROM shift s
		JOIN shift_completeness c ON c.shift_id = s.id
		WHERE s.schedule_id = $1
		ORDER BY s.shift_date, s.start_time
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.ShiftWithAssignments
	indexByID := make(map[string]int)
	for rows.Next() {
		var s model.ShiftWithAssignments
		if err := rows.Scan(&s.ID, &s.ScheduleID, &s.Date, &s.Type, &s.StartTime, &s.EndTime,
			&s.RequiredStaff, &s.StaffCount, &s.ResponsibleCount, &s.IsComplete); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		s.Assignments = []model.AssignmentDetail{}
		indexByID[s.ID] = len(shifts)
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	assignmentRows, err := db.pool.Query(ctx, `
		SELECT a.id, a.shift_id, a.nurse_id, a.assigned_by, n.name, n.role
		FROM shift_assignment a
		JOIN shift s ON s.id = a.shift_id
		JOIN nurse n ON n.id = a.nurse_id
		WHERE s.schedule_id = $1
		ORDER BY n.role DESC, n.name
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer assignmentRows.Close()

	for assignmentRows.Next() {
		var a model.AssignmentDetail
		if err := assignmentRows.Scan(&a.ID, &a.ShiftID, &a.NurseID, &a.AssignedBy, &a.NurseName, &a.NurseRole); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if i, ok := indexByID[a.ShiftID]; ok {
			shifts[i].Assignments = append(shifts[i].Assignments, a)
		}
	}
	if err := assignmentRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return shifts, nil
}
