package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

// GetLeaves retrieves all leaves joined with nurse names, newest first
func (db *DB) GetLeaves(ctx context.Context) ([]model.Leave, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT l.id, l.nurse_id, n.name, l.type, l.start_date, l.end_date, l.created_at
		FROM leave l
		JOIN nurse n ON n.id = l.nurse_id
		ORDER BY l.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaves: %w", err)
	}
	defer rows.Close()

	var leaves []model.Leave
	for rows.Next() {
		var l model.Leave
		if err := rows.Scan(&l.ID, &l.NurseID, &l.NurseName, &l.Type, &l.StartDate, &l.EndDate, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaves: %w", err)
	}

	return leaves, nil
}

// FindLeaves retrieves leaves overlapping the YYYY-MM month. Records with
// a missing bound never overlap anything and are excluded here; the engine
// ignores them anyway.
func (db *DB) FindLeaves(ctx context.Context, month string) ([]model.Leave, error) {
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}
	firstDay := monthStart.Format("2006-01-02")
	lastDay := monthStart.AddDate(0, 1, -1).Format("2006-01-02")

	rows, err := db.pool.Query(ctx, `
		SELECT l.id, l.nurse_id, n.name, l.type, l.start_date, l.end_date, l.created_at
		FROM leave l
		JOIN nurse n ON n.id = l.nurse_id
		WHERE l.start_date <> '' AND l.end_date <> ''
		  AND l.start_date <= $2 AND l.end_date >= $1
		ORDER BY l.start_date
	`, firstDay, lastDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaves for month %s: %w", month, err)
	}
	defer rows.Close()

	var leaves []model.Leave
	for rows.Next() {
		var l model.Leave
		if err := rows.Scan(&l.ID, &l.NurseID, &l.NurseName, &l.Type, &l.StartDate, &l.EndDate, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaves: %w", err)
	}

	return leaves, nil
}

// GetLeaveByID returns a leave by id joined with the nurse name, or nil
// when not found
func (db *DB) GetLeaveByID(ctx context.Context, id string) (*model.Leave, error) {
	var l model.Leave
	err := db.pool.QueryRow(ctx, `
		SELECT l.id, l.nurse_id, n.name, l.type, l.start_date, l.end_date, l.created_at
		FROM leave l
		JOIN nurse n ON n.id = l.nurse_id
		WHERE l.id = $1
	`, id).Scan(&l.ID, &l.NurseID, &l.NurseName, &l.Type, &l.StartDate, &l.EndDate, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query leave %s: %w", id, err)
	}
	return &l, nil
}

// InsertLeave records a leave for a nurse
func (db *DB) InsertLeave(ctx context.Context, leave *model.Leave) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO leave (id, nurse_id, type, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
	`, leave.ID, leave.NurseID, leave.Type, leave.StartDate, leave.EndDate)
	if err != nil {
		return fmt.Errorf("failed to insert leave: %w", err)
	}
	return nil
}

// UpdateLeave replaces a leave's type and date bounds
func (db *DB) UpdateLeave(ctx context.Context, leave *model.Leave) error {
	_, err := db.pool.Exec(ctx, `
		UPDATE leave
		SET type = $2, start_date = $3, end_date = $4
		WHERE id = $1
	`, leave.ID, leave.Type, leave.StartDate, leave.EndDate)
	if err != nil {
		return fmt.Errorf("failed to update leave %s: %w", leave.ID, err)
	}
	return nil
}

// DeleteLeave removes a leave record
func (db *DB) DeleteLeave(ctx context.Context, id string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM leave WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave: %w", err)
	}
	return nil
}
