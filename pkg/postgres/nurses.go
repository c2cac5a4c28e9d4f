package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

// GetNurses retrieves the full roster in name order
func (db *DB) GetNurses(ctx context.Context) ([]model.Nurse, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, name, role, created_at
		FROM nurse
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nurses: %w", err)
	}
	defer rows.Close()

	var nurses []model.Nurse
	for rows.Next() {
		var n model.Nurse
		if err := rows.Scan(&n.ID, &n.Name, &n.Role, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan nurse: %w", err)
		}
		nurses = append(nurses, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nurses: %w", err)
	}

	return nurses, nil
}

// FindResponsibleNurse returns the responsible nurse, or nil when the
// roster has none
func (db *DB) FindResponsibleNurse(ctx context.Context) (*model.Nurse, error) {
	var n model.Nurse
	err := db.pool.QueryRow(ctx, `
		SELECT id, name, role, created_at
		FROM nurse
		WHERE role = 'responsible'
	`).Scan(&n.ID, &n.Name, &n.Role, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query responsible nurse: %w", err)
	}
	return &n, nil
}

// FindStaffNurses retrieves staff nurses in name order. The order fixes
// the engine's tie-break, so it must stay deterministic.
func (db *DB) FindStaffNurses(ctx context.Context) ([]model.Nurse, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, name, role, created_at
		FROM nurse
		WHERE role = 'staff'
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff nurses: %w", err)
	}
	defer rows.Close()

	var nurses []model.Nurse
	for rows.Next() {
		var n model.Nurse
		if err := rows.Scan(&n.ID, &n.Name, &n.Role, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan nurse: %w", err)
		}
		nurses = append(nurses, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff nurses: %w", err)
	}

	return nurses, nil
}

// GetNurseByID returns a nurse by id, or nil when not found
func (db *DB) GetNurseByID(ctx context.Context, id string) (*model.Nurse, error) {
	var n model.Nurse
	err := db.pool.QueryRow(ctx, `
		SELECT id, name, role, created_at
		FROM nurse
		WHERE id = $1
	`, id).Scan(&n.ID, &n.Name, &n.Role, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query nurse %s: %w", id, err)
	}
	return &n, nil
}

// InsertNurse adds a nurse to the roster
func (db *DB) InsertNurse(ctx context.Context, nurse *model.Nurse) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO nurse (id, name, role)
		VALUES ($1, $2, $3)
	`, nurse.ID, nurse.Name, nurse.Role)
	if err != nil {
		return fmt.Errorf("failed to insert nurse: %w", err)
	}
	return nil
}

// UpdateNurseName changes a nurse's display name
func (db *DB) UpdateNurseName(ctx context.Context, id string, name string) error {
	_, err := db.pool.Exec(ctx, `UPDATE nurse SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return fmt.Errorf("failed to update nurse %s: %w", id, err)
	}
	return nil
}

// DeleteNurse removes a nurse; leaves and assignments cascade
func (db *DB) DeleteNurse(ctx context.Context, id string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM nurse WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete nurse: %w", err)
	}
	return nil
}
