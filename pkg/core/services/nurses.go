package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

// ErrResponsibleExists is returned when adding a second responsible nurse.
// The roster carries exactly one.
var ErrResponsibleExists = errors.New("a responsible nurse already exists")

// ErrNurseNotFound is returned when a nurse ID does not exist
var ErrNurseNotFound = errors.New("nurse not found")

// NurseStore defines the database operations needed for roster management
type NurseStore interface {
	GetNurses(ctx context.Context) ([]model.Nurse, error)

	// GetNurseByID returns nil (with no error) for unknown IDs
	GetNurseByID(ctx context.Context, id string) (*model.Nurse, error)

	// FindResponsibleNurse returns nil (with no error) when the roster
	// has no responsible nurse
	FindResponsibleNurse(ctx context.Context) (*model.Nurse, error)
	InsertNurse(ctx context.Context, nurse *model.Nurse) error
	UpdateNurseName(ctx context.Context, id string, name string) error
	DeleteNurse(ctx context.Context, id string) error
}

// AddNurse validates and inserts a nurse into the roster
func AddNurse(ctx context.Context, database NurseStore, logger *zap.Logger, name string, role model.NurseRole) (*model.Nurse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("nurse name must not be empty")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid nurse role %q", role)
	}

	if role == model.RoleResponsible {
		existing, err := database.FindResponsibleNurse(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to check for responsible nurse: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: %s", ErrResponsibleExists, existing.Name)
		}
	}

	nurse := &model.Nurse{
		ID:   uuid.New().String(),
		Name: name,
		Role: role,
	}

	if err := database.InsertNurse(ctx, nurse); err != nil {
		return nil, fmt.Errorf("failed to insert nurse: %w", err)
	}

	logger.Info("Nurse added",
		zap.String("nurse_id", nurse.ID),
		zap.String("name", nurse.Name),
		zap.String("role", string(nurse.Role)))

	return nurse, nil
}

// GetNurse looks up a single nurse, returning ErrNurseNotFound for
// unknown IDs
func GetNurse(ctx context.Context, database NurseStore, id string) (*model.Nurse, error) {
	nurse, err := database.GetNurseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up nurse: %w", err)
	}
	if nurse == nil {
		return nil, fmt.Errorf("%w: %s", ErrNurseNotFound, id)
	}
	return nurse, nil
}

// RenameNurse updates a nurse's display name
func RenameNurse(ctx context.Context, database NurseStore, logger *zap.Logger, id string, name string) (*model.Nurse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("nurse name must not be empty")
	}

	nurse, err := GetNurse(ctx, database, id)
	if err != nil {
		return nil, err
	}

	if err := database.UpdateNurseName(ctx, id, name); err != nil {
		return nil, fmt.Errorf("failed to update nurse: %w", err)
	}

	logger.Info("Nurse renamed",
		zap.String("nurse_id", id),
		zap.String("old_name", nurse.Name),
		zap.String("new_name", name))

	nurse.Name = name
	return nurse, nil
}

// ListNurses returns the full roster in name order
func ListNurses(ctx context.Context, database NurseStore) ([]model.Nurse, error) {
	nurses, err := database.GetNurses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nurses: %w", err)
	}
	return nurses, nil
}

// RemoveNurse deletes a nurse and, through cascade, their leaves and
// assignments
func RemoveNurse(ctx context.Context, database NurseStore, logger *zap.Logger, id string) error {
	if err := database.DeleteNurse(ctx, id); err != nil {
		return fmt.Errorf("failed to delete nurse: %w", err)
	}
	logger.Info("Nurse removed", zap.String("nurse_id", id))
	return nil
}
