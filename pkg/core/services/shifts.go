package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emreacar/nurseshift/pkg/core/model"
	"github.com/emreacar/nurseshift/pkg/core/scheduler"
)

var (
	// ErrShiftNotFound is returned when a shift ID does not exist
	ErrShiftNotFound = errors.New("shift not found")

	// ErrNurseOnLeave is returned when a manual assignment targets a
	// nurse with a blocking leave on the shift date
	ErrNurseOnLeave = errors.New("nurse is on leave on the shift date")

	// ErrNurseAlreadyBooked is returned when the nurse already has a
	// shift on the same date
	ErrNurseAlreadyBooked = errors.New("nurse already has a shift on this date")

	// ErrAssignmentNotFound is returned when unassigning a nurse who is
	// not on the shift
	ErrAssignmentNotFound = errors.New("nurse is not assigned to this shift")
)

// ShiftStore defines the database operations needed for manual shift
// editing
type ShiftStore interface {
	// GetShiftByID returns nil (with no error) for unknown IDs
	GetShiftByID(ctx context.Context, id string) (*model.Shift, error)
	GetShiftsByMonth(ctx context.Context, month string) ([]model.Shift, error)
	GetNurseByID(ctx context.Context, id string) (*model.Nurse, error)

	// FindLeaves returns all leaves overlapping the YYYY-MM month
	FindLeaves(ctx context.Context, month string) ([]model.Leave, error)

	// NurseAssignedOnDate reports whether the nurse already has any
	// assignment on the YYYY-MM-DD date
	NurseAssignedOnDate(ctx context.Context, nurseID string, date string) (bool, error)
	InsertAssignment(ctx context.Context, assignment *model.Assignment) error

	// DeleteAssignmentByShiftAndNurse reports whether an assignment was
	// actually removed
	DeleteAssignmentByShiftAndNurse(ctx context.Context, shiftID string, nurseID string) (bool, error)
}

// ListShifts returns all shifts generated for a YYYY-MM month in date
// order
func ListShifts(ctx context.Context, database ShiftStore, month string) ([]model.Shift, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", month, err)
	}

	shifts, err := database.GetShiftsByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}

	return shifts, nil
}

// AssignNurseToShift manually places a nurse on a shift. The same hard
// constraints the engine enforces apply: a blocking leave on the shift
// date and an existing assignment on the same date both reject the edit.
// The assignment is marked as a manual one.
func AssignNurseToShift(ctx context.Context, database ShiftStore, logger *zap.Logger, shiftID string, nurseID string) (*model.Assignment, error) {
	shift, err := database.GetShiftByID(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up shift: %w", err)
	}
	if shift == nil {
		return nil, fmt.Errorf("%w: %s", ErrShiftNotFound, shiftID)
	}

	nurse, err := database.GetNurseByID(ctx, nurseID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up nurse: %w", err)
	}
	if nurse == nil {
		return nil, fmt.Errorf("%w: %s", ErrNurseNotFound, nurseID)
	}

	leaves, err := database.FindLeaves(ctx, shift.Date[:7])
	if err != nil {
		return nil, fmt.Errorf("failed to load leaves: %w", err)
	}
	if scheduler.IsOnLeave(leaves, nurseID, shift.Date) {
		return nil, fmt.Errorf("%w: %s on %s", ErrNurseOnLeave, nurse.Name, shift.Date)
	}

	booked, err := database.NurseAssignedOnDate(ctx, nurseID, shift.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing assignments: %w", err)
	}
	if booked {
		return nil, fmt.Errorf("%w: %s on %s", ErrNurseAlreadyBooked, nurse.Name, shift.Date)
	}

	assignment := &model.Assignment{
		ID:         uuid.New().String(),
		ShiftID:    shiftID,
		NurseID:    nurseID,
		AssignedBy: model.AssignedByManual,
	}

	if err := database.InsertAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to insert assignment: %w", err)
	}

	logger.Info("Nurse assigned manually",
		zap.String("shift_id", shiftID),
		zap.String("nurse", nurse.Name),
		zap.String("date", shift.Date))

	return assignment, nil
}

// UnassignNurseFromShift removes a nurse from a shift, whether the
// assignment was made by the engine or manually
func UnassignNurseFromShift(ctx context.Context, database ShiftStore, logger *zap.Logger, shiftID string, nurseID string) error {
	removed, err := database.DeleteAssignmentByShiftAndNurse(ctx, shiftID, nurseID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: shift %s, nurse %s", ErrAssignmentNotFound, shiftID, nurseID)
	}

	logger.Info("Nurse unassigned",
		zap.String("shift_id", shiftID),
		zap.String("nurse_id", nurseID))

	return nil
}
