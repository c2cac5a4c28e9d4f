package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

// ErrLeaveNotFound is returned when a leave ID does not exist
var ErrLeaveNotFound = errors.New("leave not found")

// LeaveStore defines the database operations needed for leave management
type LeaveStore interface {
	GetLeaves(ctx context.Context) ([]model.Leave, error)

	// GetLeaveByID returns nil (with no error) for unknown IDs
	GetLeaveByID(ctx context.Context, id string) (*model.Leave, error)
	GetNurseByID(ctx context.Context, id string) (*model.Nurse, error)
	InsertLeave(ctx context.Context, leave *model.Leave) error
	UpdateLeave(ctx context.Context, leave *model.Leave) error
	DeleteLeave(ctx context.Context, id string) error
}

// AddLeave validates and records a leave for a nurse. Dates are inclusive
// YYYY-MM-DD bounds.
func AddLeave(
	ctx context.Context,
	database LeaveStore,
	logger *zap.Logger,
	nurseID string,
	leaveType model.LeaveType,
	startDate string,
	endDate string,
) (*model.Leave, error) {
	if !leaveType.IsValid() {
		return nil, fmt.Errorf("invalid leave type %q", leaveType)
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q, expected YYYY-MM-DD: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q, expected YYYY-MM-DD: %w", endDate, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", endDate, startDate)
	}

	nurse, err := database.GetNurseByID(ctx, nurseID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up nurse: %w", err)
	}
	if nurse == nil {
		return nil, fmt.Errorf("nurse %s not found", nurseID)
	}

	leave := &model.Leave{
		ID:        uuid.New().String(),
		NurseID:   nurseID,
		NurseName: nurse.Name,
		Type:      leaveType,
		StartDate: startDate,
		EndDate:   endDate,
	}

	if err := database.InsertLeave(ctx, leave); err != nil {
		return nil, fmt.Errorf("failed to insert leave: %w", err)
	}

	logger.Info("Leave added",
		zap.String("leave_id", leave.ID),
		zap.String("nurse", nurse.Name),
		zap.String("type", string(leaveType)),
		zap.String("start", startDate),
		zap.String("end", endDate))

	return leave, nil
}

// GetLeave looks up a single leave, returning ErrLeaveNotFound for
// unknown IDs
func GetLeave(ctx context.Context, database LeaveStore, id string) (*model.Leave, error) {
	leave, err := database.GetLeaveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up leave: %w", err)
	}
	if leave == nil {
		return nil, fmt.Errorf("%w: %s", ErrLeaveNotFound, id)
	}
	return leave, nil
}

// EditLeave replaces a leave's type and date bounds, with the same
// validation as AddLeave
func EditLeave(
	ctx context.Context,
	database LeaveStore,
	logger *zap.Logger,
	id string,
	leaveType model.LeaveType,
	startDate string,
	endDate string,
) (*model.Leave, error) {
	if !leaveType.IsValid() {
		return nil, fmt.Errorf("invalid leave type %q", leaveType)
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q, expected YYYY-MM-DD: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q, expected YYYY-MM-DD: %w", endDate, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", endDate, startDate)
	}

	leave, err := GetLeave(ctx, database, id)
	if err != nil {
		return nil, err
	}

	leave.Type = leaveType
	leave.StartDate = startDate
	leave.EndDate = endDate

	if err := database.UpdateLeave(ctx, leave); err != nil {
		return nil, fmt.Errorf("failed to update leave: %w", err)
	}

	logger.Info("Leave updated",
		zap.String("leave_id", id),
		zap.String("type", string(leaveType)),
		zap.String("start", startDate),
		zap.String("end", endDate))

	return leave, nil
}

// ListLeaves returns all recorded leaves, newest first
func ListLeaves(ctx context.Context, database LeaveStore) ([]model.Leave, error) {
	leaves, err := database.GetLeaves(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaves: %w", err)
	}
	return leaves, nil
}

// RemoveLeave deletes a leave record
func RemoveLeave(ctx context.Context, database LeaveStore, logger *zap.Logger, id string) error {
	if err := database.DeleteLeave(ctx, id); err != nil {
		return fmt.Errorf("failed to delete leave: %w", err)
	}
	logger.Info("Leave removed", zap.String("leave_id", id))
	return nil
}
