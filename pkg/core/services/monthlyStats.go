package services

import (
	"context"
	"fmt"
	"time"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

// MonthlyStatsStore defines the database operations needed for workload
// reporting
type MonthlyStatsStore interface {
	GetMonthlyNurseStats(ctx context.Context, month string) ([]model.NurseMonthlyStats, error)
}

// NurseStatsStore adds the lookups needed for the per-nurse detail view
type NurseStatsStore interface {
	MonthlyStatsStore

	GetNurseByID(ctx context.Context, id string) (*model.Nurse, error)

	// GetNurseShiftsForMonth returns the shifts a nurse is assigned to in
	// the YYYY-MM month, in date order
	GetNurseShiftsForMonth(ctx context.Context, nurseID string, month string) ([]model.Shift, error)
}

// MonthlyStats returns per-nurse workload aggregates for a YYYY-MM month
func MonthlyStats(ctx context.Context, database MonthlyStatsStore, month string) ([]model.NurseMonthlyStats, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", month, err)
	}

	stats, err := database.GetMonthlyNurseStats(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly stats: %w", err)
	}

	return stats, nil
}

// NurseMonthlyDetail returns one nurse's monthly totals with the shifts
// behind them. A nurse with no assignments in the month gets a zeroed
// stats row, not an error.
func NurseMonthlyDetail(ctx context.Context, database NurseStatsStore, month string, nurseID string) (*model.NurseScheduleDetail, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", month, err)
	}

	nurse, err := database.GetNurseByID(ctx, nurseID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up nurse: %w", err)
	}
	if nurse == nil {
		return nil, fmt.Errorf("%w: %s", ErrNurseNotFound, nurseID)
	}

	stats, err := database.GetMonthlyNurseStats(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly stats: %w", err)
	}

	detail := &model.NurseScheduleDetail{
		NurseMonthlyStats: model.NurseMonthlyStats{
			NurseID:   nurse.ID,
			NurseName: nurse.Name,
			Role:      nurse.Role,
		},
	}
	for _, row := range stats {
		if row.NurseID == nurseID {
			detail.NurseMonthlyStats = row
			break
		}
	}

	shifts, err := database.GetNurseShiftsForMonth(ctx, nurseID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nurse shifts: %w", err)
	}
	detail.Shifts = shifts

	return detail, nil
}
