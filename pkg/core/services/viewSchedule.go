package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

// ErrScheduleNotFound is returned when no schedule exists for the
// requested month
var ErrScheduleNotFound = errors.New("no schedule found for this month")

// ViewScheduleStore defines the database operations needed for the
// schedule detail view
type ViewScheduleStore interface {
	GetScheduleByMonth(ctx context.Context, month string) (*model.Schedule, error)
	GetShiftsWithAssignments(ctx context.Context, scheduleID string) ([]model.ShiftWithAssignments, error)
}

// ViewSchedule loads the schedule for a YYYY-MM month with its shifts
// grouped by date in chronological order
func ViewSchedule(ctx context.Context, database ViewScheduleStore, month string) (*model.ScheduleDetail, error) {
	schedule, err := database.GetScheduleByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to look up schedule: %w", err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("%w: %s", ErrScheduleNotFound, month)
	}

	shifts, err := database.GetShiftsWithAssignments(ctx, schedule.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}

	byDate := make(map[string][]model.ShiftWithAssignments)
	for _, shift := range shifts {
		byDate[shift.Date] = append(byDate[shift.Date], shift)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]model.DaySchedule, len(dates))
	for i, date := range dates {
		days[i] = model.DaySchedule{
			Date:   date,
			Shifts: byDate[date],
		}
	}

	return &model.ScheduleDetail{
		Schedule: *schedule,
		Days:     days,
	}, nil
}
