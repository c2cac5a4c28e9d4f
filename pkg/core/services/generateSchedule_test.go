package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emreacar/nurseshift/internal/config"
	"github.com/emreacar/nurseshift/pkg/core/model"
	"github.com/emreacar/nurseshift/pkg/core/scheduler"
)

// fakeScheduleStore is an in-memory GenerateScheduleStore
type fakeScheduleStore struct {
	responsible *model.Nurse
	staff       []model.Nurse
	leaves      []model.Leave

	schedulesByMonth map[string]*model.Schedule
	created          []*model.Schedule
	deleted          []string
	shiftCount       int
	assignments      []model.Assignment
	fairness         map[string]float64
}

func newFakeScheduleStore() *fakeScheduleStore {
	staff := make([]model.Nurse, 4)
	for i := range staff {
		id := fmt.Sprintf("staff-%d", i+1)
		staff[i] = model.Nurse{ID: id, Name: "Nurse " + id, Role: model.RoleStaff}
	}
	return &fakeScheduleStore{
		responsible:      &model.Nurse{ID: "resp-1", Name: "Resp", Role: model.RoleResponsible},
		staff:            staff,
		schedulesByMonth: map[string]*model.Schedule{},
		fairness:         map[string]float64{},
	}
}

func (s *fakeScheduleStore) FindResponsibleNurse(ctx context.Context) (*model.Nurse, error) {
	return s.responsible, nil
}

func (s *fakeScheduleStore) FindStaffNurses(ctx context.Context) ([]model.Nurse, error) {
	return s.staff, nil
}

func (s *fakeScheduleStore) FindLeaves(ctx context.Context, month string) ([]model.Leave, error) {
	return s.leaves, nil
}

func (s *fakeScheduleStore) BulkCreateShifts(ctx context.Context, scheduleID string, demands []scheduler.ShiftDemand) ([]scheduler.ShiftDemand, error) {
	created := make([]scheduler.ShiftDemand, len(demands))
	for i, demand := range demands {
		demand.ID = fmt.Sprintf("shift-%03d", i+1)
		created[i] = demand
	}
	s.shiftCount += len(created)
	return created, nil
}

func (s *fakeScheduleStore) BulkCreateAssignments(ctx context.Context, assignments []model.Assignment) (int, error) {
	s.assignments = append(s.assignments, assignments...)
	return len(assignments), nil
}

func (s *fakeScheduleStore) UpdateScheduleFairnessScore(ctx context.Context, scheduleID string, overall float64) error {
	s.fairness[scheduleID] = overall
	return nil
}

func (s *fakeScheduleStore) GetScheduleByMonth(ctx context.Context, month string) (*model.Schedule, error) {
	return s.schedulesByMonth[month], nil
}

func (s *fakeScheduleStore) CreateSchedule(ctx context.Context, schedule *model.Schedule) error {
	s.schedulesByMonth[schedule.Month] = schedule
	s.created = append(s.created, schedule)
	return nil
}

func (s *fakeScheduleStore) DeleteSchedule(ctx context.Context, id string) error {
	for month, schedule := range s.schedulesByMonth {
		if schedule.ID == id {
			delete(s.schedulesByMonth, month)
		}
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func TestGenerateSchedule_HappyPath(t *testing.T) {
	store := newFakeScheduleStore()
	cfg := &config.Config{DatabaseDSN: "unused", WeekendPreset: "saturday_sunday"}

	result, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), "2025-06", false)
	require.NoError(t, err)

	// June 2025: 21 weekdays with two shifts, 9 weekend days with one
	assert.Equal(t, 51, result.Run.ShiftCount)
	assert.Equal(t, "2025-06", result.Schedule.Month)
	require.NotNil(t, result.Schedule.FairnessScore)
	assert.Equal(t, result.Run.Fairness.Overall, *result.Schedule.FairnessScore)

	require.Len(t, store.created, 1)
	assert.Equal(t, store.fairness[result.Schedule.ID], result.Run.Fairness.Overall)
	assert.Empty(t, store.deleted)
}

func TestGenerateSchedule_InvalidMonth(t *testing.T) {
	store := newFakeScheduleStore()
	cfg := &config.Config{DatabaseDSN: "unused"}

	_, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), "06-2025", false)

	assert.Error(t, err)
	assert.Empty(t, store.created)
}

func TestGenerateSchedule_ExistingMonth(t *testing.T) {
	store := newFakeScheduleStore()
	store.schedulesByMonth["2025-06"] = &model.Schedule{ID: "old-1", Month: "2025-06"}
	cfg := &config.Config{DatabaseDSN: "unused"}

	_, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), "2025-06", false)

	assert.ErrorIs(t, err, ErrScheduleExists)
	assert.Empty(t, store.deleted)
}

func TestGenerateSchedule_ForceRegenerates(t *testing.T) {
	store := newFakeScheduleStore()
	store.schedulesByMonth["2025-06"] = &model.Schedule{ID: "old-1", Month: "2025-06"}
	cfg := &config.Config{DatabaseDSN: "unused"}

	result, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), "2025-06", true)
	require.NoError(t, err)

	assert.Contains(t, store.deleted, "old-1")
	assert.NotEqual(t, "old-1", result.Schedule.ID)
}

func TestGenerateSchedule_PreconditionCleansUp(t *testing.T) {
	store := newFakeScheduleStore()
	store.responsible = nil
	cfg := &config.Config{DatabaseDSN: "unused"}

	_, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), "2025-06", false)

	assert.ErrorIs(t, err, scheduler.ErrNoResponsibleNurse)
	// the schedule row created before the engine ran must not linger
	require.Len(t, store.created, 1)
	assert.Contains(t, store.deleted, store.created[0].ID)
	assert.Empty(t, store.schedulesByMonth)
}

func TestGenerateSchedule_UnknownPreset(t *testing.T) {
	store := newFakeScheduleStore()
	cfg := &config.Config{DatabaseDSN: "unused", WeekendPreset: "sunday_monday"}

	_, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), "2025-06", false)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown weekend preset")
}

func TestWeekendFromPreset(t *testing.T) {
	weekend, err := WeekendFromPreset("")
	require.NoError(t, err)
	assert.Equal(t, scheduler.DefaultWeekend.Name, weekend.Name)

	weekend, err = WeekendFromPreset("friday_saturday")
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Friday, time.Saturday}, weekend.Days)

	weekend, err = WeekendFromPreset("thursday_saturday")
	require.NoError(t, err)
	assert.Len(t, weekend.Days, 3)

	_, err = WeekendFromPreset("every_day")
	assert.Error(t, err)
}

func TestHolidayFuncFromRules(t *testing.T) {
	isHoliday, err := holidayFuncFromRules(nil, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, isHoliday)

	rules := []config.HolidayRule{
		{Name: "Labour Day", RRule: "FREQ=YEARLY;BYMONTH=5;BYMONTHDAY=1"},
	}
	isHoliday, err = holidayFuncFromRules(rules, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, isHoliday)

	assert.True(t, isHoliday(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, isHoliday(time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)))
}

func TestHolidayFuncFromRules_InvalidRule(t *testing.T) {
	rules := []config.HolidayRule{{RRule: "NOT_AN_RRULE"}}

	_, err := holidayFuncFromRules(rules, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	assert.Error(t, err)
}

func TestGenerateSchedule_HolidayProducesSingleShift(t *testing.T) {
	store := newFakeScheduleStore()
	cfg := &config.Config{
		DatabaseDSN: "unused",
		HolidayRules: []config.HolidayRule{
			// Labour Day 2025 falls on a Thursday
			{Name: "Labour Day", RRule: "FREQ=YEARLY;BYMONTH=5;BYMONTHDAY=1"},
		},
	}

	result, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), "2025-05", false)
	require.NoError(t, err)

	// May 2025: 9 weekend days, 22 weekdays of which one is the holiday:
	// 21*2 + 10*1 shifts
	assert.Equal(t, 52, result.Run.ShiftCount)
}
