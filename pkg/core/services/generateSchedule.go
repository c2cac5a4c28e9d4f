package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/emreacar/nurseshift/internal/config"
	"github.com/emreacar/nurseshift/pkg/core/model"
	"github.com/emreacar/nurseshift/pkg/core/scheduler"
)

// ErrScheduleExists is returned when a schedule already exists for the
// requested month and force regeneration was not requested
var ErrScheduleExists = errors.New("a schedule already exists for this month")

// GenerateScheduleResult contains the generated schedule and the engine's
// run summary
type GenerateScheduleResult struct {
	Schedule *model.Schedule
	Run      *scheduler.Result
}

// GenerateScheduleStore defines the database operations needed for
// generating a schedule
type GenerateScheduleStore interface {
	scheduler.Store

	// GetScheduleByMonth returns nil (with no error) when no schedule
	// exists for the month
	GetScheduleByMonth(ctx context.Context, month string) (*model.Schedule, error)
	CreateSchedule(ctx context.Context, schedule *model.Schedule) error

	// DeleteSchedule removes a schedule and, through cascade, its shifts
	// and assignments
	DeleteSchedule(ctx context.Context, id string) error
}

// GenerateSchedule creates a schedule record for the YYYY-MM month and runs
// the assignment engine against it. If force is true an existing schedule
// for the month is deleted and regenerated; otherwise ErrScheduleExists is
// returned.
func GenerateSchedule(
	ctx context.Context,
	database GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	month string,
	force bool,
) (*GenerateScheduleResult, error) {
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", month, err)
	}

	logger.Info("Generating schedule", zap.String("month", month), zap.Bool("force", force))

	existing, err := database.GetScheduleByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing schedule: %w", err)
	}
	if existing != nil {
		if !force {
			return nil, fmt.Errorf("%w: %s", ErrScheduleExists, month)
		}
		logger.Info("Deleting existing schedule", zap.String("schedule_id", existing.ID))
		if err := database.DeleteSchedule(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to delete existing schedule: %w", err)
		}
	}

	schedule := &model.Schedule{
		ID:    uuid.New().String(),
		Month: month,
	}
	if err := database.CreateSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	engineCfg, err := buildEngineConfig(cfg, monthStart)
	if err != nil {
		return nil, err
	}

	run, err := scheduler.New(database, engineCfg, logger).Generate(ctx, schedule.ID, month)
	if err != nil {
		// Keep the database free of half-generated months. Precondition
		// failures happen before any shift is written, so only the
		// schedule row itself needs cleaning up.
		if delErr := database.DeleteSchedule(ctx, schedule.ID); delErr != nil {
			logger.Error("Failed to clean up schedule after generation failure",
				zap.String("schedule_id", schedule.ID),
				zap.Error(delErr))
		}
		return nil, err
	}

	schedule.FairnessScore = &run.Fairness.Overall

	return &GenerateScheduleResult{
		Schedule: schedule,
		Run:      run,
	}, nil
}

// buildEngineConfig translates the yaml-level weekend preset and holiday
// rrules into the engine's calendar strategies
func buildEngineConfig(cfg *config.Config, monthStart time.Time) (scheduler.Config, error) {
	weekend, err := WeekendFromPreset(cfg.WeekendPreset)
	if err != nil {
		return scheduler.Config{}, err
	}

	isHoliday, err := holidayFuncFromRules(cfg.HolidayRules, monthStart)
	if err != nil {
		return scheduler.Config{}, err
	}

	return scheduler.Config{
		Weekend:   weekend,
		IsHoliday: isHoliday,
	}, nil
}

// WeekendFromPreset maps a configuration preset name to the weekdays it
// covers. thursday_saturday is the three-day variant.
func WeekendFromPreset(preset string) (scheduler.WeekendConfig, error) {
	switch preset {
	case "", "saturday_sunday":
		return scheduler.DefaultWeekend, nil
	case "friday_saturday":
		return scheduler.WeekendConfig{
			Name: "friday_saturday",
			Days: []time.Weekday{time.Friday, time.Saturday},
		}, nil
	case "thursday_saturday":
		return scheduler.WeekendConfig{
			Name: "thursday_saturday",
			Days: []time.Weekday{time.Thursday, time.Friday, time.Saturday},
		}, nil
	default:
		return scheduler.WeekendConfig{}, fmt.Errorf("unknown weekend preset %q", preset)
	}
}

// holidayFuncFromRules expands the configured holiday rrules across the
// target month and returns a date predicate over the matched days
func holidayFuncFromRules(rules []config.HolidayRule, monthStart time.Time) (scheduler.HolidayFunc, error) {
	if len(rules) == 0 {
		return nil, nil
	}

	// Expand with a buffer around the month so rules anchored elsewhere in
	// the year still produce this month's occurrences
	searchStart := monthStart.AddDate(0, 0, -7)
	searchEnd := monthStart.AddDate(0, 1, 7)

	holidays := make(map[string]bool)
	for i, holidayRule := range rules {
		rule, err := rrule.StrToRRule(holidayRule.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for holidayRules[%d]: %w", i, err)
		}

		rule.DTStart(searchStart)
		for _, occurrence := range rule.Between(searchStart, searchEnd, true) {
			holidays[occurrence.Format("2006-01-02")] = true
		}
	}

	return func(day time.Time) bool {
		return holidays[day.Format("2006-01-02")]
	}, nil
}
