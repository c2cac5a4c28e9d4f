package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

// Precondition failures raised before any shift is created. They are
// deterministic: retrying without changing the roster reproduces them.
var (
	ErrNoResponsibleNurse = errors.New("no responsible nurse on the roster")
	ErrNotEnoughStaff     = errors.New("at least 2 staff nurses are required")
)

// Store is the persistence contract the engine runs against. The engine
// performs no other I/O: it reads the roster and leaves once at the start
// of a run and writes shifts, assignments and the fairness score in single
// bulk calls.
type Store interface {
	// FindResponsibleNurse returns nil (with no error) when the roster
	// has no responsible nurse
	FindResponsibleNurse(ctx context.Context) (*model.Nurse, error)
	FindStaffNurses(ctx context.Context) ([]model.Nurse, error)

	// FindLeaves returns all leaves overlapping the YYYY-MM month
	FindLeaves(ctx context.Context, month string) ([]model.Leave, error)

	// BulkCreateShifts persists the demands and returns them with their
	// assigned identities, in the same order
	BulkCreateShifts(ctx context.Context, scheduleID string, demands []ShiftDemand) ([]ShiftDemand, error)

	BulkCreateAssignments(ctx context.Context, assignments []model.Assignment) (int, error)
	UpdateScheduleFairnessScore(ctx context.Context, scheduleID string, overall float64) error
}

// Config carries the injectable calendar strategies
type Config struct {
	// Weekend defaults to Saturday+Sunday when Days is empty
	Weekend WeekendConfig

	// IsHoliday may be nil, meaning no holiday calendar
	IsHoliday HolidayFunc
}

// Result summarizes a completed scheduling run
type Result struct {
	Fairness        FairnessScore
	ShiftCount      int
	AssignmentCount int
	Warnings        []string
	Elapsed         time.Duration
}

// Generator runs the shift generation and nurse assignment algorithm for
// one calendar month. It is single-threaded by design: eligibility and
// consecutive-day bookkeeping depend on earlier decisions within the run,
// so days and shifts are processed in a fixed order. A Generator holds the
// state of one run; create a fresh one per run.
type Generator struct {
	store  Store
	cfg    Config
	logger *zap.Logger

	responsible *model.Nurse
	staff       []model.Nurse
	leaves      []model.Leave
	days        []Day
	ledger      *Ledger
	scheduleID  string
}

// New creates a Generator for a single scheduling run
func New(store Store, cfg Config, logger *zap.Logger) *Generator {
	if len(cfg.Weekend.Days) == 0 && cfg.Weekend.Name == "" {
		cfg.Weekend = DefaultWeekend
	}
	return &Generator{
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// Generate runs the full pipeline for the given YYYY-MM month: roster and
// leave loading, shift creation, day-by-day assignment, fairness scoring
// and warning generation. Under-staffed shifts are not an error - they
// surface through the store's completeness view and the returned warnings.
func (g *Generator) Generate(ctx context.Context, scheduleID string, month string) (*Result, error) {
	start := time.Now()
	g.scheduleID = scheduleID

	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}

	g.logger.Info("Starting schedule generation",
		zap.String("schedule_id", scheduleID),
		zap.String("month", month))

	if err := g.initialize(ctx, month, monthStart); err != nil {
		return nil, err
	}

	demandsByDate, shiftCount, err := g.createShifts(ctx)
	if err != nil {
		return nil, err
	}

	assignmentCount, err := g.assignShifts(ctx, demandsByDate)
	if err != nil {
		return nil, err
	}

	fairness := EvaluateFairness(g.ledger.All())
	g.logger.Info("Fairness evaluated",
		zap.Float64("overall", fairness.Overall),
		zap.Float64("hours_std_dev", fairness.HoursStdDev),
		zap.Float64("nights_std_dev", fairness.NightsStdDev),
		zap.Float64("weekends_std_dev", fairness.WeekendsStdDev))

	if err := g.store.UpdateScheduleFairnessScore(ctx, scheduleID, fairness.Overall); err != nil {
		return nil, fmt.Errorf("failed to store fairness score: %w", err)
	}

	warnings := BuildWarnings(g.responsible, g.leaves, g.ledger, g.days)
	for _, warning := range warnings {
		g.logger.Warn("Schedule warning", zap.String("warning", warning))
	}

	elapsed := time.Since(start)
	g.logger.Info("Schedule generated",
		zap.Int("shifts", shiftCount),
		zap.Int("assignments", assignmentCount),
		zap.Duration("elapsed", elapsed))

	return &Result{
		Fairness:        fairness,
		ShiftCount:      shiftCount,
		AssignmentCount: assignmentCount,
		Warnings:        warnings,
		Elapsed:         elapsed,
	}, nil
}

// initialize loads the roster and leaves and checks the entry conditions.
// A precondition failure returns before anything is persisted.
func (g *Generator) initialize(ctx context.Context, month string, monthStart time.Time) error {
	g.logger.Debug("Phase: initialization")

	responsible, err := g.store.FindResponsibleNurse(ctx)
	if err != nil {
		return fmt.Errorf("failed to load responsible nurse: %w", err)
	}
	if responsible == nil {
		return ErrNoResponsibleNurse
	}
	g.responsible = responsible

	staff, err := g.store.FindStaffNurses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load staff nurses: %w", err)
	}
	if len(staff) < 2 {
		return ErrNotEnoughStaff
	}
	g.staff = staff

	leaves, err := g.store.FindLeaves(ctx, month)
	if err != nil {
		return fmt.Errorf("failed to load leaves: %w", err)
	}
	g.leaves = leaves

	g.days = BuildCalendar(monthStart.Year(), monthStart.Month(), g.cfg.Weekend, g.cfg.IsHoliday)
	g.ledger = NewLedger(staff)

	g.logger.Debug("Initialized run",
		zap.Int("staff", len(staff)),
		zap.Int("leaves", len(leaves)),
		zap.Int("days", len(g.days)))

	return nil
}

// createShifts plans the month's demands and persists them in one bulk
// call, then groups the identity-bearing demands by date for assignment.
func (g *Generator) createShifts(ctx context.Context) (map[string][]ShiftDemand, int, error) {
	g.logger.Debug("Phase: shift creation")

	demands := PlanShiftDemands(g.days)

	created, err := g.store.BulkCreateShifts(ctx, g.scheduleID, demands)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create shifts: %w", err)
	}

	byDate := make(map[string][]ShiftDemand, len(g.days))
	for _, demand := range created {
		byDate[demand.Date] = append(byDate[demand.Date], demand)
	}

	g.logger.Debug("Created shifts", zap.Int("count", len(created)))

	return byDate, len(created), nil
}

// assignShifts walks the days in chronological order and, within each day,
// the shifts in planning order (day before night) so that same-day
// exclusion and streak bookkeeping always see a consistent history.
func (g *Generator) assignShifts(ctx context.Context, demandsByDate map[string][]ShiftDemand) (int, error) {
	g.logger.Debug("Phase: assignment")

	assignments := make([]model.Assignment, 0, len(g.days)*3)

	for _, day := range g.days {
		for _, demand := range demandsByDate[day.DateStr] {
			switch demand.Type {
			case model.ShiftDay8h:
				assignments = append(assignments, g.assignDayShift(demand, day)...)
			case model.ShiftNight16h:
				assignments = append(assignments, g.assignNightShift(demand, day)...)
			case model.ShiftWeekend24h:
				assignments = append(assignments, g.assignWeekendShift(demand, day)...)
			}
		}
	}

	count, err := g.store.BulkCreateAssignments(ctx, assignments)
	if err != nil {
		return 0, fmt.Errorf("failed to create assignments: %w", err)
	}

	g.logger.Debug("Created assignments", zap.Int("count", count))

	return count, nil
}

// assignDayShift staffs an 8h day shift: the responsible nurse when not on
// leave, plus the required staff count. Responsible-nurse workload is not
// tracked in the ledger - only staff nurses take part in fairness.
func (g *Generator) assignDayShift(demand ShiftDemand, day Day) []model.Assignment {
	assignments := make([]model.Assignment, 0, demand.RequiredStaff+1)

	if demand.RequiresResponsible && !IsOnLeave(g.leaves, g.responsible.ID, day.DateStr) {
		assignments = append(assignments, model.Assignment{
			ShiftID:    demand.ID,
			NurseID:    g.responsible.ID,
			AssignedBy: model.AssignedByAlgorithm,
		})
	}

	pool := EligibleForDayShift(g.staff, g.leaves, g.ledger, day)
	selected := SelectByPriority(pool, g.ledger, day, demand.RequiredStaff)
	g.logUnderStaffed(demand, day, len(selected))

	for _, nurse := range selected {
		assignments = append(assignments, model.Assignment{
			ShiftID:    demand.ID,
			NurseID:    nurse.ID,
			AssignedBy: model.AssignedByAlgorithm,
		})
		g.ledger.Record(nurse.ID, ShiftRecord{
			Hours:     DayShiftHours,
			IsNight:   false,
			IsWeekend: day.IsWeekend,
			Date:      day.Date,
		})
	}

	return assignments
}

func (g *Generator) assignNightShift(demand ShiftDemand, day Day) []model.Assignment {
	pool := EligibleForNightShift(g.staff, g.leaves, g.ledger, day)
	selected := SelectByPriority(pool, g.ledger, day, demand.RequiredStaff)
	g.logUnderStaffed(demand, day, len(selected))

	assignments := make([]model.Assignment, 0, len(selected))
	for _, nurse := range selected {
		assignments = append(assignments, model.Assignment{
			ShiftID:    demand.ID,
			NurseID:    nurse.ID,
			AssignedBy: model.AssignedByAlgorithm,
		})
		g.ledger.Record(nurse.ID, ShiftRecord{
			Hours:     NightShiftHours,
			IsNight:   true,
			IsWeekend: day.IsWeekend,
			Date:      day.Date,
		})
	}

	return assignments
}

// assignWeekendShift staffs a 24h shift. It counts as a night shift for
// rest-period purposes and always as a weekend shift, even when the day is
// a weekday holiday.
func (g *Generator) assignWeekendShift(demand ShiftDemand, day Day) []model.Assignment {
	pool := EligibleForWeekendShift(g.staff, g.leaves, g.ledger, day)
	selected := SelectByPriority(pool, g.ledger, day, demand.RequiredStaff)
	g.logUnderStaffed(demand, day, len(selected))

	assignments := make([]model.Assignment, 0, len(selected))
	for _, nurse := range selected {
		assignments = append(assignments, model.Assignment{
			ShiftID:    demand.ID,
			NurseID:    nurse.ID,
			AssignedBy: model.AssignedByAlgorithm,
		})
		g.ledger.Record(nurse.ID, ShiftRecord{
			Hours:     WeekendShiftHours,
			IsNight:   true,
			IsWeekend: true,
			Date:      day.Date,
		})
	}

	return assignments
}

func (g *Generator) logUnderStaffed(demand ShiftDemand, day Day, selected int) {
	if selected < demand.RequiredStaff {
		g.logger.Debug("Shift under-staffed",
			zap.String("date", day.DateStr),
			zap.String("type", string(demand.Type)),
			zap.Int("required", demand.RequiredStaff),
			zap.Int("selected", selected))
	}
}
