package scheduler

import (
	"time"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

// NurseStats tracks one staff nurse's running totals during a run
type NurseStats struct {
	Nurse             model.Nurse
	TotalHours        int
	NightShiftCount   int
	WeekendShiftCount int
	DayShiftCount     int
	ConsecutiveDays   int

	// LastWorkedDate is the zero time until the nurse's first assignment
	LastWorkedDate time.Time

	// LastShiftWasNight is true when the most recent assignment was a
	// night or 24h shift, which requires a rest day after it
	LastShiftWasNight bool
}

// ShiftRecord captures one assignment for ledger bookkeeping
type ShiftRecord struct {
	Hours     int
	IsNight   bool
	IsWeekend bool
	Date      time.Time
}

// Ledger holds per-nurse statistics for a single scheduling run.
// It is plain in-memory state keyed by nurse ID; iteration follows the
// staff list's insertion order so runs stay deterministic.
type Ledger struct {
	stats map[string]*NurseStats
	order []string
}

// NewLedger initializes zeroed stats for every staff nurse
func NewLedger(staff []model.Nurse) *Ledger {
	l := &Ledger{
		stats: make(map[string]*NurseStats, len(staff)),
		order: make([]string, 0, len(staff)),
	}
	for _, nurse := range staff {
		l.stats[nurse.ID] = &NurseStats{Nurse: nurse}
		l.order = append(l.order, nurse.ID)
	}
	return l
}

// Get returns the stats for a nurse, or nil for unknown IDs
func (l *Ledger) Get(nurseID string) *NurseStats {
	return l.stats[nurseID]
}

// All returns stats in staff insertion order
func (l *Ledger) All() []*NurseStats {
	all := make([]*NurseStats, 0, len(l.order))
	for _, id := range l.order {
		all = append(all, l.stats[id])
	}
	return all
}

// Record updates a nurse's totals for one assignment. The consecutive-day
// streak grows when the nurse also worked the previous calendar day and
// resets to 1 otherwise.
func (l *Ledger) Record(nurseID string, rec ShiftRecord) {
	stats := l.stats[nurseID]
	if stats == nil {
		return
	}

	stats.TotalHours += rec.Hours
	if rec.IsNight {
		stats.NightShiftCount++
	} else {
		stats.DayShiftCount++
	}
	if rec.IsWeekend {
		stats.WeekendShiftCount++
	}

	if !stats.LastWorkedDate.IsZero() && sameDate(stats.LastWorkedDate, rec.Date.AddDate(0, 0, -1)) {
		stats.ConsecutiveDays++
	} else {
		stats.ConsecutiveDays = 1
	}

	stats.LastWorkedDate = rec.Date
	stats.LastShiftWasNight = rec.IsNight
}

// MeanHours returns the average total hours across all staff nurses
func (l *Ledger) MeanHours() float64 {
	if len(l.order) == 0 {
		return 0
	}
	sum := 0
	for _, s := range l.stats {
		sum += s.TotalHours
	}
	return float64(sum) / float64(len(l.order))
}

// MeanNights returns the average night shift count across all staff nurses
func (l *Ledger) MeanNights() float64 {
	if len(l.order) == 0 {
		return 0
	}
	sum := 0
	for _, s := range l.stats {
		sum += s.NightShiftCount
	}
	return float64(sum) / float64(len(l.order))
}

// MeanWeekends returns the average weekend shift count across all staff nurses
func (l *Ledger) MeanWeekends() float64 {
	if len(l.order) == 0 {
		return 0
	}
	sum := 0
	for _, s := range l.stats {
		sum += s.WeekendShiftCount
	}
	return float64(sum) / float64(len(l.order))
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
