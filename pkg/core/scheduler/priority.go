package scheduler

import (
	"slices"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

// Weights for the priority score. The score is a linear combination where
// lower means higher priority, pulling each nurse's workload toward the
// staff averages.
const (
	WeightHoursAboveMean    = 10.0
	WeightNightsAboveMean   = 20.0
	WeightWeekendsAboveMean = 15.0
	WeightDaysSinceWorked   = 2.0
	WeightConsecutiveDays   = 5.0

	// NeverWorkedBonus is subtracted for nurses with no assignments yet,
	// so idle nurses always go first
	NeverWorkedBonus = 50.0
)

// PriorityScore computes the fairness-driven score for one nurse on one
// day. Lower scores rank earlier.
func PriorityScore(stats *NurseStats, ledger *Ledger, day Day) float64 {
	score := 0.0

	score += (float64(stats.TotalHours) - ledger.MeanHours()) * WeightHoursAboveMean
	score += (float64(stats.NightShiftCount) - ledger.MeanNights()) * WeightNightsAboveMean
	score += (float64(stats.WeekendShiftCount) - ledger.MeanWeekends()) * WeightWeekendsAboveMean

	if stats.LastWorkedDate.IsZero() {
		score -= NeverWorkedBonus
	} else {
		daysSince := int(day.Date.Sub(stats.LastWorkedDate).Hours() / 24)
		score -= float64(daysSince) * WeightDaysSinceWorked
	}

	score += float64(stats.ConsecutiveDays) * WeightConsecutiveDays

	return score
}

// SelectByPriority sorts the eligible pool ascending by score and takes
// the first count nurses. The sort is stable, so ties keep the pool's
// insertion order - there is no randomization anywhere in a run.
func SelectByPriority(pool []model.Nurse, ledger *Ledger, day Day, count int) []model.Nurse {
	type scored struct {
		nurse model.Nurse
		score float64
	}

	ranked := make([]scored, len(pool))
	for i, nurse := range pool {
		ranked[i] = scored{
			nurse: nurse,
			score: PriorityScore(ledger.Get(nurse.ID), ledger, day),
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		switch {
		case a.score < b.score:
			return -1
		case a.score > b.score:
			return 1
		default:
			return 0
		}
	})

	if count > len(ranked) {
		count = len(ranked)
	}

	selected := make([]model.Nurse, count)
	for i := 0; i < count; i++ {
		selected[i] = ranked[i].nurse
	}
	return selected
}
