package scheduler

import "github.com/emreacar/nurseshift/pkg/core/model"

// The three eligibility filters narrow the staff pool to nurses who pass
// every hard constraint for a shift type on a given day. They never
// reorder the pool, so selection stays deterministic.

// EligibleForDayShift returns staff nurses who may work the day shift:
// not on leave, not already assigned today, streak under the consecutive
// cap, and rested if their last shift was a night.
func EligibleForDayShift(staff []model.Nurse, leaves []model.Leave, ledger *Ledger, day Day) []model.Nurse {
	eligible := make([]model.Nurse, 0, len(staff))

	for _, nurse := range staff {
		if IsOnLeave(leaves, nurse.ID, day.DateStr) {
			continue
		}

		stats := ledger.Get(nurse.ID)
		if assignedOn(stats, day) {
			continue
		}
		if stats.ConsecutiveDays >= MaxConsecutiveDays {
			continue
		}
		if workedNightYesterday(stats, day) {
			continue
		}

		eligible = append(eligible, nurse)
	}

	return eligible
}

// EligibleForNightShift applies the day shift rules plus the monthly
// night shift cap.
func EligibleForNightShift(staff []model.Nurse, leaves []model.Leave, ledger *Ledger, day Day) []model.Nurse {
	eligible := make([]model.Nurse, 0, len(staff))

	for _, nurse := range staff {
		if IsOnLeave(leaves, nurse.ID, day.DateStr) {
			continue
		}

		stats := ledger.Get(nurse.ID)
		if assignedOn(stats, day) {
			continue
		}
		if workedNightYesterday(stats, day) {
			continue
		}
		if stats.ConsecutiveDays >= MaxConsecutiveDays {
			continue
		}
		if stats.NightShiftCount >= MaxNightShiftsPerMonth {
			continue
		}

		eligible = append(eligible, nurse)
	}

	return eligible
}

// EligibleForWeekendShift returns staff nurses who may work a 24h weekend
// shift. Weekend duty requires a full rest day before it, so any shift
// worked the previous day disqualifies, not just nights.
func EligibleForWeekendShift(staff []model.Nurse, leaves []model.Leave, ledger *Ledger, day Day) []model.Nurse {
	eligible := make([]model.Nurse, 0, len(staff))

	for _, nurse := range staff {
		if IsOnLeave(leaves, nurse.ID, day.DateStr) {
			continue
		}

		stats := ledger.Get(nurse.ID)
		if workedYesterday(stats, day) {
			continue
		}
		if stats.WeekendShiftCount >= MaxWeekendShiftsPerMonth {
			continue
		}

		eligible = append(eligible, nurse)
	}

	return eligible
}

// IsOnLeave reports whether the nurse has a blocking leave covering the
// date. Preference leaves never block, and a record missing either date
// bound is ignored rather than treated as an error.
func IsOnLeave(leaves []model.Leave, nurseID string, dateStr string) bool {
	for _, leave := range leaves {
		if leave.NurseID != nurseID {
			continue
		}
		if !leave.Type.Blocking() {
			continue
		}
		if leave.StartDate == "" || leave.EndDate == "" {
			continue
		}
		if dateStr >= leave.StartDate && dateStr <= leave.EndDate {
			return true
		}
	}
	return false
}

// assignedOn reports whether the nurse already has an assignment today.
// The ledger is updated immediately after every assignment, so comparing
// the last worked date is sufficient under sequential processing.
func assignedOn(stats *NurseStats, day Day) bool {
	return !stats.LastWorkedDate.IsZero() && sameDate(stats.LastWorkedDate, day.Date)
}

func workedYesterday(stats *NurseStats, day Day) bool {
	return !stats.LastWorkedDate.IsZero() && sameDate(stats.LastWorkedDate, day.Date.AddDate(0, 0, -1))
}

// workedNightYesterday implements the rest-after-night rule: a nurse whose
// most recent shift was a night or 24h shift on the previous day needs
// the day off.
func workedNightYesterday(stats *NurseStats, day Day) bool {
	return workedYesterday(stats, day) && stats.LastShiftWasNight
}
