package scheduler

import (
	"fmt"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

const (
	// ResponsibleLeaveDayLimit is the number of leave days in a month
	// above which day shift coverage is flagged as at risk
	ResponsibleLeaveDayLimit = 10

	// UnderworkedHoursRatio flags staff nurses whose total hours fall
	// below this fraction of the staff average
	UnderworkedHoursRatio = 0.7
)

// BuildWarnings produces human-readable advisories about coverage risk and
// workload imbalance. Warnings never fail a run.
func BuildWarnings(responsible *model.Nurse, leaves []model.Leave, ledger *Ledger, days []Day) []string {
	warnings := []string{}

	if responsible != nil {
		leaveDays := 0
		for _, day := range days {
			if IsOnLeave(leaves, responsible.ID, day.DateStr) {
				leaveDays++
			}
		}
		if leaveDays > ResponsibleLeaveDayLimit {
			warnings = append(warnings, fmt.Sprintf(
				"responsible nurse is on leave for %d days this month - some day shifts may be missing a responsible nurse",
				leaveDays))
		}
	}

	stats := ledger.All()
	avgHours := ledger.MeanHours()
	for _, s := range stats {
		if float64(s.TotalHours) < avgHours*UnderworkedHoursRatio {
			warnings = append(warnings, fmt.Sprintf(
				"%s received disproportionately little work (%d hours, staff average %.1f)",
				s.Nurse.Name, s.TotalHours, avgHours))
		}
	}

	return warnings
}
