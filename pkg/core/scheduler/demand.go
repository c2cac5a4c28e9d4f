package scheduler

import "github.com/emreacar/nurseshift/pkg/core/model"

// Staffing requirements per shift. These mirror the ward's fixed rules and
// are deliberately not configurable at run time.
const (
	StaffPerShift = 2

	DayShiftHours     = 8
	NightShiftHours   = 16
	WeekendShiftHours = 24

	// MaxConsecutiveDays caps a nurse's working streak
	MaxConsecutiveDays = 5

	// MaxNightShiftsPerMonth caps night shifts per nurse per month
	MaxNightShiftsPerMonth = 10

	// MaxWeekendShiftsPerMonth caps weekend 24h shifts per nurse per month
	MaxWeekendShiftsPerMonth = 4
)

// ShiftDemand is one shift that must be staffed. ID is empty until the
// store has created the shift and handed back its identity.
type ShiftDemand struct {
	ID                  string
	Date                string
	Type                model.ShiftType
	StartTime           string
	EndTime             string
	RequiredStaff       int
	RequiresResponsible bool
}

// PlanShiftDemands maps each day to the shifts required on it:
// weekdays get an 8h day shift plus a 16h night shift, weekends and
// holidays get a single 24h shift. Demands are emitted in day order and,
// within a day, day shift before night shift - the assignment loop relies
// on that ordering.
func PlanShiftDemands(days []Day) []ShiftDemand {
	demands := make([]ShiftDemand, 0, len(days)*2)

	for _, day := range days {
		if day.IsWeekend || day.IsHoliday {
			demands = append(demands, ShiftDemand{
				Date:                day.DateStr,
				Type:                model.ShiftWeekend24h,
				StartTime:           "00:00",
				EndTime:             "24:00",
				RequiredStaff:       StaffPerShift,
				RequiresResponsible: false,
			})
			continue
		}

		demands = append(demands, ShiftDemand{
			Date:                day.DateStr,
			Type:                model.ShiftDay8h,
			StartTime:           "08:00",
			EndTime:             "16:00",
			RequiredStaff:       StaffPerShift,
			RequiresResponsible: true,
		})
		demands = append(demands, ShiftDemand{
			Date:                day.DateStr,
			Type:                model.ShiftNight16h,
			StartTime:           "16:00",
			EndTime:             "08:00",
			RequiredStaff:       StaffPerShift,
			RequiresResponsible: false,
		})
	}

	return demands
}
