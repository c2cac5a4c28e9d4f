package scheduler

import (
	"slices"
	"time"
)

// Day describes one calendar day of the target month
type Day struct {
	// Date at midnight UTC
	Date time.Time

	// DateStr is the date in YYYY-MM-DD format (used for leave and
	// assignment lookups, which work on date strings)
	DateStr string

	// IsWeekend is true when the day of week is in the weekend set
	IsWeekend bool

	// IsHoliday is true when the holiday predicate matches the date
	IsHoliday bool
}

// WeekendConfig defines which days of the week count as weekend
type WeekendConfig struct {
	Name string
	Days []time.Weekday
}

// DefaultWeekend is Saturday and Sunday
var DefaultWeekend = WeekendConfig{
	Name: "saturday_sunday",
	Days: []time.Weekday{time.Saturday, time.Sunday},
}

// HolidayFunc reports whether a date is a public holiday.
// There is no built-in holiday calendar; callers supply one (or nil).
type HolidayFunc func(date time.Time) bool

// BuildCalendar expands a year/month into its ordered day descriptors.
// A nil holiday predicate means no holidays.
func BuildCalendar(year int, month time.Month, weekend WeekendConfig, isHoliday HolidayFunc) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := make([]Day, 0, 31)

	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		day := Day{
			Date:      d,
			DateStr:   d.Format("2006-01-02"),
			IsWeekend: slices.Contains(weekend.Days, d.Weekday()),
		}
		if isHoliday != nil {
			day.IsHoliday = isHoliday(d)
		}
		days = append(days, day)
	}

	return days
}
