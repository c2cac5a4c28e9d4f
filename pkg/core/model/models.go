package model

import "time"

type NurseRole string

const (
	RoleResponsible NurseRole = "responsible"
	RoleStaff       NurseRole = "staff"
)

func (r NurseRole) IsValid() bool {
	return r == RoleResponsible || r == RoleStaff
}

type ShiftType string

const (
	ShiftDay8h      ShiftType = "day_8h"
	ShiftNight16h   ShiftType = "night_16h"
	ShiftWeekend24h ShiftType = "weekend_24h"
)

type LeaveType string

const (
	LeaveAnnual     LeaveType = "annual"
	LeaveExcuse     LeaveType = "excuse"
	LeaveSick       LeaveType = "sick"
	LeavePreference LeaveType = "preference"
)

func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveAnnual, LeaveExcuse, LeaveSick, LeavePreference:
		return true
	}
	return false
}

// Blocking reports whether this leave type makes a nurse unavailable.
// Preference leaves are advisory only.
func (t LeaveType) Blocking() bool {
	return t != LeavePreference
}

// Assignment provenance markers. The engine writes "algorithm"; manual
// edits made through the shift endpoints write "manual".
const (
	AssignedByAlgorithm = "algorithm"
	AssignedByManual    = "manual"
)

// Nurse represents a nurse on the ward roster
type Nurse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      NurseRole `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Leave represents a date range during which a nurse is unavailable.
// Dates use the YYYY-MM-DD format; an empty StartDate or EndDate means the
// bound is missing and the record never blocks scheduling.
type Leave struct {
	ID        string    `json:"id"`
	NurseID   string    `json:"nurseId"`
	NurseName string    `json:"nurseName,omitempty"` // joined for display, empty when not loaded
	Type      LeaveType `json:"type"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// Schedule represents one generated month of shifts
type Schedule struct {
	ID            string    `json:"id"`
	Month         string    `json:"month"` // YYYY-MM
	FairnessScore *float64  `json:"fairnessScore"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Shift represents a single shift slot within a schedule
type Shift struct {
	ID            string    `json:"id"`
	ScheduleID    string    `json:"scheduleId"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Type          ShiftType `json:"type"`
	StartTime     string    `json:"startTime"` // HH:MM
	EndTime       string    `json:"endTime"`   // HH:MM
	RequiredStaff int       `json:"requiredStaff"`
}

// Assignment places a nurse on a shift
type Assignment struct {
	ID         string `json:"id"`
	ShiftID    string `json:"shiftId"`
	NurseID    string `json:"nurseId"`
	AssignedBy string `json:"assignedBy"`
}

// ShiftWithAssignments is a shift joined with its assignments and
// completeness status, used by the schedule detail view.
type ShiftWithAssignments struct {
	Shift
	Assignments      []AssignmentDetail `json:"assignments"`
	StaffCount       int                `json:"staffCount"`
	ResponsibleCount int                `json:"responsibleCount"`
	IsComplete       bool               `json:"isComplete"`
}

// AssignmentDetail is an assignment joined with nurse info for display
type AssignmentDetail struct {
	Assignment
	NurseName string    `json:"nurseName"`
	NurseRole NurseRole `json:"nurseRole"`
}

// ScheduleDetail is a schedule with its shifts grouped by date
type ScheduleDetail struct {
	Schedule
	Days []DaySchedule `json:"days"`
}

// DaySchedule holds all shifts for one calendar date
type DaySchedule struct {
	Date   string                 `json:"date"`
	Shifts []ShiftWithAssignments `json:"shifts"`
}

// NurseScheduleDetail pairs a nurse's monthly totals with the shifts
// behind them
type NurseScheduleDetail struct {
	NurseMonthlyStats
	Shifts []Shift `json:"shifts"`
}

// NurseMonthlyStats aggregates a nurse's workload over one month
type NurseMonthlyStats struct {
	NurseID       string    `json:"nurseId"`
	NurseName     string    `json:"nurseName"`
	Role          NurseRole `json:"role"`
	TotalHours    int       `json:"totalHours"`
	DayShifts     int       `json:"dayShifts"`
	NightShifts   int       `json:"nightShifts"`
	WeekendShifts int       `json:"weekendShifts"`
}
