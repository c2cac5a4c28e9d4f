package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

func nurseIDs(pool []model.Nurse) []string {
	ids := make([]string, len(pool))
	for i, n := range pool {
		ids[i] = n.ID
	}
	return ids
}

func monday() Day {
	return Day{Date: date(2025, 6, 2), DateStr: "2025-06-02"}
}

func TestIsOnLeave_InclusiveRange(t *testing.T) {
	leaves := []model.Leave{{NurseID: "a", Type: model.LeaveAnnual, StartDate: "2025-06-10", EndDate: "2025-06-11"}}

	assert.False(t, IsOnLeave(leaves, "a", "2025-06-09"))
	assert.True(t, IsOnLeave(leaves, "a", "2025-06-10"))
	assert.True(t, IsOnLeave(leaves, "a", "2025-06-11"))
	assert.False(t, IsOnLeave(leaves, "a", "2025-06-12"))
}

func TestIsOnLeave_OtherNurse(t *testing.T) {
	leaves := []model.Leave{{NurseID: "a", Type: model.LeaveSick, StartDate: "2025-06-10", EndDate: "2025-06-11"}}

	assert.False(t, IsOnLeave(leaves, "b", "2025-06-10"))
}

func TestIsOnLeave_PreferenceNeverBlocks(t *testing.T) {
	leaves := []model.Leave{{NurseID: "a", Type: model.LeavePreference, StartDate: "2025-06-01", EndDate: "2025-06-30"}}

	assert.False(t, IsOnLeave(leaves, "a", "2025-06-15"))
}

func TestIsOnLeave_MissingBoundIgnored(t *testing.T) {
	leaves := []model.Leave{
		{NurseID: "a", Type: model.LeaveAnnual, StartDate: "", EndDate: "2025-06-30"},
		{NurseID: "a", Type: model.LeaveAnnual, StartDate: "2025-06-01", EndDate: ""},
	}

	assert.False(t, IsOnLeave(leaves, "a", "2025-06-15"))
}

func TestEligibleForDayShift_ExcludesOnLeave(t *testing.T) {
	staff := testStaff("a", "b")
	ledger := NewLedger(staff)
	leaves := []model.Leave{{NurseID: "a", Type: model.LeaveExcuse, StartDate: "2025-06-02", EndDate: "2025-06-02"}}

	pool := EligibleForDayShift(staff, leaves, ledger, monday())

	assert.Equal(t, []string{"b"}, nurseIDs(pool))
}

func TestEligibleForDayShift_ExcludesAlreadyAssignedToday(t *testing.T) {
	staff := testStaff("a", "b")
	ledger := NewLedger(staff)
	ledger.Record("a", ShiftRecord{Hours: 8, Date: date(2025, 6, 2)})

	pool := EligibleForDayShift(staff, nil, ledger, monday())

	assert.Equal(t, []string{"b"}, nurseIDs(pool))
}

func TestEligibleForDayShift_ExcludesLongStreak(t *testing.T) {
	staff := testStaff("a", "b")
	ledger := NewLedger(staff)
	for d := 1; d <= 5; d++ {
		ledger.Record("a", ShiftRecord{Hours: 8, Date: date(2025, 5, 27+d)})
	}
	assert.Equal(t, 5, ledger.Get("a").ConsecutiveDays)

	pool := EligibleForDayShift(staff, nil, ledger, monday())

	assert.Equal(t, []string{"b"}, nurseIDs(pool))
}

func TestEligibleForDayShift_ExcludesNightWorkerFromYesterday(t *testing.T) {
	staff := testStaff("a", "b")
	ledger := NewLedger(staff)
	ledger.Record("a", ShiftRecord{Hours: 16, IsNight: true, Date: date(2025, 6, 1)})
	ledger.Record("b", ShiftRecord{Hours: 8, IsNight: false, Date: date(2025, 6, 1)})

	pool := EligibleForDayShift(staff, nil, ledger, monday())

	// a needs rest after the night shift; b worked a day shift and may work
	assert.Equal(t, []string{"b"}, nurseIDs(pool))
}

func TestEligibleForNightShift_ExcludesNightWorkerFromYesterday(t *testing.T) {
	staff := testStaff("a", "b")
	ledger := NewLedger(staff)
	ledger.Record("a", ShiftRecord{Hours: 16, IsNight: true, Date: date(2025, 6, 1)})

	pool := EligibleForNightShift(staff, nil, ledger, monday())

	assert.Equal(t, []string{"b"}, nurseIDs(pool))
}

func TestEligibleForNightShift_AllowsDayWorkerFromYesterday(t *testing.T) {
	staff := testStaff("a")
	ledger := NewLedger(staff)
	ledger.Record("a", ShiftRecord{Hours: 8, IsNight: false, Date: date(2025, 6, 1)})

	pool := EligibleForNightShift(staff, nil, ledger, monday())

	assert.Equal(t, []string{"a"}, nurseIDs(pool))
}

func TestEligibleForNightShift_MonthlyNightCap(t *testing.T) {
	staff := testStaff("a", "b")
	ledger := NewLedger(staff)
	// 10 nights with rest days in between keeps the streak irrelevant
	for i := 0; i < MaxNightShiftsPerMonth; i++ {
		ledger.Record("a", ShiftRecord{Hours: 16, IsNight: true, Date: date(2025, 4, 1+2*i)})
	}

	pool := EligibleForNightShift(staff, nil, ledger, monday())

	assert.Equal(t, []string{"b"}, nurseIDs(pool))
}

func TestEligibleForWeekendShift_ExcludesAnyWorkYesterday(t *testing.T) {
	staff := testStaff("a", "b", "c")
	ledger := NewLedger(staff)
	ledger.Record("a", ShiftRecord{Hours: 8, IsNight: false, Date: date(2025, 6, 6)})
	ledger.Record("b", ShiftRecord{Hours: 16, IsNight: true, Date: date(2025, 6, 6)})

	saturday := Day{Date: date(2025, 6, 7), DateStr: "2025-06-07", IsWeekend: true}
	pool := EligibleForWeekendShift(staff, nil, ledger, saturday)

	// weekend duty needs a full rest day before it, any shift counts
	assert.Equal(t, []string{"c"}, nurseIDs(pool))
}

func TestEligibleForWeekendShift_MonthlyWeekendCap(t *testing.T) {
	staff := testStaff("a", "b")
	ledger := NewLedger(staff)
	for i := 0; i < MaxWeekendShiftsPerMonth; i++ {
		ledger.Record("a", ShiftRecord{Hours: 24, IsNight: true, IsWeekend: true, Date: date(2025, 5, 1+7*i)})
	}

	saturday := Day{Date: date(2025, 6, 7), DateStr: "2025-06-07", IsWeekend: true}
	pool := EligibleForWeekendShift(staff, nil, ledger, saturday)

	assert.Equal(t, []string{"b"}, nurseIDs(pool))
}

func TestEligibleForWeekendShift_ExcludesOnLeave(t *testing.T) {
	staff := testStaff("a", "b")
	ledger := NewLedger(staff)
	leaves := []model.Leave{{NurseID: "b", Type: model.LeaveSick, StartDate: "2025-06-07", EndDate: "2025-06-08"}}

	saturday := Day{Date: date(2025, 6, 7), DateStr: "2025-06-07", IsWeekend: true}
	pool := EligibleForWeekendShift(staff, leaves, ledger, saturday)

	assert.Equal(t, []string{"a"}, nurseIDs(pool))
}

func TestEligibility_PreservesPoolOrder(t *testing.T) {
	staff := testStaff("z", "m", "a")
	ledger := NewLedger(staff)

	pool := EligibleForDayShift(staff, nil, ledger, monday())

	assert.Equal(t, []string{"z", "m", "a"}, nurseIDs(pool))
}
