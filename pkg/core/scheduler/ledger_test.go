package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

func testStaff(ids ...string) []model.Nurse {
	staff := make([]model.Nurse, len(ids))
	for i, id := range ids {
		staff[i] = model.Nurse{ID: id, Name: "Nurse " + id, Role: model.RoleStaff}
	}
	return staff
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewLedger_ZeroedStats(t *testing.T) {
	ledger := NewLedger(testStaff("a", "b"))

	stats := ledger.Get("a")
	assert.NotNil(t, stats)
	assert.Equal(t, 0, stats.TotalHours)
	assert.Equal(t, 0, stats.NightShiftCount)
	assert.Equal(t, 0, stats.WeekendShiftCount)
	assert.Equal(t, 0, stats.ConsecutiveDays)
	assert.True(t, stats.LastWorkedDate.IsZero())
}

func TestLedger_Get_UnknownNurse(t *testing.T) {
	ledger := NewLedger(testStaff("a"))
	assert.Nil(t, ledger.Get("missing"))
}

func TestLedger_All_InsertionOrder(t *testing.T) {
	ledger := NewLedger(testStaff("c", "a", "b"))

	all := ledger.All()
	assert.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Nurse.ID)
	assert.Equal(t, "a", all[1].Nurse.ID)
	assert.Equal(t, "b", all[2].Nurse.ID)
}

func TestLedger_Record_Totals(t *testing.T) {
	ledger := NewLedger(testStaff("a"))

	ledger.Record("a", ShiftRecord{Hours: 8, IsNight: false, IsWeekend: false, Date: date(2025, 6, 2)})
	ledger.Record("a", ShiftRecord{Hours: 16, IsNight: true, IsWeekend: false, Date: date(2025, 6, 3)})
	ledger.Record("a", ShiftRecord{Hours: 24, IsNight: true, IsWeekend: true, Date: date(2025, 6, 7)})

	stats := ledger.Get("a")
	assert.Equal(t, 48, stats.TotalHours)
	assert.Equal(t, 2, stats.NightShiftCount)
	assert.Equal(t, 1, stats.WeekendShiftCount)
	assert.Equal(t, 1, stats.DayShiftCount)
}

func TestLedger_Record_StreakIncrement(t *testing.T) {
	ledger := NewLedger(testStaff("a"))

	ledger.Record("a", ShiftRecord{Hours: 8, Date: date(2025, 6, 2)})
	ledger.Record("a", ShiftRecord{Hours: 8, Date: date(2025, 6, 3)})
	ledger.Record("a", ShiftRecord{Hours: 8, Date: date(2025, 6, 4)})

	assert.Equal(t, 3, ledger.Get("a").ConsecutiveDays)
}

func TestLedger_Record_StreakResetAfterGap(t *testing.T) {
	ledger := NewLedger(testStaff("a"))

	ledger.Record("a", ShiftRecord{Hours: 8, Date: date(2025, 6, 2)})
	ledger.Record("a", ShiftRecord{Hours: 8, Date: date(2025, 6, 3)})
	ledger.Record("a", ShiftRecord{Hours: 8, Date: date(2025, 6, 5)}) // gap on the 4th

	assert.Equal(t, 1, ledger.Get("a").ConsecutiveDays)
}

func TestLedger_Record_FirstShiftStartsStreak(t *testing.T) {
	ledger := NewLedger(testStaff("a"))

	ledger.Record("a", ShiftRecord{Hours: 8, Date: date(2025, 6, 2)})

	stats := ledger.Get("a")
	assert.Equal(t, 1, stats.ConsecutiveDays)
	assert.Equal(t, date(2025, 6, 2), stats.LastWorkedDate)
}

func TestLedger_Record_LastShiftWasNight(t *testing.T) {
	ledger := NewLedger(testStaff("a"))

	ledger.Record("a", ShiftRecord{Hours: 16, IsNight: true, Date: date(2025, 6, 2)})
	assert.True(t, ledger.Get("a").LastShiftWasNight)

	ledger.Record("a", ShiftRecord{Hours: 8, IsNight: false, Date: date(2025, 6, 4)})
	assert.False(t, ledger.Get("a").LastShiftWasNight)
}

func TestLedger_Means(t *testing.T) {
	ledger := NewLedger(testStaff("a", "b"))

	ledger.Record("a", ShiftRecord{Hours: 8, Date: date(2025, 6, 2)})
	ledger.Record("b", ShiftRecord{Hours: 24, IsNight: true, IsWeekend: true, Date: date(2025, 6, 2)})

	assert.Equal(t, 16.0, ledger.MeanHours())
	assert.Equal(t, 0.5, ledger.MeanNights())
	assert.Equal(t, 0.5, ledger.MeanWeekends())
}
