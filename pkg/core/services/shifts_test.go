package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

// fakeShiftStore is an in-memory ShiftStore
type fakeShiftStore struct {
	nurses      map[string]*model.Nurse
	shifts      []model.Shift
	leaves      []model.Leave
	assignments []model.Assignment
}

func newFakeShiftStore() *fakeShiftStore {
	return &fakeShiftStore{
		nurses: map[string]*model.Nurse{
			"n1": {ID: "n1", Name: "Ayse", Role: model.RoleStaff},
		},
		shifts: []model.Shift{
			{ID: "sh1", Date: "2025-06-02", Type: model.ShiftDay8h},
			{ID: "sh2", Date: "2025-06-02", Type: model.ShiftNight16h},
		},
	}
}

func (s *fakeShiftStore) GetShiftByID(ctx context.Context, id string) (*model.Shift, error) {
	for i := range s.shifts {
		if s.shifts[i].ID == id {
			return &s.shifts[i], nil
		}
	}
	return nil, nil
}

func (s *fakeShiftStore) GetShiftsByMonth(ctx context.Context, month string) ([]model.Shift, error) {
	return s.shifts, nil
}

func (s *fakeShiftStore) GetNurseByID(ctx context.Context, id string) (*model.Nurse, error) {
	return s.nurses[id], nil
}

func (s *fakeShiftStore) FindLeaves(ctx context.Context, month string) ([]model.Leave, error) {
	return s.leaves, nil
}

func (s *fakeShiftStore) NurseAssignedOnDate(ctx context.Context, nurseID string, date string) (bool, error) {
	for _, a := range s.assignments {
		shift, _ := s.GetShiftByID(ctx, a.ShiftID)
		if shift != nil && a.NurseID == nurseID && shift.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeShiftStore) InsertAssignment(ctx context.Context, a *model.Assignment) error {
	s.assignments = append(s.assignments, *a)
	return nil
}

func (s *fakeShiftStore) DeleteAssignmentByShiftAndNurse(ctx context.Context, shiftID string, nurseID string) (bool, error) {
	for i, a := range s.assignments {
		if a.ShiftID == shiftID && a.NurseID == nurseID {
			s.assignments = append(s.assignments[:i], s.assignments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestAssignNurseToShift(t *testing.T) {
	store := newFakeShiftStore()

	assignment, err := AssignNurseToShift(context.Background(), store, zap.NewNop(), "sh1", "n1")
	require.NoError(t, err)

	assert.NotEmpty(t, assignment.ID)
	assert.Equal(t, model.AssignedByManual, assignment.AssignedBy)
	require.Len(t, store.assignments, 1)
}

func TestAssignNurseToShift_UnknownShift(t *testing.T) {
	store := newFakeShiftStore()

	_, err := AssignNurseToShift(context.Background(), store, zap.NewNop(), "missing", "n1")

	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestAssignNurseToShift_UnknownNurse(t *testing.T) {
	store := newFakeShiftStore()

	_, err := AssignNurseToShift(context.Background(), store, zap.NewNop(), "sh1", "missing")

	assert.ErrorIs(t, err, ErrNurseNotFound)
}

func TestAssignNurseToShift_BlockingLeaveRejected(t *testing.T) {
	store := newFakeShiftStore()
	store.leaves = []model.Leave{{
		NurseID: "n1", Type: model.LeaveSick,
		StartDate: "2025-06-01", EndDate: "2025-06-03",
	}}

	_, err := AssignNurseToShift(context.Background(), store, zap.NewNop(), "sh1", "n1")

	assert.ErrorIs(t, err, ErrNurseOnLeave)
	assert.Empty(t, store.assignments)
}

func TestAssignNurseToShift_PreferenceLeaveAllowed(t *testing.T) {
	store := newFakeShiftStore()
	store.leaves = []model.Leave{{
		NurseID: "n1", Type: model.LeavePreference,
		StartDate: "2025-06-01", EndDate: "2025-06-03",
	}}

	_, err := AssignNurseToShift(context.Background(), store, zap.NewNop(), "sh1", "n1")

	assert.NoError(t, err)
}

func TestAssignNurseToShift_SameDayDoubleBookingRejected(t *testing.T) {
	store := newFakeShiftStore()
	store.assignments = []model.Assignment{{ID: "a1", ShiftID: "sh1", NurseID: "n1"}}

	_, err := AssignNurseToShift(context.Background(), store, zap.NewNop(), "sh2", "n1")

	assert.ErrorIs(t, err, ErrNurseAlreadyBooked)
	assert.Len(t, store.assignments, 1)
}

func TestUnassignNurseFromShift(t *testing.T) {
	store := newFakeShiftStore()
	store.assignments = []model.Assignment{{ID: "a1", ShiftID: "sh1", NurseID: "n1"}}

	err := UnassignNurseFromShift(context.Background(), store, zap.NewNop(), "sh1", "n1")

	assert.NoError(t, err)
	assert.Empty(t, store.assignments)
}

func TestUnassignNurseFromShift_NotAssigned(t *testing.T) {
	store := newFakeShiftStore()

	err := UnassignNurseFromShift(context.Background(), store, zap.NewNop(), "sh1", "n1")

	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestListShifts_InvalidMonth(t *testing.T) {
	store := newFakeShiftStore()

	_, err := ListShifts(context.Background(), store, "June 2025")

	assert.Error(t, err)
}

func TestListShifts(t *testing.T) {
	store := newFakeShiftStore()

	shifts, err := ListShifts(context.Background(), store, "2025-06")

	require.NoError(t, err)
	assert.Len(t, shifts, 2)
}
