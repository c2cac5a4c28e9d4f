package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emreacar/nurseshift/pkg/core/model"
)

// fakeLeaveStore is an in-memory LeaveStore
type fakeLeaveStore struct {
	nurses  map[string]*model.Nurse
	leaves  []model.Leave
	deleted []string
}

func newFakeLeaveStore() *fakeLeaveStore {
	return &fakeLeaveStore{
		nurses: map[string]*model.Nurse{
			"n1": {ID: "n1", Name: "Ayse", Role: model.RoleStaff},
		},
	}
}

func (s *fakeLeaveStore) GetLeaves(ctx context.Context) ([]model.Leave, error) {
	return s.leaves, nil
}

func (s *fakeLeaveStore) GetNurseByID(ctx context.Context, id string) (*model.Nurse, error) {
	return s.nurses[id], nil
}

func (s *fakeLeaveStore) GetLeaveByID(ctx context.Context, id string) (*model.Leave, error) {
	for i := range s.leaves {
		if s.leaves[i].ID == id {
			return &s.leaves[i], nil
		}
	}
	return nil, nil
}

func (s *fakeLeaveStore) InsertLeave(ctx context.Context, leave *model.Leave) error {
	s.leaves = append(s.leaves, *leave)
	return nil
}

func (s *fakeLeaveStore) UpdateLeave(ctx context.Context, leave *model.Leave) error {
	for i := range s.leaves {
		if s.leaves[i].ID == leave.ID {
			s.leaves[i] = *leave
		}
	}
	return nil
}

func (s *fakeLeaveStore) DeleteLeave(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func TestAddLeave_HappyPath(t *testing.T) {
	store := newFakeLeaveStore()

	leave, err := AddLeave(context.Background(), store, zap.NewNop(), "n1", model.LeaveAnnual, "2025-06-10", "2025-06-14")
	require.NoError(t, err)

	assert.NotEmpty(t, leave.ID)
	assert.Equal(t, "Ayse", leave.NurseName)
	assert.Equal(t, model.LeaveAnnual, leave.Type)
	require.Len(t, store.leaves, 1)
}

func TestAddLeave_SingleDay(t *testing.T) {
	store := newFakeLeaveStore()

	_, err := AddLeave(context.Background(), store, zap.NewNop(), "n1", model.LeaveSick, "2025-06-10", "2025-06-10")

	assert.NoError(t, err)
}

func TestAddLeave_InvalidType(t *testing.T) {
	store := newFakeLeaveStore()

	_, err := AddLeave(context.Background(), store, zap.NewNop(), "n1", model.LeaveType("vacation"), "2025-06-10", "2025-06-14")

	assert.Error(t, err)
	assert.Empty(t, store.leaves)
}

func TestAddLeave_MalformedDates(t *testing.T) {
	store := newFakeLeaveStore()

	_, err := AddLeave(context.Background(), store, zap.NewNop(), "n1", model.LeaveAnnual, "10/06/2025", "2025-06-14")
	assert.Error(t, err)

	_, err = AddLeave(context.Background(), store, zap.NewNop(), "n1", model.LeaveAnnual, "2025-06-10", "14-06")
	assert.Error(t, err)
}

func TestAddLeave_EndBeforeStart(t *testing.T) {
	store := newFakeLeaveStore()

	_, err := AddLeave(context.Background(), store, zap.NewNop(), "n1", model.LeaveAnnual, "2025-06-14", "2025-06-10")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "before start date")
}

func TestAddLeave_UnknownNurse(t *testing.T) {
	store := newFakeLeaveStore()

	_, err := AddLeave(context.Background(), store, zap.NewNop(), "missing", model.LeaveAnnual, "2025-06-10", "2025-06-14")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetLeave(t *testing.T) {
	store := newFakeLeaveStore()
	store.leaves = []model.Leave{{ID: "l1", NurseID: "n1", Type: model.LeaveAnnual}}

	leave, err := GetLeave(context.Background(), store, "l1")
	require.NoError(t, err)
	assert.Equal(t, model.LeaveAnnual, leave.Type)
}

func TestGetLeave_Unknown(t *testing.T) {
	store := newFakeLeaveStore()

	_, err := GetLeave(context.Background(), store, "missing")

	assert.ErrorIs(t, err, ErrLeaveNotFound)
}

func TestEditLeave(t *testing.T) {
	store := newFakeLeaveStore()
	store.leaves = []model.Leave{{
		ID: "l1", NurseID: "n1", Type: model.LeaveAnnual,
		StartDate: "2025-06-10", EndDate: "2025-06-12",
	}}

	leave, err := EditLeave(context.Background(), store, zap.NewNop(), "l1", model.LeaveSick, "2025-06-11", "2025-06-13")
	require.NoError(t, err)

	assert.Equal(t, model.LeaveSick, leave.Type)
	assert.Equal(t, "2025-06-11", store.leaves[0].StartDate)
	assert.Equal(t, "2025-06-13", store.leaves[0].EndDate)
}

func TestEditLeave_EndBeforeStart(t *testing.T) {
	store := newFakeLeaveStore()
	store.leaves = []model.Leave{{ID: "l1", NurseID: "n1", Type: model.LeaveAnnual}}

	_, err := EditLeave(context.Background(), store, zap.NewNop(), "l1", model.LeaveAnnual, "2025-06-14", "2025-06-10")

	assert.Error(t, err)
}

func TestEditLeave_Unknown(t *testing.T) {
	store := newFakeLeaveStore()

	_, err := EditLeave(context.Background(), store, zap.NewNop(), "missing", model.LeaveAnnual, "2025-06-10", "2025-06-12")

	assert.ErrorIs(t, err, ErrLeaveNotFound)
}

func TestRemoveLeave(t *testing.T) {
	store := newFakeLeaveStore()

	err := RemoveLeave(context.Background(), store, zap.NewNop(), "l1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"l1"}, store.deleted)
}
