package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

func seedAssignment(db *fakeDatabase) model.ShiftAssignment {
	a := model.ShiftAssignment{
		ID: "2025-01-06_store1_day_emp1", EmployeeID: "emp1", ShiftID: "day",
		Date: "2025-01-06",
		Shift: model.ShiftType{
			ID: "day", Start: "09:00", End: "17:00",
			Category: model.CategoryMorning, Difficulty: 2, RequiredStaff: 1,
		},
		StoreID: "store1",
		Status:  model.StatusAssigned,
	}
	db.assignments[a.ID] = a
	return a
}

func TestSubstitutionLifecycle_Approved(t *testing.T) {
	db := newFakeDatabase()
	a := seedAssignment(db)
	ctx := context.Background()

	request, err := RequestSubstitution(ctx, db, zap.NewNop(), a.ID, "emp1", "medical appointment", "emp2")
	require.NoError(t, err)

	assert.Equal(t, model.SubstitutionPending, request.Status)
	assert.Equal(t, "emp2", request.ProposedSubstitute)
	assert.Equal(t, model.StatusRequestedChange, db.assignments[a.ID].Status)

	updatesBefore := db.assignmentUpdates
	require.NoError(t, ApproveSubstitution(ctx, db, zap.NewNop(), request.ID, "", "manager"))

	// Approval performs the employee swap as a single assignment write
	assert.Equal(t, updatesBefore+1, db.assignmentUpdates)
	swapped := db.assignments[a.ID]
	assert.Equal(t, "emp2", swapped.EmployeeID)
	assert.Equal(t, model.StatusSubstituted, swapped.Status)

	completed := db.substitutions[request.ID]
	assert.Equal(t, model.SubstitutionCompleted, completed.Status)
	assert.Equal(t, "manager", completed.ApprovedBy)
	require.NotNil(t, completed.ApprovedAt)
}

func TestApproveSubstitution_ExplicitSubstituteWins(t *testing.T) {
	db := newFakeDatabase()
	a := seedAssignment(db)
	ctx := context.Background()

	request, err := RequestSubstitution(ctx, db, zap.NewNop(), a.ID, "emp1", "swap", "emp2")
	require.NoError(t, err)

	require.NoError(t, ApproveSubstitution(ctx, db, zap.NewNop(), request.ID, "emp3", "manager"))
	assert.Equal(t, "emp3", db.assignments[a.ID].EmployeeID)
	assert.Equal(t, "emp3", db.substitutions[request.ID].ProposedSubstitute)
}

func TestApproveSubstitution_Errors(t *testing.T) {
	db := newFakeDatabase()
	a := seedAssignment(db)
	ctx := context.Background()
	logger := zap.NewNop()

	assert.Error(t, ApproveSubstitution(ctx, db, logger, "missing", "emp2", "manager"))

	request, err := RequestSubstitution(ctx, db, logger, a.ID, "emp1", "swap", "")
	require.NoError(t, err)

	// No proposed substitute and none supplied
	assert.Error(t, ApproveSubstitution(ctx, db, logger, request.ID, "", "manager"))
	// The substitute already holds the shift
	assert.Error(t, ApproveSubstitution(ctx, db, logger, request.ID, "emp1", "manager"))

	require.NoError(t, ApproveSubstitution(ctx, db, logger, request.ID, "emp2", "manager"))
	// No longer pending
	assert.Error(t, ApproveSubstitution(ctx, db, logger, request.ID, "emp3", "manager"))
}

func TestRejectSubstitution_RestoresAssignment(t *testing.T) {
	db := newFakeDatabase()
	a := seedAssignment(db)
	ctx := context.Background()

	request, err := RequestSubstitution(ctx, db, zap.NewNop(), a.ID, "emp1", "swap", "emp2")
	require.NoError(t, err)
	require.Equal(t, model.StatusRequestedChange, db.assignments[a.ID].Status)

	require.NoError(t, RejectSubstitution(ctx, db, zap.NewNop(), request.ID, "manager", "coverage needed"))

	rejected := db.substitutions[request.ID]
	assert.Equal(t, model.SubstitutionRejected, rejected.Status)
	assert.Equal(t, "coverage needed", rejected.Notes)

	restored := db.assignments[a.ID]
	assert.Equal(t, "emp1", restored.EmployeeID)
	assert.Equal(t, model.StatusAssigned, restored.Status)
}

func TestRequestSubstitution_Errors(t *testing.T) {
	db := newFakeDatabase()
	a := seedAssignment(db)
	ctx := context.Background()
	logger := zap.NewNop()

	_, err := RequestSubstitution(ctx, db, logger, "missing", "emp1", "swap", "")
	assert.Error(t, err)

	substituted := db.assignments[a.ID]
	substituted.Status = model.StatusSubstituted
	db.assignments[a.ID] = substituted

	_, err = RequestSubstitution(ctx, db, logger, a.ID, "emp1", "swap", "")
	assert.Error(t, err)
}

func TestConfirmAssignment(t *testing.T) {
	db := newFakeDatabase()
	a := seedAssignment(db)
	ctx := context.Background()

	require.NoError(t, ConfirmAssignment(ctx, db, zap.NewNop(), a.ID))

	confirmed := db.assignments[a.ID]
	assert.Equal(t, model.StatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.ConfirmedAt)

	// Only assigned shifts can be confirmed
	assert.Error(t, ConfirmAssignment(ctx, db, zap.NewNop(), a.ID))
	assert.Error(t, ConfirmAssignment(ctx, db, zap.NewNop(), "missing"))
}
