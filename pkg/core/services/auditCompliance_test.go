package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/compliance"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

func auditFixture() *fakeDatabase {
	db := newFakeDatabase()
	db.employees = []model.Employee{
		{ID: "emp1", Name: "Anna", ContractHours: 40, Active: true},
		{ID: "emp2", Name: "Bruno", ContractHours: 40, Active: true},
		{ID: "emp3", Name: "Carla", ContractHours: 40, Active: false},
	}
	shift := func(id, date, start, end string) model.ShiftAssignment {
		return model.ShiftAssignment{
			ID: date + "_store1_t_" + id, EmployeeID: id, ShiftID: "t",
			Date: date,
			Shift: model.ShiftType{
				ID: "t", Start: start, End: end,
				Category: model.CategoryMorning, Difficulty: 2, RequiredStaff: 1,
			},
			StoreID: "store1",
			Status:  model.StatusAssigned,
		}
	}
	// emp1: only 10h of rest between Monday and Tuesday
	for _, a := range []model.ShiftAssignment{
		shift("emp1", "2025-01-06", "09:00", "17:00"),
		shift("emp1", "2025-01-07", "03:00", "11:00"),
		shift("emp2", "2025-01-06", "09:00", "17:00"),
	} {
		db.assignments[a.ID] = a
	}
	return db
}

func TestAuditCompliance_AllActiveEmployees(t *testing.T) {
	db := auditFixture()

	reports, err := AuditCompliance(context.Background(), db, hybridConfig(), zap.NewNop(), "", "2025-01-06")
	require.NoError(t, err)

	// The inactive employee is skipped
	require.Len(t, reports, 2)

	byEmployee := make(map[string]compliance.ComplianceReport)
	for _, r := range reports {
		byEmployee[r.EmployeeID] = r
	}
	assert.Equal(t, compliance.StatusMajorViolations, byEmployee["emp1"].OverallStatus)
	assert.Equal(t, 75, byEmployee["emp1"].ComplianceScore)
	assert.Equal(t, compliance.StatusCompliant, byEmployee["emp2"].OverallStatus)
}

func TestAuditCompliance_SingleEmployee(t *testing.T) {
	db := auditFixture()

	reports, err := AuditCompliance(context.Background(), db, hybridConfig(), zap.NewNop(), "emp1", "2025-01-06")
	require.NoError(t, err)

	require.Len(t, reports, 1)
	assert.Equal(t, "emp1", reports[0].EmployeeID)
	require.Len(t, reports[0].Violations, 1)
	assert.Contains(t, reports[0].Violations[0].Description, "1.0h short")
}

func TestAuditCompliance_UnknownEmployee(t *testing.T) {
	db := auditFixture()

	_, err := AuditCompliance(context.Background(), db, hybridConfig(), zap.NewNop(), "emp9", "2025-01-06")
	assert.Error(t, err)
}

func TestAuditCompliance_InvalidWeekStart(t *testing.T) {
	db := auditFixture()

	_, err := AuditCompliance(context.Background(), db, hybridConfig(), zap.NewNop(), "", "next monday")
	assert.Error(t, err)
}

func TestComplianceLimits_ProjectsConfig(t *testing.T) {
	cfg := hybridConfig()
	cfg.Constraints.MinRestHours = 12
	cfg.Constraints.MaxWeeklyHours = 0 // silent: CCNL default applies

	limits := complianceLimits(cfg)
	assert.InDelta(t, 12.0, limits.MinDailyRestHours, 0.001)
	assert.InDelta(t, 40.0, limits.MaxWeeklyHours, 0.001)
	assert.InDelta(t, 35.0, limits.MinWeeklyRestHours, 0.001)
	assert.Equal(t, 6, limits.MaxConsecutiveDays)
}
