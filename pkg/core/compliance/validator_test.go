package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func shiftOn(date, start, end string) model.ShiftAssignment {
	return model.ShiftAssignment{
		ID:         date + "_store1_t_emp1",
		EmployeeID: "emp1",
		ShiftID:    "t",
		Date:       date,
		Shift: model.ShiftType{
			ID: "t", Start: start, End: end,
			Category: model.CategoryMorning, Difficulty: 2, RequiredStaff: 1,
		},
		StoreID: "store1",
		Status:  model.StatusAssigned,
	}
}

func TestEvaluate_DailyRestBoundary(t *testing.T) {
	// Shift ends Monday 17:00; the next starts Tuesday 04:00: exactly 11.0h
	assignments := []model.ShiftAssignment{
		shiftOn("2025-01-06", "09:00", "17:00"),
		shiftOn("2025-01-07", "04:00", "12:00"),
	}

	report := Evaluate("emp1", monday, assignments, DefaultLimits())

	require.Len(t, report.DailyRest, 1)
	assert.InDelta(t, 11.0, report.DailyRest[0].RestHours, 0.001)
	assert.True(t, report.DailyRest[0].HasMinimumRest)
	assert.Empty(t, report.Violations)
	assert.Equal(t, StatusCompliant, report.OverallStatus)
	assert.Equal(t, 100, report.ComplianceScore)
}

func TestEvaluate_DailyRestJustBelowMinimum(t *testing.T) {
	// 10.9h of rest: a tenth of an hour short is already a critical breach
	assignments := []model.ShiftAssignment{
		shiftOn("2025-01-06", "09:00", "17:00"),
		shiftOn("2025-01-07", "03:54", "12:00"),
	}

	report := Evaluate("emp1", monday, assignments, DefaultLimits())

	require.Len(t, report.DailyRest, 1)
	assert.False(t, report.DailyRest[0].HasMinimumRest)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, SeverityCritical, report.Violations[0].Severity)
	assert.Contains(t, report.Violations[0].Description, "0.1h short")
	assert.Equal(t, "D.Lgs. 66/2003, art. 7", report.Violations[0].Regulation)
	assert.Equal(t, StatusMajorViolations, report.OverallStatus)
	assert.Equal(t, 75, report.ComplianceScore)
}

func TestEvaluate_MixedRestGaps(t *testing.T) {
	// Gaps of 16h, 13h and 10h: only the last one violates, 1.0h short
	assignments := []model.ShiftAssignment{
		shiftOn("2025-01-06", "09:00", "17:00"),
		shiftOn("2025-01-07", "09:00", "17:00"),
		shiftOn("2025-01-08", "06:00", "18:00"),
		shiftOn("2025-01-09", "04:00", "12:00"),
	}

	report := Evaluate("emp1", monday, assignments, DefaultLimits())

	require.Len(t, report.DailyRest, 3)
	assert.InDelta(t, 16.0, report.DailyRest[0].RestHours, 0.001)
	assert.True(t, report.DailyRest[0].HasMinimumRest)
	assert.InDelta(t, 13.0, report.DailyRest[1].RestHours, 0.001)
	assert.True(t, report.DailyRest[1].HasMinimumRest)
	assert.InDelta(t, 10.0, report.DailyRest[2].RestHours, 0.001)
	assert.False(t, report.DailyRest[2].HasMinimumRest)

	require.Len(t, report.Violations, 1)
	assert.Contains(t, report.Violations[0].Description, "1.0h short")
	assert.Contains(t, report.Violations[0].Description, "2025-01-09")
}

func TestEvaluate_WeeklyRestFromWindowEdges(t *testing.T) {
	// A single mid-week shift: the rest span to the window edge counts
	assignments := []model.ShiftAssignment{
		shiftOn("2025-01-08", "09:00", "17:00"),
	}

	report := Evaluate("emp1", monday, assignments, DefaultLimits())

	// Wednesday 17:00 to the following Monday 00:00 is the longest span
	assert.InDelta(t, 103.0, report.WeeklyRest.MeasuredHours, 0.001)
	assert.True(t, report.WeeklyRest.Compliant)
	assert.Equal(t, StatusCompliant, report.OverallStatus)
}

func TestEvaluate_SevenStraightDays(t *testing.T) {
	var assignments []model.ShiftAssignment
	for d := 0; d < 7; d++ {
		date := monday.AddDate(0, 0, d).Format(model.DateLayout)
		assignments = append(assignments, shiftOn(date, "09:00", "17:00"))
	}

	report := Evaluate("emp1", monday, assignments, DefaultLimits())

	// Longest rest is the nightly 16h: the 35h weekly rest rule is broken,
	// and 56 worked hours plus a 7-day run add two warnings
	assert.False(t, report.WeeklyRest.Compliant)
	assert.InDelta(t, 16.0, report.WeeklyRest.MeasuredHours, 0.001)

	criticals, warnings := 0, 0
	for _, v := range report.Violations {
		switch v.Severity {
		case SeverityCritical:
			criticals++
		case SeverityWarning:
			warnings++
		}
	}
	assert.Equal(t, 1, criticals)
	assert.Equal(t, 2, warnings)
	assert.Equal(t, StatusMajorViolations, report.OverallStatus)
	assert.Equal(t, 55, report.ComplianceScore)
}

func TestEvaluate_WarningsOnlyAreMinor(t *testing.T) {
	// Five 8h days with ample rest: 40h total trips the lowered weekly-hours
	// ceiling while every rest rule stays satisfied
	var assignments []model.ShiftAssignment
	for d := 0; d < 6; d++ {
		if d == 3 {
			continue // rest day keeps the consecutive run legal and weekly rest long
		}
		date := monday.AddDate(0, 0, d).Format(model.DateLayout)
		assignments = append(assignments, shiftOn(date, "09:00", "17:00"))
	}
	limits := DefaultLimits()
	limits.MaxWeeklyHours = 30

	report := Evaluate("emp1", monday, assignments, limits)

	require.Len(t, report.Violations, 1)
	assert.Equal(t, SeverityWarning, report.Violations[0].Severity)
	assert.Equal(t, "CCNL Terziario, orario settimanale", report.Violations[0].Regulation)
	assert.Equal(t, StatusMinorViolations, report.OverallStatus)
	assert.Equal(t, 90, report.ComplianceScore)
}

func TestEvaluate_EmptyWeekIsCompliant(t *testing.T) {
	report := Evaluate("emp1", monday, nil, DefaultLimits())

	assert.Empty(t, report.Violations)
	assert.Empty(t, report.DailyRest)
	assert.InDelta(t, 168.0, report.WeeklyRest.MeasuredHours, 0.001)
	assert.Equal(t, StatusCompliant, report.OverallStatus)
	assert.Equal(t, 100, report.ComplianceScore)
}

func TestEvaluate_FiltersForeignAndOutsideWindow(t *testing.T) {
	other := shiftOn("2025-01-07", "03:00", "11:00")
	other.EmployeeID = "emp2"

	outside := shiftOn("2025-01-20", "09:00", "17:00")

	assignments := []model.ShiftAssignment{
		shiftOn("2025-01-06", "09:00", "17:00"),
		other, outside,
	}

	report := Evaluate("emp1", monday, assignments, DefaultLimits())

	// Only the Monday shift belongs to emp1's week, so no gaps are measured
	assert.Empty(t, report.DailyRest)
	assert.Empty(t, report.Violations)
	assert.Equal(t, StatusCompliant, report.OverallStatus)
}

func TestEvaluate_SubstituteShiftAudited(t *testing.T) {
	// emp2 substituted into the Monday shift; the record now carries their
	// id with status substituted. Their Tuesday shift starts only 10h after
	// it ends, which must surface in emp2's rest audit.
	substituted := shiftOn("2025-01-06", "09:00", "17:00")
	substituted.EmployeeID = "emp2"
	substituted.Status = model.StatusSubstituted

	next := shiftOn("2025-01-07", "03:00", "11:00")
	next.EmployeeID = "emp2"

	report := Evaluate("emp2", monday, []model.ShiftAssignment{substituted, next}, DefaultLimits())

	require.Len(t, report.DailyRest, 1)
	assert.InDelta(t, 10.0, report.DailyRest[0].RestHours, 0.001)
	assert.False(t, report.DailyRest[0].HasMinimumRest)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, SeverityCritical, report.Violations[0].Severity)
	assert.Contains(t, report.Violations[0].Description, "1.0h short")
	assert.Equal(t, StatusMajorViolations, report.OverallStatus)
}
