package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

var (
	periodFrom = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	periodTo   = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
)

func assignmentFor(employeeID, date string, category model.ShiftCategory) model.ShiftAssignment {
	return model.ShiftAssignment{
		ID:         date + "_store1_t_" + employeeID,
		EmployeeID: employeeID,
		ShiftID:    "t",
		Date:       date,
		Shift: model.ShiftType{
			ID: "t", Start: "09:00", End: "17:00",
			Category: category, Difficulty: 2, RequiredStaff: 1,
		},
		StoreID: "store1",
		Status:  model.StatusAssigned,
	}
}

func TestTeamEquityScore(t *testing.T) {
	tests := []struct {
		name     string
		counts   []int
		expected int
	}{
		{"no employees", nil, 100},
		{"perfectly even", []int{5, 5, 5}, 100},
		{"single employee", []int{12}, 100},
		{"one shift apart", []int{4, 5}, 95}, // stddev 0.5
		{"two apart", []int{4, 6}, 90},       // stddev 1.0
		{"badly skewed", []int{0, 20}, 0},    // stddev 10.0
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TeamEquityScore(tt.counts))
		})
	}
}

func TestTeamEquityScore_Monotonicity(t *testing.T) {
	// Rebalancing the same total toward even never lowers the score
	assert.GreaterOrEqual(t, TeamEquityScore([]int{5, 5}), TeamEquityScore([]int{4, 6}))
	assert.GreaterOrEqual(t, TeamEquityScore([]int{4, 6}), TeamEquityScore([]int{2, 8}))
	assert.GreaterOrEqual(t, TeamEquityScore([]int{2, 8}), TeamEquityScore([]int{0, 10}))
}

func TestSummarize(t *testing.T) {
	assignments := []model.ShiftAssignment{
		assignmentFor("emp1", "2025-01-06", model.CategoryMorning),
		assignmentFor("emp1", "2025-01-08", model.CategoryAfternoon),
		assignmentFor("emp2", "2025-01-07", model.CategoryMorning),
		assignmentFor("emp2", "2025-01-09", model.CategoryMorning),
	}

	summary := Summarize(assignments, periodFrom, periodTo)

	assert.Equal(t, 4, summary.TotalShifts)
	assert.Equal(t, 100, summary.EquityScore)
	assert.Equal(t, map[string]int{"emp1": 2, "emp2": 2}, summary.ShiftsByEmployee)
	assert.Equal(t, map[model.ShiftCategory]int{
		model.CategoryMorning:   3,
		model.CategoryAfternoon: 1,
	}, summary.ShiftsByCategory)
}

func TestSummarize_ExcludesOutOfPeriod(t *testing.T) {
	assignments := []model.ShiftAssignment{
		assignmentFor("emp2", "2024-12-31", model.CategoryMorning),
		assignmentFor("emp2", "2025-02-01", model.CategoryMorning),
		assignmentFor("emp2", "2025-01-15", model.CategoryMorning),
	}

	summary := Summarize(assignments, periodFrom, periodTo)
	assert.Equal(t, 1, summary.TotalShifts)
	assert.Equal(t, map[string]int{"emp2": 1}, summary.ShiftsByEmployee)
}

func TestSummarize_SubstitutedCountsForCurrentHolder(t *testing.T) {
	// After an approved substitution the record carries the substitute's id
	// with status substituted: the hours belong to them, not to nobody
	substituted := assignmentFor("emp2", "2025-01-06", model.CategoryMorning)
	substituted.Status = model.StatusSubstituted

	assignments := []model.ShiftAssignment{
		substituted,
		assignmentFor("emp1", "2025-01-07", model.CategoryMorning),
	}

	summary := Summarize(assignments, periodFrom, periodTo)
	assert.Equal(t, 2, summary.TotalShifts)
	assert.Equal(t, map[string]int{"emp1": 1, "emp2": 1}, summary.ShiftsByEmployee)

	s, ok := Compute("emp2", assignments, periodFrom, periodTo)
	require.True(t, ok)
	assert.Equal(t, 1, s.TotalShifts)
	assert.InDelta(t, 8.0, s.TotalHours, 0.001)
}

func TestCompute(t *testing.T) {
	assignments := []model.ShiftAssignment{
		assignmentFor("emp1", "2025-01-06", model.CategoryMorning),
		assignmentFor("emp1", "2025-01-07", model.CategoryMorning),
		assignmentFor("emp1", "2025-01-08", model.CategoryAfternoon),
		assignmentFor("emp2", "2025-01-06", model.CategoryMorning),
		assignmentFor("emp2", "2025-01-09", model.CategoryAfternoon),
		assignmentFor("emp2", "2025-01-10", model.CategoryMorning),
	}

	s, ok := Compute("emp1", assignments, periodFrom, periodTo)
	require.True(t, ok)

	assert.Equal(t, "emp1", s.EmployeeID)
	assert.Equal(t, 3, s.TotalShifts)
	assert.InDelta(t, 24.0, s.TotalHours, 0.001)
	assert.Equal(t, 3, s.MaxConsecutiveDays)
	assert.Equal(t, "2025-01-08", s.LastAssignment)
	assert.Equal(t, map[model.ShiftCategory]int{
		model.CategoryMorning:   2,
		model.CategoryAfternoon: 1,
	}, s.ShiftsByCategory)
	// Shifts end 17:00 and restart 09:00 the next day
	assert.InDelta(t, 16.0, s.AverageRestHours, 0.001)

	// Exactly the team-mean load with a near-team category mix
	assert.Greater(t, s.RotationScore, 90)
}

func TestCompute_NoAssignments(t *testing.T) {
	assignments := []model.ShiftAssignment{
		assignmentFor("emp2", "2025-01-06", model.CategoryMorning),
	}

	_, ok := Compute("emp1", assignments, periodFrom, periodTo)
	assert.False(t, ok)

	_, ok = Compute("emp1", nil, periodFrom, periodTo)
	assert.False(t, ok)
}

func TestRotationScore_BalancedBeatsSkewed(t *testing.T) {
	balanced := []model.ShiftAssignment{
		assignmentFor("emp1", "2025-01-06", model.CategoryMorning),
		assignmentFor("emp1", "2025-01-08", model.CategoryEvening),
		assignmentFor("emp2", "2025-01-07", model.CategoryMorning),
		assignmentFor("emp2", "2025-01-09", model.CategoryEvening),
	}
	b, ok := Compute("emp1", balanced, periodFrom, periodTo)
	require.True(t, ok)

	// emp1 hoards most of the load and only ever works mornings
	skewed := []model.ShiftAssignment{
		assignmentFor("emp1", "2025-01-06", model.CategoryMorning),
		assignmentFor("emp1", "2025-01-07", model.CategoryMorning),
		assignmentFor("emp1", "2025-01-08", model.CategoryMorning),
		assignmentFor("emp1", "2025-01-10", model.CategoryMorning),
		assignmentFor("emp1", "2025-01-11", model.CategoryMorning),
		assignmentFor("emp2", "2025-01-09", model.CategoryEvening),
	}
	s, ok := Compute("emp1", skewed, periodFrom, periodTo)
	require.True(t, ok)

	assert.Greater(t, b.RotationScore, s.RotationScore)
}

func TestStddev(t *testing.T) {
	assert.Zero(t, stddev(nil))
	assert.Zero(t, stddev([]int{3, 3, 3}))
	assert.InDelta(t, 1.0, stddev([]int{4, 6}), 0.001)
	assert.InDelta(t, 2.0, stddev([]int{2, 6}), 0.001)
}
