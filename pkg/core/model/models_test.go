package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	minutes, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	_, err = ParseClock("9am")
	assert.Error(t, err)
	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestShiftTypeValidate(t *testing.T) {
	valid := ShiftType{ID: "am", Start: "09:00", End: "13:00", Difficulty: 2, RequiredStaff: 1}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*ShiftType)
	}{
		{"end before start", func(st *ShiftType) { st.End = "08:00" }},
		{"end equals start", func(st *ShiftType) { st.End = st.Start }},
		{"garbage start", func(st *ShiftType) { st.Start = "soon" }},
		{"difficulty out of range", func(st *ShiftType) { st.Difficulty = 6 }},
		{"zero required staff", func(st *ShiftType) { st.RequiredStaff = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := valid
			tt.mutate(&st)
			assert.Error(t, st.Validate())
		})
	}
}

func TestNetDurationHours(t *testing.T) {
	st := ShiftType{Start: "09:00", End: "17:00"}
	assert.InDelta(t, 8.0, st.NetDurationHours(), 0.001)

	st.BreakMinutes = 30
	assert.InDelta(t, 7.5, st.NetDurationHours(), 0.001)

	// A break longer than the span clamps to zero rather than going negative
	st.BreakMinutes = 600
	assert.Zero(t, st.NetDurationHours())
}

func TestStartOnEndOn(t *testing.T) {
	st := ShiftType{Start: "09:00", End: "17:30"}

	start, err := st.StartOn("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), start)

	end, err := st.EndOn("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 6, 17, 30, 0, 0, time.UTC), end)

	_, err = st.StartOn("06/01/2025")
	assert.Error(t, err)
}

func TestPriorityFactor(t *testing.T) {
	assert.Equal(t, 1.0, PriorityHigh.Factor())
	assert.Equal(t, 0.75, PriorityMedium.Factor())
	assert.Equal(t, 0.5, PriorityLow.Factor())
	// Unset priority defaults to the medium factor
	assert.Equal(t, 0.75, PreferencePriority("").Factor())
}

func TestStoreOpenOn(t *testing.T) {
	store := Store{OpeningHours: map[time.Weekday]Interval{
		time.Monday: {Open: "09:00", Close: "18:00"},
	}}

	iv, open := store.OpenOn(time.Monday)
	assert.True(t, open)
	assert.Equal(t, 540, iv.OpenMinutes())
	assert.Equal(t, 1080, iv.CloseMinutes())

	_, open = store.OpenOn(time.Sunday)
	assert.False(t, open)

	assert.True(t, store.HasOpeningHours())
	assert.False(t, Store{}.HasOpeningHours())
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)))  // Saturday
	assert.True(t, IsWeekend(time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)))  // Sunday
	assert.False(t, IsWeekend(time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC))) // Monday
}

func TestEmployeePreferenceLookups(t *testing.T) {
	pref := EmployeePreference{
		UnavailableDates:    []string{"2025-01-06"},
		PreferredShiftTypes: []string{"am"},
		PreferredDaysOff:    []time.Weekday{time.Sunday},
	}

	assert.True(t, pref.IsUnavailable("2025-01-06"))
	assert.False(t, pref.IsUnavailable("2025-01-07"))
	assert.True(t, pref.PrefersShiftType("am"))
	assert.False(t, pref.PrefersShiftType("pm"))
	assert.True(t, pref.PrefersDayOff(time.Sunday))
	assert.False(t, pref.PrefersDayOff(time.Monday))
}
