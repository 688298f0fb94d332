package model

import (
	"fmt"
	"time"
)

// DateLayout is the canonical date format used across the scheduling core.
const DateLayout = "2006-01-02"

// ClockLayout is the wall-clock format for shift and opening times.
const ClockLayout = "15:04"

// ShiftCategory classifies a shift type by its time of day
type ShiftCategory string

const (
	CategoryMorning   ShiftCategory = "morning"
	CategoryAfternoon ShiftCategory = "afternoon"
	CategoryEvening   ShiftCategory = "evening"
	CategoryNight     ShiftCategory = "night"
)

func (c ShiftCategory) IsValid() bool {
	switch c {
	case CategoryMorning, CategoryAfternoon, CategoryEvening, CategoryNight:
		return true
	}
	return false
}

// AssignmentStatus is the lifecycle state of a shift assignment
type AssignmentStatus string

const (
	StatusAssigned        AssignmentStatus = "assigned"
	StatusConfirmed       AssignmentStatus = "confirmed"
	StatusRequestedChange AssignmentStatus = "requested_change"
	StatusSubstituted     AssignmentStatus = "substituted"
)

// SubstitutionStatus is the lifecycle state of a substitution request
type SubstitutionStatus string

const (
	SubstitutionPending   SubstitutionStatus = "pending"
	SubstitutionApproved  SubstitutionStatus = "approved"
	SubstitutionRejected  SubstitutionStatus = "rejected"
	SubstitutionCompleted SubstitutionStatus = "completed"
)

// PreferencePriority grades how strongly an employee's stated preferences
// should influence candidate scoring
type PreferencePriority string

const (
	PriorityLow    PreferencePriority = "low"
	PriorityMedium PreferencePriority = "medium"
	PriorityHigh   PreferencePriority = "high"
)

// Factor returns the scoring multiplier applied to a preference match.
func (p PreferencePriority) Factor() float64 {
	switch p {
	case PriorityHigh:
		return 1.0
	case PriorityMedium:
		return 0.75
	case PriorityLow:
		return 0.5
	}
	return 0.75
}

// ShiftType is an immutable catalog entry describing a time-boxed shift
// template. Assignments embed a value copy so later catalog edits never
// rewrite history.
type ShiftType struct {
	ID            string
	Name          string
	Start         string // HH:MM wall clock
	End           string // HH:MM wall clock, must be after Start
	Category      ShiftCategory
	Difficulty    int // 1 (easiest) to 5 (hardest)
	RequiredStaff int
	BreakMinutes  int
}

// Validate fails fast on structurally invalid catalog entries.
func (st ShiftType) Validate() error {
	start, err := ParseClock(st.Start)
	if err != nil {
		return fmt.Errorf("shift type %s: invalid start time: %w", st.ID, err)
	}
	end, err := ParseClock(st.End)
	if err != nil {
		return fmt.Errorf("shift type %s: invalid end time: %w", st.ID, err)
	}
	if end <= start {
		return fmt.Errorf("shift type %s: end time %s is not after start time %s", st.ID, st.End, st.Start)
	}
	if st.Difficulty < 1 || st.Difficulty > 5 {
		return fmt.Errorf("shift type %s: difficulty %d out of range 1-5", st.ID, st.Difficulty)
	}
	if st.RequiredStaff < 1 {
		return fmt.Errorf("shift type %s: required staff must be at least 1", st.ID)
	}
	return nil
}

// StartMinutes returns the shift start as minutes after midnight.
func (st ShiftType) StartMinutes() int {
	m, _ := ParseClock(st.Start)
	return m
}

// EndMinutes returns the shift end as minutes after midnight.
func (st ShiftType) EndMinutes() int {
	m, _ := ParseClock(st.End)
	return m
}

// NetDurationHours is the worked span of the shift minus its break.
func (st ShiftType) NetDurationHours() float64 {
	span := st.EndMinutes() - st.StartMinutes() - st.BreakMinutes
	if span < 0 {
		span = 0
	}
	return float64(span) / 60.0
}

// StartOn anchors the shift start on a concrete date.
func (st ShiftType) StartOn(date string) (time.Time, error) {
	return combine(date, st.Start)
}

// EndOn anchors the shift end on a concrete date.
func (st ShiftType) EndOn(date string) (time.Time, error) {
	return combine(date, st.End)
}

// Employee is consumed read-only from the persistence collaborator
type Employee struct {
	ID            string
	Name          string
	ContractHours float64 // contractual hours per week
	MinHours      float64 // fixed minimum hours per week
	Active        bool
	StoreID       string // home store, empty if unattached
}

// Interval is a store opening window on one weekday
type Interval struct {
	Open  string // HH:MM
	Close string // HH:MM
}

// OpenMinutes returns the opening time as minutes after midnight.
func (iv Interval) OpenMinutes() int {
	m, _ := ParseClock(iv.Open)
	return m
}

// CloseMinutes returns the closing time as minutes after midnight.
func (iv Interval) CloseMinutes() int {
	m, _ := ParseClock(iv.Close)
	return m
}

// Store is consumed read-only; a weekday missing from OpeningHours means
// the store is closed that day.
type Store struct {
	ID           string
	Name         string
	Active       bool
	OpeningHours map[time.Weekday]Interval
}

// OpenOn reports the opening interval for a weekday, if any.
func (s Store) OpenOn(day time.Weekday) (Interval, bool) {
	iv, ok := s.OpeningHours[day]
	return iv, ok
}

// HasOpeningHours reports whether the store opens on any weekday at all.
func (s Store) HasOpeningHours() bool {
	return len(s.OpeningHours) > 0
}

// EmployeePreference holds one employee's stated scheduling preferences,
// created by the employee-facing form and consumed read-only here.
type EmployeePreference struct {
	EmployeeID          string
	PreferredShiftTypes []string // shift-type ids
	UnavailableDates    []string // YYYY-MM-DD
	MaxConsecutiveDays  int      // 0 = no personal limit beyond config
	PreferredDaysOff    []time.Weekday
	Priority            PreferencePriority
	Notes               string
}

// IsUnavailable reports whether the employee blocked out the given date.
func (p EmployeePreference) IsUnavailable(date string) bool {
	for _, d := range p.UnavailableDates {
		if d == date {
			return true
		}
	}
	return false
}

// PrefersShiftType reports whether the shift type is on the preferred list.
func (p EmployeePreference) PrefersShiftType(shiftTypeID string) bool {
	for _, id := range p.PreferredShiftTypes {
		if id == shiftTypeID {
			return true
		}
	}
	return false
}

// PrefersDayOff reports whether the employee asked to keep this weekday free.
func (p EmployeePreference) PrefersDayOff(day time.Weekday) bool {
	for _, d := range p.PreferredDaysOff {
		if d == day {
			return true
		}
	}
	return false
}

// ShiftAssignment records one employee working one shift on one date.
// Shift is a value copy of the catalog entry taken at creation time and
// RotationScore is frozen at assignment time; neither is ever recomputed.
type ShiftAssignment struct {
	ID            string
	EmployeeID    string
	ShiftID       string
	Date          string // YYYY-MM-DD
	Shift         ShiftType
	StoreID       string
	Status        AssignmentStatus
	AssignedBy    string
	AssignedAt    time.Time
	ConfirmedAt   *time.Time
	RotationScore float64
}

// StartTime returns the concrete start instant of the assigned shift.
func (a ShiftAssignment) StartTime() (time.Time, error) {
	return a.Shift.StartOn(a.Date)
}

// EndTime returns the concrete end instant of the assigned shift.
func (a ShiftAssignment) EndTime() (time.Time, error) {
	return a.Shift.EndOn(a.Date)
}

// SubstitutionRequest tracks a request to swap an assignment to another
// employee. Approval triggers exactly one ShiftAssignment mutation.
type SubstitutionRequest struct {
	ID                 string
	AssignmentID       string
	RequestedBy        string
	RequestedAt        time.Time
	Reason             string
	Status             SubstitutionStatus
	ProposedSubstitute string // employee id, empty if none proposed
	ApprovedBy         string
	ApprovedAt         *time.Time
	Notes              string
}

// ParseDate parses a canonical YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseClock parses an HH:MM wall-clock time into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

func combine(date, clock string) (time.Time, error) {
	t, err := time.Parse(DateLayout+" "+ClockLayout, date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}
