package scheduler

import (
	"time"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

// Algorithm selects a scoring weight preset. Explicit weights in Config
// override the preset.
type Algorithm string

const (
	AlgorithmRoundRobin      Algorithm = "round_robin"
	AlgorithmWeightedFair    Algorithm = "weighted_fair"
	AlgorithmPreferenceBased Algorithm = "preference_based"
	AlgorithmHybrid          Algorithm = "hybrid"
)

func (a Algorithm) IsValid() bool {
	switch a {
	case AlgorithmRoundRobin, AlgorithmWeightedFair, AlgorithmPreferenceBased, AlgorithmHybrid:
		return true
	}
	return false
}

// Weights are the four soft-objective scoring weights. For the hybrid
// algorithm they are expected to sum to 1.0; the engine uses them exactly
// as given and never normalizes.
type Weights struct {
	Equity     float64
	Preference float64
	Rest       float64
	Experience float64
}

// Sum returns the total of the four weights, used by callers to flag
// configurations that drift from the advisory 1.0.
func (w Weights) Sum() float64 {
	return w.Equity + w.Preference + w.Rest + w.Experience
}

// PresetWeights returns the weight preset for an algorithm variant.
func PresetWeights(a Algorithm) Weights {
	switch a {
	case AlgorithmRoundRobin:
		// Pure rotation: equity only
		return Weights{Equity: 1.0}
	case AlgorithmPreferenceBased:
		return Weights{Equity: 0.2, Preference: 0.6, Rest: 0.1, Experience: 0.1}
	case AlgorithmWeightedFair:
		return Weights{Equity: 0.5, Preference: 0.2, Rest: 0.2, Experience: 0.1}
	default:
		return Weights{Equity: 0.3, Preference: 0.3, Rest: 0.2, Experience: 0.2}
	}
}

// Constraints are the hard labor-rule limits applied during eligibility
// filtering. Zero values for the numeric fields fall back to Defaults.
type Constraints struct {
	MinRestHours           float64
	MaxConsecutiveDays     int
	MaxWeeklyHours         float64
	MinWeeklyHours         float64
	RequireWeekendRotation bool
}

// DefaultConstraints are the CCNL baseline limits.
func DefaultConstraints() Constraints {
	return Constraints{
		MinRestHours:       11,
		MaxConsecutiveDays: 6,
		MaxWeeklyHours:     40,
		MinWeeklyHours:     0,
	}
}

// StaffKey indexes a per-store, per-weekday staffing override.
type StaffKey struct {
	StoreID string
	Day     time.Weekday
}

// StaffLevels is a min/max headcount override for one slot key.
type StaffLevels struct {
	Min int
	Max int
}

// StaffTable is a fixed-shape override table keyed by (store, weekday).
// Lookup returns an explicit ok sentinel instead of nested optional maps.
type StaffTable struct {
	levels map[StaffKey]StaffLevels
}

// NewStaffTable creates an empty override table.
func NewStaffTable() *StaffTable {
	return &StaffTable{levels: make(map[StaffKey]StaffLevels)}
}

// Set registers an override for the given store and weekday.
func (t *StaffTable) Set(storeID string, day time.Weekday, levels StaffLevels) {
	t.levels[StaffKey{StoreID: storeID, Day: day}] = levels
}

// Lookup returns the override for the given store and weekday, if any.
func (t *StaffTable) Lookup(storeID string, day time.Weekday) (StaffLevels, bool) {
	if t == nil || t.levels == nil {
		return StaffLevels{}, false
	}
	levels, ok := t.levels[StaffKey{StoreID: storeID, Day: day}]
	return levels, ok
}

// ClosureCalendar marks dates on which a store is closed in addition to its
// weekly opening hours (public holidays, seasonal closures). An empty store
// id marks the date closed for every store.
type ClosureCalendar struct {
	closed map[string]map[string]bool // store id -> date -> closed
}

// NewClosureCalendar creates an empty closure calendar.
func NewClosureCalendar() *ClosureCalendar {
	return &ClosureCalendar{closed: make(map[string]map[string]bool)}
}

// MarkClosed records a closed date for a store ("" = all stores).
func (c *ClosureCalendar) MarkClosed(storeID, date string) {
	if c.closed[storeID] == nil {
		c.closed[storeID] = make(map[string]bool)
	}
	c.closed[storeID][date] = true
}

// IsClosed reports whether the store is closed on the date. Safe on nil.
func (c *ClosureCalendar) IsClosed(storeID, date string) bool {
	if c == nil {
		return false
	}
	return c.closed[storeID][date] || c.closed[""][date]
}

// Config is the engine configuration, read once at the start of a run.
type Config struct {
	Algorithm     Algorithm
	Weights       Weights
	LookAheadDays int
	MaxIterations int
	Constraints   Constraints
	StaffTable    *StaffTable
}

// Request carries every input of one engine run. All data is in memory;
// the engine performs no I/O.
type Request struct {
	Employees   []model.Employee
	Stores      []model.Store
	ShiftTypes  []model.ShiftType
	Preferences map[string]model.EmployeePreference // by employee id
	Existing    []model.ShiftAssignment             // committed elsewhere
	StartDate   string                              // YYYY-MM-DD, inclusive
	EndDate     string                              // YYYY-MM-DD, inclusive
	StoreID     string                              // optional single-store filter
	Closures    *ClosureCalendar                    // optional extra closed dates
	AssignedBy  string
	Now         time.Time // assignment timestamp, supplied for determinism
}

// Reason explains an empty engine result.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonNoEmployees    Reason = "no_employees"
	ReasonNoStores       Reason = "no_stores"
	ReasonNoShiftTypes   Reason = "no_shift_types"
	ReasonStoreNotFound  Reason = "store_not_found"
	ReasonNoOpeningHours Reason = "no_opening_hours"
	ReasonBadInterval    Reason = "bad_date_interval"
)

// SlotShortfall reports a slot left below its minimum headcount.
type SlotShortfall struct {
	Date        string
	StoreID     string
	ShiftTypeID string
	Required    int
	Filled      int
}

// Result is the output of one engine run: the new assignments plus a
// structured run summary. Input problems surface as a Reason, never as an
// error.
type Result struct {
	Assignments      []model.ShiftAssignment
	Reason           Reason
	UnfilledSlots    int
	Shortfalls       []SlotShortfall
	CountsByDate     map[string]int
	CountsByEmployee map[string]int
	SlotsEvaluated   int
	TruncatedSlots   int // slots whose candidate pool hit the MaxIterations cap
}

// slot is one (date, store, shift type) vacancy requiring a headcount.
type slot struct {
	date      string
	weekday   time.Weekday
	store     *model.Store
	shiftType model.ShiftType
	required  int
}

// interval is one worked span, used for rest-gap computation.
type interval struct {
	start time.Time
	end   time.Time
}

// employeeRun accumulates one employee's running totals over a run:
// committed history plus placements made earlier in the same run.
type employeeRun struct {
	weeklyHours  map[string]float64 // Monday date -> net hours that week
	workedDates  map[string]bool
	intervals    []interval
	weekendDays  int
	placedInRun  int
	historyCount int
}

// runState is the in-run accumulator. It is owned exclusively by one
// engine execution and never shared between concurrent runs.
type runState struct {
	employees map[string]*employeeRun
	byDate    map[string]map[string]bool // date -> employee id -> booked
}

func newRunState() *runState {
	return &runState{
		employees: make(map[string]*employeeRun),
		byDate:    make(map[string]map[string]bool),
	}
}

func (rs *runState) forEmployee(id string) *employeeRun {
	er, ok := rs.employees[id]
	if !ok {
		er = &employeeRun{
			weeklyHours: make(map[string]float64),
			workedDates: make(map[string]bool),
		}
		rs.employees[id] = er
	}
	return er
}

// bookedOn reports whether the employee already holds an assignment on the
// date, committed or placed earlier in this run.
func (rs *runState) bookedOn(date, employeeID string) bool {
	return rs.byDate[date][employeeID]
}

// record folds one assignment into the accumulator. fromHistory marks
// previously committed assignments loaded at run start.
func (rs *runState) record(a model.ShiftAssignment, fromHistory bool) {
	er := rs.forEmployee(a.EmployeeID)

	if rs.byDate[a.Date] == nil {
		rs.byDate[a.Date] = make(map[string]bool)
	}
	rs.byDate[a.Date][a.EmployeeID] = true

	er.workedDates[a.Date] = true
	if day, err := model.ParseDate(a.Date); err == nil {
		er.weeklyHours[weekKey(day)] += a.Shift.NetDurationHours()
		if model.IsWeekend(day) {
			er.weekendDays++
		}
	}
	if start, err := a.StartTime(); err == nil {
		if end, err := a.EndTime(); err == nil {
			er.intervals = append(er.intervals, interval{start: start, end: end})
		}
	}
	if fromHistory {
		er.historyCount++
	} else {
		er.placedInRun++
	}
}

// load is the employee's recent load used by the equity term: placements
// this run plus committed history.
func (er *employeeRun) load() int {
	return er.placedInRun + er.historyCount
}

// lastEndBefore returns the end of the employee's most recent shift ending
// at or before t, or false when there is none.
func (er *employeeRun) lastEndBefore(t time.Time) (time.Time, bool) {
	var best time.Time
	found := false
	for _, iv := range er.intervals {
		if !iv.end.After(t) && (!found || iv.end.After(best)) {
			best = iv.end
			found = true
		}
	}
	return best, found
}

// consecutiveRunWith returns the length of the consecutive worked-day run
// that would exist if date were added to the employee's worked dates.
func (er *employeeRun) consecutiveRunWith(date time.Time) int {
	run := 1
	for d := date.AddDate(0, 0, -1); er.workedDates[d.Format(model.DateLayout)]; d = d.AddDate(0, 0, -1) {
		run++
	}
	for d := date.AddDate(0, 0, 1); er.workedDates[d.Format(model.DateLayout)]; d = d.AddDate(0, 0, 1) {
		run++
	}
	return run
}

// weekKey returns the Monday of the week containing the date, the key used
// for weekly hour ceilings.
func weekKey(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return t.AddDate(0, 0, -offset).Format(model.DateLayout)
}
