package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

// Engine assigns shifts over a date interval using a day-by-day,
// slot-by-slot greedy pass with scored candidate selection. One Engine
// value owns one run's accumulator and must not be shared between
// concurrent runs; callers partition concurrent work by store.
type Engine struct {
	cfg Config
}

// New creates an engine for one configuration. Zero-valued constraint
// fields fall back to the CCNL defaults and an unset weight block falls
// back to the algorithm preset.
func New(cfg Config) *Engine {
	defaults := DefaultConstraints()
	if cfg.Constraints.MinRestHours == 0 {
		cfg.Constraints.MinRestHours = defaults.MinRestHours
	}
	if cfg.Constraints.MaxConsecutiveDays == 0 {
		cfg.Constraints.MaxConsecutiveDays = defaults.MaxConsecutiveDays
	}
	if cfg.Constraints.MaxWeeklyHours == 0 {
		cfg.Constraints.MaxWeeklyHours = defaults.MaxWeeklyHours
	}
	if (cfg.Weights == Weights{}) {
		cfg.Weights = PresetWeights(cfg.Algorithm)
	}
	return &Engine{cfg: cfg}
}

// Generate produces the new assignment set for the request interval.
// Candidate scoring and tie-breaking are deterministic functions of the
// inputs, so identical requests yield identical results. Input problems
// return an empty result with a Reason; only structurally invalid catalog
// data returns an error.
func (e *Engine) Generate(req Request) (*Result, error) {
	result := &Result{
		CountsByDate:     make(map[string]int),
		CountsByEmployee: make(map[string]int),
	}

	if reason := checkInputs(req); reason != ReasonNone {
		result.Reason = reason
		return result, nil
	}

	for _, st := range req.ShiftTypes {
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("invalid shift type catalog: %w", err)
		}
	}

	start, err := model.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := model.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		result.Reason = ReasonBadInterval
		return result, nil
	}

	stores := targetStores(req)

	rs := newRunState()
	for _, a := range req.Existing {
		rs.record(a, true)
	}

	slots := buildSlots(stores, req.ShiftTypes, e.cfg, req.Closures, start, end)
	for _, s := range slots {
		result.SlotsEvaluated++
		e.fillSlot(s, req, rs, result)
	}

	return result, nil
}

// fillSlot selects the top-scored candidates for one slot and commits them
// to the accumulator and the result.
func (e *Engine) fillSlot(s slot, req Request, rs *runState, result *Result) {
	pool, truncated := e.eligiblePool(s, req, rs)
	if truncated {
		result.TruncatedSlots++
	}

	ranked := e.scorePool(pool, s, req, rs)
	e.orderForSelection(ranked, s, rs)

	filled := 0
	for _, sc := range ranked {
		if filled == s.required {
			break
		}
		a := e.commit(sc, s, req, rs)
		result.Assignments = append(result.Assignments, a)
		result.CountsByDate[s.date]++
		result.CountsByEmployee[a.EmployeeID]++
		filled++
	}

	if filled < s.required {
		// Quiet failure: the slot stays understaffed and the run continues
		result.UnfilledSlots++
		result.Shortfalls = append(result.Shortfalls, SlotShortfall{
			Date:        s.date,
			StoreID:     s.store.ID,
			ShiftTypeID: s.shiftType.ID,
			Required:    s.required,
			Filled:      filled,
		})
	}
}

// orderForSelection sorts candidates by descending score with employee id
// as the deterministic tie-break. When weekend rotation is required and the
// slot falls on a weekend, employees without any weekend day yet are drawn
// before the rest.
func (e *Engine) orderForSelection(ranked []scored, s slot, rs *runState) {
	weekendFirst := e.cfg.Constraints.RequireWeekendRotation && isWeekendDate(s.date)

	sort.SliceStable(ranked, func(i, j int) bool {
		if weekendFirst {
			wi := rs.forEmployee(ranked[i].candidate.employee.ID).hasWorkedWeekend()
			wj := rs.forEmployee(ranked[j].candidate.employee.ID).hasWorkedWeekend()
			if wi != wj {
				return !wi
			}
		}
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].candidate.employee.ID < ranked[j].candidate.employee.ID
	})
}

// commit emits one assignment with a frozen ShiftType snapshot and folds it
// into the running totals used by later slots in the same run. Assignment
// ids are derived from the slot and employee, so re-running identical
// inputs reproduces identical ids.
func (e *Engine) commit(sc scored, s slot, req Request, rs *runState) model.ShiftAssignment {
	a := model.ShiftAssignment{
		ID:            fmt.Sprintf("%s_%s_%s_%s", s.date, s.store.ID, s.shiftType.ID, sc.candidate.employee.ID),
		EmployeeID:    sc.candidate.employee.ID,
		ShiftID:       s.shiftType.ID,
		Date:          s.date,
		Shift:         s.shiftType,
		StoreID:       s.store.ID,
		Status:        model.StatusAssigned,
		AssignedBy:    req.AssignedBy,
		AssignedAt:    req.Now,
		RotationScore: sc.score,
	}
	rs.record(a, false)
	return a
}

// checkInputs maps empty-input conditions to reason codes per the engine's
// never-throw contract.
func checkInputs(req Request) Reason {
	if len(req.Employees) == 0 {
		return ReasonNoEmployees
	}
	if len(req.Stores) == 0 {
		return ReasonNoStores
	}
	if len(req.ShiftTypes) == 0 {
		return ReasonNoShiftTypes
	}
	if req.StoreID != "" {
		store := findStore(req.Stores, req.StoreID)
		if store == nil {
			return ReasonStoreNotFound
		}
		if !store.HasOpeningHours() {
			return ReasonNoOpeningHours
		}
	}
	return ReasonNone
}

// targetStores applies the optional single-store filter.
func targetStores(req Request) []model.Store {
	if req.StoreID == "" {
		return req.Stores
	}
	if store := findStore(req.Stores, req.StoreID); store != nil {
		return []model.Store{*store}
	}
	return nil
}

func findStore(stores []model.Store, id string) *model.Store {
	for i := range stores {
		if stores[i].ID == id {
			return &stores[i]
		}
	}
	return nil
}

func isWeekendDate(date string) bool {
	day, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return false
	}
	return model.IsWeekend(day)
}
