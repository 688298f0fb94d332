package scheduler

import (
	"sort"
	"time"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

// candidate is one employee surviving the hard-constraint filter for a slot,
// carrying the rest gap measured during filtering so scoring does not
// recompute it.
type candidate struct {
	employee    model.Employee
	restGap     time.Duration
	hasPrevious bool
}

// eligiblePool builds the slot's candidate pool: active employees attached
// to the slot's store (or unattached), not blocked out by preference, not
// already booked on the date, and passing every hard constraint. The second
// return reports whether the pool was cut at the MaxIterations cap.
func (e *Engine) eligiblePool(s slot, req Request, rs *runState) ([]candidate, bool) {
	var pool []candidate

	for _, emp := range req.Employees {
		if !emp.Active {
			continue
		}
		if emp.StoreID != "" && emp.StoreID != s.store.ID {
			continue
		}
		pref, hasPref := req.Preferences[emp.ID]
		if hasPref && pref.IsUnavailable(s.date) {
			continue
		}
		if rs.bookedOn(s.date, emp.ID) {
			continue
		}

		c, ok := e.passesHardConstraints(emp, pref, hasPref, s, rs)
		if !ok {
			continue
		}
		pool = append(pool, c)
	}

	// Fixed order before any truncation so the MaxIterations cap is
	// deterministic
	sort.Slice(pool, func(i, j int) bool { return pool[i].employee.ID < pool[j].employee.ID })

	if e.cfg.MaxIterations > 0 && len(pool) > e.cfg.MaxIterations {
		return pool[:e.cfg.MaxIterations], true
	}
	return pool, false
}

// passesHardConstraints applies the labor-rule filter for one employee and
// slot: minimum rest since the preceding shift end, maximum consecutive
// working days, and the weekly hour ceiling.
func (e *Engine) passesHardConstraints(emp model.Employee, pref model.EmployeePreference, hasPref bool, s slot, rs *runState) (candidate, bool) {
	er := rs.forEmployee(emp.ID)
	cons := e.cfg.Constraints

	slotStart, err := s.shiftType.StartOn(s.date)
	if err != nil {
		return candidate{}, false
	}

	c := candidate{employee: emp}

	// Minimum rest since the immediately preceding shift end, measured
	// against both committed and already-placed-this-run assignments
	if prevEnd, ok := er.lastEndBefore(slotStart); ok {
		c.hasPrevious = true
		c.restGap = slotStart.Sub(prevEnd)
		if c.restGap.Hours() < cons.MinRestHours {
			return candidate{}, false
		}
	}

	// Maximum consecutive working days, taking the tighter of the config
	// limit and the employee's own stated limit
	day, err := model.ParseDate(s.date)
	if err != nil {
		return candidate{}, false
	}
	maxRun := cons.MaxConsecutiveDays
	if hasPref && pref.MaxConsecutiveDays > 0 && pref.MaxConsecutiveDays < maxRun {
		maxRun = pref.MaxConsecutiveDays
	}
	if maxRun > 0 && er.consecutiveRunWith(day) > maxRun {
		return candidate{}, false
	}

	// Weekly hour ceiling: config ceiling, tightened by the contract when
	// the employee has one
	ceiling := cons.MaxWeeklyHours
	if emp.ContractHours > 0 && (ceiling == 0 || emp.ContractHours < ceiling) {
		ceiling = emp.ContractHours
	}
	if ceiling > 0 && er.weeklyHours[weekKey(day)]+s.shiftType.NetDurationHours() > ceiling {
		return candidate{}, false
	}

	return c, true
}

// hasWorkedWeekend reports whether the employee already holds any weekend
// day, committed or placed this run. The weekend-rotation rule draws from
// employees for whom this is still false.
func (er *employeeRun) hasWorkedWeekend() bool {
	return er.weekendDays > 0
}
