package scheduler

import (
	"math"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

// scored pairs a candidate with its weighted soft-objective score.
type scored struct {
	candidate candidate
	score     float64
}

// scorePool computes the weighted score of every candidate. Normalization
// terms (recent load, experience) are relative to the pool, so scores are
// comparable only within one slot evaluation.
func (e *Engine) scorePool(pool []candidate, s slot, req Request, rs *runState) []scored {
	maxLoad := 0
	maxHistory := 0
	for _, c := range pool {
		er := rs.forEmployee(c.employee.ID)
		if er.load() > maxLoad {
			maxLoad = er.load()
		}
		if er.historyCount > maxHistory {
			maxHistory = er.historyCount
		}
	}

	out := make([]scored, 0, len(pool))
	for _, c := range pool {
		er := rs.forEmployee(c.employee.ID)

		equity := 1.0
		if maxLoad > 0 {
			equity = 1.0 - float64(er.load())/float64(maxLoad)
		}

		preference := e.preferenceMatch(c.employee.ID, s, req)
		rest := restMargin(c, e.cfg.Constraints.MinRestHours)
		experience := difficultyFit(s.shiftType, er.historyCount, maxHistory)

		w := e.cfg.Weights
		score := w.Equity*equity + w.Preference*preference + w.Rest*rest + w.Experience*experience

		out = append(out, scored{candidate: c, score: score})
	}
	return out
}

// preferenceMatch grades how well the slot matches the employee's stated
// preferences, scaled by the preference priority. A preferred day off wins
// over a preferred shift type; an employee with no preference record scores
// a neutral 0.5.
func (e *Engine) preferenceMatch(employeeID string, s slot, req Request) float64 {
	pref, ok := req.Preferences[employeeID]
	if !ok {
		return 0.5
	}
	if pref.PrefersDayOff(s.weekday) {
		return 0
	}
	if pref.PrefersShiftType(s.shiftType.ID) {
		return 1.0 * pref.Priority.Factor()
	}
	if len(pref.PreferredShiftTypes) == 0 {
		return 0.5
	}
	return 0
}

// restMargin normalizes the headroom above the minimum rest requirement
// into [0,1]. A full extra day of rest (or no preceding shift at all)
// scores 1.
func restMargin(c candidate, minRestHours float64) float64 {
	if !c.hasPrevious {
		return 1
	}
	margin := (c.restGap.Hours() - minRestHours) / 24.0
	if margin < 0 {
		return 0
	}
	if margin > 1 {
		return 1
	}
	return margin
}

// difficultyFit routes higher-difficulty shifts to employees with more
// historical shifts: 1 when normalized difficulty and normalized experience
// coincide, falling off linearly with their distance.
func difficultyFit(st model.ShiftType, history, maxHistory int) float64 {
	difficulty := float64(st.Difficulty-1) / 4.0
	experience := 0.0
	if maxHistory > 0 {
		experience = float64(history) / float64(maxHistory)
	}
	fit := 1.0 - math.Abs(difficulty-experience)
	if fit < 0 {
		return 0
	}
	return fit
}
