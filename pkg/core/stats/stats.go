// Package stats derives rotation statistics and equity scores from
// assignment history. Everything here is computed on demand and never
// stored.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

// RotationStatistics summarizes one employee's assignments over a period.
type RotationStatistics struct {
	EmployeeID         string
	From               string
	To                 string
	TotalShifts        int
	ShiftsByCategory   map[model.ShiftCategory]int
	TotalHours         float64
	AverageRestHours   float64
	MaxConsecutiveDays int
	RotationScore      int
	LastAssignment     string // most recent assignment date, empty if none
}

// TeamSummary aggregates equity and distribution across a group for a
// period.
type TeamSummary struct {
	From             string
	To               string
	EquityScore      int
	TotalShifts      int
	ShiftsByEmployee map[string]int
	ShiftsByCategory map[model.ShiftCategory]int
}

// TeamEquityScore maps the spread of per-employee assignment counts onto a
// 0-100 scale: 100 minus ten times the standard deviation, floored at 0.
// More balanced distributions of the same total never score lower.
func TeamEquityScore(counts []int) int {
	if len(counts) == 0 {
		return 100
	}
	score := 100.0 - 10.0*stddev(counts)
	if score < 0 {
		return 0
	}
	return int(math.Round(score))
}

// Summarize computes the team summary over all assignments in the period.
func Summarize(assignments []model.ShiftAssignment, from, to time.Time) TeamSummary {
	summary := TeamSummary{
		From:             from.Format(model.DateLayout),
		To:               to.Format(model.DateLayout),
		ShiftsByEmployee: make(map[string]int),
		ShiftsByCategory: make(map[model.ShiftCategory]int),
	}
	for _, a := range inPeriod(assignments, from, to) {
		summary.TotalShifts++
		summary.ShiftsByEmployee[a.EmployeeID]++
		summary.ShiftsByCategory[a.Shift.Category]++
	}
	counts := make([]int, 0, len(summary.ShiftsByEmployee))
	for _, c := range summary.ShiftsByEmployee {
		counts = append(counts, c)
	}
	summary.EquityScore = TeamEquityScore(counts)
	return summary
}

// Compute derives one employee's rotation statistics over a period. The
// full team's period assignments supply the baseline the rotation score is
// measured against. The second return is false when the employee has no
// assignments in the period.
func Compute(employeeID string, assignments []model.ShiftAssignment, from, to time.Time) (RotationStatistics, bool) {
	period := inPeriod(assignments, from, to)

	var own []model.ShiftAssignment
	for _, a := range period {
		if a.EmployeeID == employeeID {
			own = append(own, a)
		}
	}
	if len(own) == 0 {
		return RotationStatistics{}, false
	}
	sort.Slice(own, func(i, j int) bool { return own[i].Date < own[j].Date })

	s := RotationStatistics{
		EmployeeID:       employeeID,
		From:             from.Format(model.DateLayout),
		To:               to.Format(model.DateLayout),
		TotalShifts:      len(own),
		ShiftsByCategory: make(map[model.ShiftCategory]int),
		LastAssignment:   own[len(own)-1].Date,
	}
	for _, a := range own {
		s.ShiftsByCategory[a.Shift.Category]++
		s.TotalHours += a.Shift.NetDurationHours()
	}
	s.AverageRestHours = averageRestHours(own)
	s.MaxConsecutiveDays = maxConsecutiveDays(own)
	s.RotationScore = rotationScore(own, period)
	return s, true
}

// rotationScore measures how evenly the employee's load and category
// distribution sit against the team average, on the same 0-100 scale the
// engine's per-assignment scores normalize to. Two equally weighted terms:
// load distance from the team mean and category-share distance from the
// team's shares.
func rotationScore(own, period []model.ShiftAssignment) int {
	perEmployee := make(map[string]int)
	teamCategories := make(map[model.ShiftCategory]int)
	for _, a := range period {
		perEmployee[a.EmployeeID]++
		teamCategories[a.Shift.Category]++
	}

	mean := float64(len(period)) / float64(len(perEmployee))
	loadDistance := math.Abs(float64(len(own))-mean) / math.Max(mean, 1)
	if loadDistance > 1 {
		loadDistance = 1
	}

	// Total variation distance between the employee's and the team's
	// category share distributions
	ownCategories := make(map[model.ShiftCategory]int)
	for _, a := range own {
		ownCategories[a.Shift.Category]++
	}
	categoryDistance := 0.0
	for cat, teamCount := range teamCategories {
		teamShare := float64(teamCount) / float64(len(period))
		ownShare := float64(ownCategories[cat]) / float64(len(own))
		categoryDistance += math.Abs(ownShare - teamShare)
	}
	categoryDistance /= 2

	score := 100 * (0.5*(1-loadDistance) + 0.5*(1-categoryDistance))
	return int(math.Round(score))
}

// averageRestHours is the mean rest gap between consecutive worked days.
func averageRestHours(own []model.ShiftAssignment) float64 {
	var gaps []float64
	for i := 1; i < len(own); i++ {
		prevEnd, err1 := own[i-1].EndTime()
		curStart, err2 := own[i].StartTime()
		if err1 != nil || err2 != nil {
			continue
		}
		if gap := curStart.Sub(prevEnd).Hours(); gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		return 0
	}
	total := 0.0
	for _, g := range gaps {
		total += g
	}
	return total / float64(len(gaps))
}

// maxConsecutiveDays is the longest run of consecutive worked dates.
func maxConsecutiveDays(own []model.ShiftAssignment) int {
	longest, run := 1, 1
	for i := 1; i < len(own); i++ {
		prev, err1 := model.ParseDate(own[i-1].Date)
		cur, err2 := model.ParseDate(own[i].Date)
		switch {
		case err1 != nil || err2 != nil:
			run = 1
		case cur.Sub(prev) == 24*time.Hour:
			run++
		case cur.Equal(prev):
			// double-booked date (substitution in flight), run unchanged
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// inPeriod keeps assignments dated inside the period. Every status counts:
// a substituted assignment holds the substitute's employee id, so its hours
// belong to whoever works the shift.
func inPeriod(assignments []model.ShiftAssignment, from, to time.Time) []model.ShiftAssignment {
	fromKey := from.Format(model.DateLayout)
	toKey := to.Format(model.DateLayout)
	var out []model.ShiftAssignment
	for _, a := range assignments {
		if a.Date >= fromKey && a.Date <= toKey {
			out = append(out, a)
		}
	}
	return out
}

func stddev(counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}
	mean := 0.0
	for _, c := range counts {
		mean += float64(c)
	}
	mean /= float64(len(counts))

	variance := 0.0
	for _, c := range counts {
		d := float64(c) - mean
		variance += d * d
	}
	variance /= float64(len(counts))
	return math.Sqrt(variance)
}
