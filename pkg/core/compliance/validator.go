// Package compliance audits one employee's shift history against CCNL
// rest-time rules. It is a pure function of its inputs with no dependency
// on the assignment engine, usable standalone over manually entered shifts.
package compliance

import (
	"fmt"
	"sort"
	"time"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

// Severity grades a violation.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// OverallStatus is the aggregate outcome of one weekly report.
type OverallStatus string

const (
	StatusCompliant       OverallStatus = "compliant"
	StatusMinorViolations OverallStatus = "minor_violations"
	StatusMajorViolations OverallStatus = "major_violations"
)

// Score penalties per violation
const (
	criticalPenalty = 25
	warningPenalty  = 10
)

// Limits are the rest-rule thresholds the audit applies.
type Limits struct {
	MinDailyRestHours  float64
	MinWeeklyRestHours float64
	MaxWeeklyHours     float64
	MaxConsecutiveDays int
}

// DefaultLimits returns the CCNL baseline: 11h daily rest, 35h contiguous
// weekly rest, 40h weekly ceiling, 6 consecutive days.
func DefaultLimits() Limits {
	return Limits{
		MinDailyRestHours:  11,
		MinWeeklyRestHours: 35,
		MaxWeeklyHours:     40,
		MaxConsecutiveDays: 6,
	}
}

// CCNLViolation is one detected breach of a rest-time rule.
type CCNLViolation struct {
	Severity    Severity
	Description string
	Regulation  string
	Resolution  string
}

// DailyRest records the measured rest before one worked day.
type DailyRest struct {
	Date           string
	RestHours      float64
	HasMinimumRest bool
}

// WeeklyRest records the longest contiguous rest span in the week.
type WeeklyRest struct {
	MeasuredHours float64
	RequiredHours float64
	Compliant     bool
}

// ComplianceReport is the per-employee, per-week audit result.
type ComplianceReport struct {
	EmployeeID      string
	WeekStart       string
	Violations      []CCNLViolation
	DailyRest       []DailyRest
	WeeklyRest      WeeklyRest
	OverallStatus   OverallStatus
	ComplianceScore int
}

// Evaluate audits the employee's assignments over the 7-day window starting
// at weekStart. Assignments outside the window are ignored. A substituted
// assignment carries the substitute's employee id after approval, so it is
// audited for the employee who actually works the shift.
func Evaluate(employeeID string, weekStart time.Time, assignments []model.ShiftAssignment, limits Limits) ComplianceReport {
	report := ComplianceReport{
		EmployeeID: employeeID,
		WeekStart:  weekStart.Format(model.DateLayout),
		Violations: []CCNLViolation{},
		DailyRest:  []DailyRest{},
	}

	windowStart := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	windowEnd := windowStart.AddDate(0, 0, 7)

	worked := workedIntervals(employeeID, assignments, windowStart, windowEnd)

	report.DailyRest, report.Violations = dailyRestAudit(worked, limits)
	report.WeeklyRest = weeklyRestAudit(worked, windowStart, windowEnd, limits)
	if !report.WeeklyRest.Compliant {
		report.Violations = append(report.Violations, CCNLViolation{
			Severity: SeverityCritical,
			Description: fmt.Sprintf("longest contiguous weekly rest is %.1fh, below the required %.1fh",
				report.WeeklyRest.MeasuredHours, report.WeeklyRest.RequiredHours),
			Regulation: "D.Lgs. 66/2003, art. 9",
			Resolution: "keep at least one uninterrupted rest span of a day and a half within the week",
		})
	}

	report.Violations = append(report.Violations, advisoryAudit(worked, limits)...)

	report.OverallStatus, report.ComplianceScore = aggregate(report.Violations)
	return report
}

// workedInterval is one worked shift anchored to concrete instants.
type workedInterval struct {
	date  string
	start time.Time
	end   time.Time
	hours float64 // net worked hours
}

func workedIntervals(employeeID string, assignments []model.ShiftAssignment, from, to time.Time) []workedInterval {
	var worked []workedInterval
	for _, a := range assignments {
		if a.EmployeeID != employeeID {
			continue
		}
		start, err := a.StartTime()
		if err != nil {
			continue
		}
		end, err := a.EndTime()
		if err != nil {
			continue
		}
		if start.Before(from) || !start.Before(to) {
			continue
		}
		worked = append(worked, workedInterval{
			date:  a.Date,
			start: start,
			end:   end,
			hours: a.Shift.NetDurationHours(),
		})
	}
	sort.Slice(worked, func(i, j int) bool { return worked[i].start.Before(worked[j].start) })
	return worked
}

// dailyRestAudit measures the rest gap before each worked day after the
// first and flags gaps below the minimum as critical, reporting the exact
// shortfall.
func dailyRestAudit(worked []workedInterval, limits Limits) ([]DailyRest, []CCNLViolation) {
	daily := []DailyRest{}
	violations := []CCNLViolation{}

	for i := 1; i < len(worked); i++ {
		gap := worked[i].start.Sub(worked[i-1].end).Hours()
		meets := gap >= limits.MinDailyRestHours
		daily = append(daily, DailyRest{
			Date:           worked[i].date,
			RestHours:      gap,
			HasMinimumRest: meets,
		})
		if !meets {
			shortfall := limits.MinDailyRestHours - gap
			violations = append(violations, CCNLViolation{
				Severity: SeverityCritical,
				Description: fmt.Sprintf("rest before %s is %.1fh, %.1fh short of the %.1fh minimum",
					worked[i].date, gap, shortfall, limits.MinDailyRestHours),
				Regulation: "D.Lgs. 66/2003, art. 7",
				Resolution: "move the shift start later or the previous shift end earlier",
			})
		}
	}
	return daily, violations
}

// weeklyRestAudit finds the single longest rest span inside the window,
// counting the spans from the window edges to the first and last shifts.
func weeklyRestAudit(worked []workedInterval, from, to time.Time, limits Limits) WeeklyRest {
	longest := to.Sub(from).Hours()
	if len(worked) > 0 {
		longest = worked[0].start.Sub(from).Hours()
		for i := 1; i < len(worked); i++ {
			if gap := worked[i].start.Sub(worked[i-1].end).Hours(); gap > longest {
				longest = gap
			}
		}
		if tail := to.Sub(worked[len(worked)-1].end).Hours(); tail > longest {
			longest = tail
		}
	}
	return WeeklyRest{
		MeasuredHours: longest,
		RequiredHours: limits.MinWeeklyRestHours,
		Compliant:     longest >= limits.MinWeeklyRestHours,
	}
}

// advisoryAudit adds warning-level findings: total weekly hours above the
// ceiling and consecutive-day runs beyond the maximum.
func advisoryAudit(worked []workedInterval, limits Limits) []CCNLViolation {
	var violations []CCNLViolation

	if limits.MaxWeeklyHours > 0 {
		total := 0.0
		for _, w := range worked {
			total += w.hours
		}
		if total > limits.MaxWeeklyHours {
			violations = append(violations, CCNLViolation{
				Severity: SeverityWarning,
				Description: fmt.Sprintf("worked %.1fh in the week, above the %.1fh ceiling",
					total, limits.MaxWeeklyHours),
				Regulation: "CCNL Terziario, orario settimanale",
				Resolution: "rebalance hours toward employees below their weekly ceiling",
			})
		}
	}

	if limits.MaxConsecutiveDays > 0 {
		if run := longestConsecutiveRun(worked); run > limits.MaxConsecutiveDays {
			violations = append(violations, CCNLViolation{
				Severity: SeverityWarning,
				Description: fmt.Sprintf("%d consecutive working days, above the maximum of %d",
					run, limits.MaxConsecutiveDays),
				Regulation: "CCNL Terziario, riposo settimanale",
				Resolution: "insert a rest day inside the run",
			})
		}
	}
	return violations
}

func longestConsecutiveRun(worked []workedInterval) int {
	if len(worked) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(worked); i++ {
		prev, err1 := model.ParseDate(worked[i-1].date)
		cur, err2 := model.ParseDate(worked[i].date)
		switch {
		case err1 != nil || err2 != nil:
			run = 1
		case cur.Sub(prev) == 24*time.Hour:
			run++
		case cur.Equal(prev):
			// same day, run unchanged
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// aggregate maps the violation list onto the overall status and the 0-100
// compliance score.
func aggregate(violations []CCNLViolation) (OverallStatus, int) {
	score := 100
	criticals := 0
	for _, v := range violations {
		switch v.Severity {
		case SeverityCritical:
			criticals++
			score -= criticalPenalty
		case SeverityWarning:
			score -= warningPenalty
		}
	}
	if score < 0 {
		score = 0
	}
	switch {
	case criticals > 0:
		return StatusMajorViolations, score
	case len(violations) > 0:
		return StatusMinorViolations, score
	default:
		return StatusCompliant, score
	}
}
