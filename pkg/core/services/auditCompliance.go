package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/halion16/hr-scheduling-app-sub004/internal/config"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/compliance"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/db"
)

// AuditComplianceStore defines the database operations needed for a
// compliance audit
type AuditComplianceStore interface {
	db.EmployeeStore
	db.AssignmentStore
}

// AuditCompliance produces the weekly CCNL compliance report for one
// employee, or for every active employee when employeeID is empty.
func AuditCompliance(
	ctx context.Context,
	database AuditComplianceStore,
	cfg *config.Config,
	logger *zap.Logger,
	employeeID string,
	weekStart string,
) ([]compliance.ComplianceReport, error) {
	start, err := model.ParseDate(weekStart)
	if err != nil {
		return nil, fmt.Errorf("invalid week start: %w", err)
	}
	weekEnd := start.AddDate(0, 0, 6).Format(model.DateLayout)

	employees, err := database.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	var targets []model.Employee
	for _, e := range employees {
		if employeeID != "" && e.ID != employeeID {
			continue
		}
		if employeeID == "" && !e.Active {
			continue
		}
		targets = append(targets, e)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no matching employee for id %q", employeeID)
	}

	assignments, err := database.GetAssignmentsInRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	logger.Debug("Auditing compliance",
		zap.String("week_start", weekStart),
		zap.Int("employees", len(targets)),
		zap.Int("assignments", len(assignments)))

	limits := complianceLimits(cfg)

	reports := make([]compliance.ComplianceReport, 0, len(targets))
	for _, e := range targets {
		report := compliance.Evaluate(e.ID, start, assignments, limits)
		if report.OverallStatus != compliance.StatusCompliant {
			logger.Warn("Compliance violations found",
				zap.String("employee_id", e.ID),
				zap.String("status", string(report.OverallStatus)),
				zap.Int("score", report.ComplianceScore))
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// complianceLimits projects the configured hard constraints onto the audit
// thresholds, keeping the CCNL defaults where the config is silent.
func complianceLimits(cfg *config.Config) compliance.Limits {
	limits := compliance.DefaultLimits()
	if cfg.Constraints.MinRestHours > 0 {
		limits.MinDailyRestHours = cfg.Constraints.MinRestHours
	}
	if cfg.Constraints.MaxWeeklyHours > 0 {
		limits.MaxWeeklyHours = cfg.Constraints.MaxWeeklyHours
	}
	if cfg.Constraints.MaxConsecutiveDays > 0 {
		limits.MaxConsecutiveDays = cfg.Constraints.MaxConsecutiveDays
	}
	return limits
}
