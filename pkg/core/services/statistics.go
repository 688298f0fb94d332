package services

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/stats"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/db"
)

// Statistics answers per-employee and team-wide rotation queries. Results
// are derived, never stored; a short TTL cache absorbs repeated queries
// over the same period.
type Statistics struct {
	database db.AssignmentStore
	logger   *zap.Logger
	cache    *gocache.Cache
}

const (
	statsCacheTTL     = 5 * time.Minute
	statsCacheCleanup = 10 * time.Minute
)

// NewStatistics creates the statistics service.
func NewStatistics(database db.AssignmentStore, logger *zap.Logger) *Statistics {
	return &Statistics{
		database: database,
		logger:   logger,
		cache:    gocache.New(statsCacheTTL, statsCacheCleanup),
	}
}

// EmployeeStatistics computes one employee's rotation statistics over the
// period. The boolean return is false when the employee has no assignments
// in the period.
func (s *Statistics) EmployeeStatistics(ctx context.Context, employeeID, from, to string) (stats.RotationStatistics, bool, error) {
	key := fmt.Sprintf("employee:%s:%s:%s", employeeID, from, to)
	if cached, ok := s.cache.Get(key); ok {
		result := cached.(stats.RotationStatistics)
		return result, true, nil
	}

	fromDate, toDate, assignments, err := s.periodAssignments(ctx, from, to)
	if err != nil {
		return stats.RotationStatistics{}, false, err
	}

	result, ok := stats.Compute(employeeID, assignments, fromDate, toDate)
	if !ok {
		return stats.RotationStatistics{}, false, nil
	}

	s.cache.Set(key, result, gocache.DefaultExpiration)
	return result, true, nil
}

// TeamSummary computes the aggregate equity score and distribution maps
// over the period.
func (s *Statistics) TeamSummary(ctx context.Context, from, to string) (stats.TeamSummary, error) {
	key := fmt.Sprintf("team:%s:%s", from, to)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(stats.TeamSummary), nil
	}

	fromDate, toDate, assignments, err := s.periodAssignments(ctx, from, to)
	if err != nil {
		return stats.TeamSummary{}, err
	}

	summary := stats.Summarize(assignments, fromDate, toDate)
	s.logger.Debug("Computed team summary",
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("total_shifts", summary.TotalShifts),
		zap.Int("equity_score", summary.EquityScore))

	s.cache.Set(key, summary, gocache.DefaultExpiration)
	return summary, nil
}

// Invalidate drops all cached results, called after schedule generation or
// substitution approval changes the underlying assignments.
func (s *Statistics) Invalidate() {
	s.cache.Flush()
}

func (s *Statistics) periodAssignments(ctx context.Context, from, to string) (time.Time, time.Time, []model.ShiftAssignment, error) {
	fromDate, err := model.ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("invalid from date: %w", err)
	}
	toDate, err := model.ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("invalid to date: %w", err)
	}
	if toDate.Before(fromDate) {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("to date %s is before from date %s", to, from)
	}

	assignments, err := s.database.GetAssignmentsInRange(ctx, from, to)
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	return fromDate, toDate, assignments, nil
}
