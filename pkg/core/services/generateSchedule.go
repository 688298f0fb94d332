package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/halion16/hr-scheduling-app-sub004/internal/config"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/scheduler"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/db"
)

// GenerateScheduleStore defines the database operations needed to generate
// a schedule
type GenerateScheduleStore interface {
	db.EmployeeStore
	db.CatalogStore
	db.AssignmentStore
}

// GenerateScheduleParams are the caller-supplied run parameters.
type GenerateScheduleParams struct {
	StartDate  string // YYYY-MM-DD
	Days       int    // interval length, inclusive of the start date
	StoreID    string // optional single-store filter
	AssignedBy string
	DryRun     bool
}

// GenerateScheduleResult contains the engine output plus run metadata.
type GenerateScheduleResult struct {
	Result    *scheduler.Result
	StartDate string
	EndDate   string
	Saved     bool
}

// GenerateSchedule loads all scheduling inputs, runs the assignment engine
// over the requested interval, and persists the new assignments unless
// dryRun is set or the engine reported an input problem.
func GenerateSchedule(
	ctx context.Context,
	database GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	params GenerateScheduleParams,
) (*GenerateScheduleResult, error) {
	logger.Debug("Starting generateSchedule",
		zap.String("start_date", params.StartDate),
		zap.Int("days", params.Days),
		zap.String("store_id", params.StoreID),
		zap.Bool("dry_run", params.DryRun))

	if params.Days < 1 {
		return nil, fmt.Errorf("days must be at least 1, got %d", params.Days)
	}
	start, err := model.ParseDate(params.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end := start.AddDate(0, 0, params.Days-1)
	endDate := end.Format(model.DateLayout)

	// Advisory only: the engine runs with the weights exactly as configured
	if sum, drifted := cfg.WeightSum(); drifted {
		logger.Warn("Scoring weights do not sum to 1.0, using them as given",
			zap.Float64("sum", sum))
	}

	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build engine config: %w", err)
	}

	logger.Debug("Fetching employees")
	employees, err := database.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	logger.Debug("Found employees", zap.Int("count", len(employees)))

	logger.Debug("Fetching stores")
	stores, err := database.GetStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stores: %w", err)
	}
	logger.Debug("Found stores", zap.Int("count", len(stores)))

	logger.Debug("Fetching shift types")
	shiftTypes, err := database.GetShiftTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift types: %w", err)
	}
	logger.Debug("Found shift types", zap.Int("count", len(shiftTypes)))

	logger.Debug("Fetching preferences")
	preferences, err := database.GetPreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preferences: %w", err)
	}
	preferencesByEmployee := make(map[string]model.EmployeePreference, len(preferences))
	for _, p := range preferences {
		preferencesByEmployee[p.EmployeeID] = p
	}

	// Existing assignments participate in rest and double-booking checks,
	// so the window reaches back far enough to cover consecutive-day runs
	historyStart := start.AddDate(0, 0, -historyLookbackDays(engineCfg)).Format(model.DateLayout)
	logger.Debug("Fetching existing assignments",
		zap.String("from", historyStart),
		zap.String("to", endDate))
	existing, err := database.GetAssignmentsInRange(ctx, historyStart, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing assignments: %w", err)
	}
	logger.Debug("Found existing assignments", zap.Int("count", len(existing)))

	closures, err := cfg.ClosureCalendar(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to expand closure rules: %w", err)
	}

	engine := scheduler.New(engineCfg)
	result, err := engine.Generate(scheduler.Request{
		Employees:   employees,
		Stores:      stores,
		ShiftTypes:  shiftTypes,
		Preferences: preferencesByEmployee,
		Existing:    existing,
		StartDate:   params.StartDate,
		EndDate:     endDate,
		StoreID:     params.StoreID,
		Closures:    closures,
		AssignedBy:  params.AssignedBy,
		Now:         time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("engine run failed: %w", err)
	}

	logger.Info("Engine run completed",
		zap.Int("assignments", len(result.Assignments)),
		zap.Int("unfilled_slots", result.UnfilledSlots),
		zap.String("reason", string(result.Reason)))

	for _, shortfall := range result.Shortfalls {
		logger.Warn("Slot understaffed",
			zap.String("date", shortfall.Date),
			zap.String("store_id", shortfall.StoreID),
			zap.String("shift_type_id", shortfall.ShiftTypeID),
			zap.Int("required", shortfall.Required),
			zap.Int("filled", shortfall.Filled))
	}

	out := &GenerateScheduleResult{
		Result:    result,
		StartDate: params.StartDate,
		EndDate:   endDate,
	}

	if params.DryRun {
		logger.Info("Dry run mode - assignments not saved")
		return out, nil
	}
	if result.Reason != scheduler.ReasonNone || len(result.Assignments) == 0 {
		return out, nil
	}

	logger.Info("Saving assignments", zap.Int("count", len(result.Assignments)))
	if err := database.InsertAssignments(ctx, result.Assignments); err != nil {
		return nil, fmt.Errorf("failed to save assignments: %w", err)
	}
	out.Saved = true

	return out, nil
}

// historyLookbackDays is how far before the interval the existing
// assignment window reaches: enough to measure rest gaps and
// consecutive-day runs at the interval start.
func historyLookbackDays(cfg scheduler.Config) int {
	days := cfg.Constraints.MaxConsecutiveDays + 1
	if cfg.LookAheadDays > days {
		days = cfg.LookAheadDays
	}
	if days < 7 {
		days = 7
	}
	return days
}
