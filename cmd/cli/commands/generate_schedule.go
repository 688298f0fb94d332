package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/scheduler"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/services"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule",
		Short: "Generate shift assignments for a date interval",
		Long:  "Run the assignment engine over the interval, honoring rest constraints and the configured scoring weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			days, _ := cmd.Flags().GetInt("days")
			storeID, _ := cmd.Flags().GetString("store")
			actor, _ := cmd.Flags().GetString("actor")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			app.Logger.Debug("generateSchedule command",
				zap.String("from", from),
				zap.Int("days", days),
				zap.String("store", storeID),
				zap.Bool("dry_run", dryRun))

			result, err := services.GenerateSchedule(app.Ctx, app.Database, app.Cfg, app.Logger, services.GenerateScheduleParams{
				StartDate:  from,
				Days:       days,
				StoreID:    storeID,
				AssignedBy: actor,
				DryRun:     dryRun,
			})
			if err != nil {
				return fmt.Errorf("schedule generation failed: %w", err)
			}
			if result.Saved {
				app.Stats.Invalidate()
			}

			engine := result.Result

			fmt.Printf("\n📅 Schedule Generation Results\n\n")
			fmt.Printf("Interval:    %s → %s\n", result.StartDate, result.EndDate)
			if storeID != "" {
				fmt.Printf("Store:       %s\n", storeID)
			}
			if engine.Reason != scheduler.ReasonNone {
				fmt.Printf("Status:      ❌ EMPTY RESULT (%s)\n\n", engine.Reason)
				return nil
			}
			switch {
			case dryRun:
				fmt.Printf("Mode:        🧪 DRY RUN (not saved)\n")
			case result.Saved:
				fmt.Printf("Status:      ✅ SAVED (%d assignments)\n", len(engine.Assignments))
			default:
				fmt.Printf("Status:      ⚠️  NOT SAVED\n")
			}
			fmt.Printf("Slots:       %d evaluated, %d unfilled\n\n", engine.SlotsEvaluated, engine.UnfilledSlots)

			if len(engine.Shortfalls) > 0 {
				fmt.Printf("⚠️  Understaffed Slots (%d):\n", len(engine.Shortfalls))
				for _, shortfall := range engine.Shortfalls {
					fmt.Printf("  • %s store=%s shift=%s: %d/%d filled\n",
						shortfall.Date, shortfall.StoreID, shortfall.ShiftTypeID,
						shortfall.Filled, shortfall.Required)
				}
				fmt.Println()
			}

			fmt.Printf("Assignments per employee:\n")
			employeeIDs := make([]string, 0, len(engine.CountsByEmployee))
			for id := range engine.CountsByEmployee {
				employeeIDs = append(employeeIDs, id)
			}
			sort.Strings(employeeIDs)
			for _, id := range employeeIDs {
				fmt.Printf("  %-20s %d\n", id, engine.CountsByEmployee[id])
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().Int("days", 7, "Number of days to schedule")
	cmd.Flags().String("store", "", "Limit the run to one store")
	cmd.Flags().String("actor", "scheduler", "Assigning actor recorded on each assignment")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")
	cmd.MarkFlagRequired("from")

	return cmd
}
