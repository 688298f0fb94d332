package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// ViewStatisticsCmd creates the viewStatistics command
func ViewStatisticsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewStatistics",
		Short: "View rotation statistics for an employee or the whole team",
		RunE: func(cmd *cobra.Command, args []string) error {
			employeeID, _ := cmd.Flags().GetString("employee")
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")

			if employeeID == "" {
				summary, err := app.Stats.TeamSummary(app.Ctx, from, to)
				if err != nil {
					return fmt.Errorf("team summary failed: %w", err)
				}

				fmt.Printf("\n📊 Team Summary %s → %s\n\n", from, to)
				fmt.Printf("Equity Score: %d / 100\n", summary.EquityScore)
				fmt.Printf("Total Shifts: %d\n\n", summary.TotalShifts)

				fmt.Printf("Shifts per employee:\n")
				ids := make([]string, 0, len(summary.ShiftsByEmployee))
				for id := range summary.ShiftsByEmployee {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				for _, id := range ids {
					fmt.Printf("  %-20s %d\n", id, summary.ShiftsByEmployee[id])
				}

				fmt.Printf("\nShifts per category:\n")
				for category, count := range summary.ShiftsByCategory {
					fmt.Printf("  %-12s %d\n", category, count)
				}
				fmt.Println()
				return nil
			}

			statistics, found, err := app.Stats.EmployeeStatistics(app.Ctx, employeeID, from, to)
			if err != nil {
				return fmt.Errorf("employee statistics failed: %w", err)
			}
			if !found {
				fmt.Printf("\nNo assignments for employee %s in %s → %s\n\n", employeeID, from, to)
				return nil
			}

			fmt.Printf("\n📊 Rotation Statistics for %s (%s → %s)\n\n", employeeID, from, to)
			fmt.Printf("Total Shifts:         %d\n", statistics.TotalShifts)
			fmt.Printf("Total Hours:          %.1f\n", statistics.TotalHours)
			fmt.Printf("Average Rest:         %.1fh\n", statistics.AverageRestHours)
			fmt.Printf("Max Consecutive Days: %d\n", statistics.MaxConsecutiveDays)
			fmt.Printf("Rotation Score:       %d / 100\n", statistics.RotationScore)
			fmt.Printf("Last Assignment:      %s\n\n", statistics.LastAssignment)

			fmt.Printf("Shifts per category:\n")
			for category, count := range statistics.ShiftsByCategory {
				fmt.Printf("  %-12s %d\n", category, count)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().String("employee", "", "Employee id (omit for team summary)")
	cmd.Flags().String("from", "", "Period start (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Period end (YYYY-MM-DD)")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}
