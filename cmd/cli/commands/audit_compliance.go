package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/compliance"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/services"
)

// AuditComplianceCmd creates the auditCompliance command
func AuditComplianceCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auditCompliance",
		Short: "Audit CCNL rest compliance for a week",
		Long:  "Produce per-employee weekly rest-time compliance reports over stored assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			employeeID, _ := cmd.Flags().GetString("employee")
			week, _ := cmd.Flags().GetString("week")

			reports, err := services.AuditCompliance(app.Ctx, app.Database, app.Cfg, app.Logger, employeeID, week)
			if err != nil {
				return fmt.Errorf("compliance audit failed: %w", err)
			}

			fmt.Printf("\n⚖️  CCNL Compliance Audit (week of %s)\n\n", week)
			for _, report := range reports {
				icon := "✅"
				switch report.OverallStatus {
				case compliance.StatusMinorViolations:
					icon = "⚠️ "
				case compliance.StatusMajorViolations:
					icon = "❌"
				}
				fmt.Printf("%s %-20s score %3d  %s\n", icon, report.EmployeeID, report.ComplianceScore, report.OverallStatus)
				for _, violation := range report.Violations {
					fmt.Printf("     [%s] %s\n", violation.Severity, violation.Description)
					fmt.Printf("       %s - %s\n", violation.Regulation, violation.Resolution)
				}
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().String("employee", "", "Audit a single employee (default: all active)")
	cmd.Flags().String("week", "", "Week start date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("week")

	return cmd
}
