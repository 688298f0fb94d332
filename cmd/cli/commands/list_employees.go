package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListEmployeesCmd creates the listEmployees command
func ListEmployeesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listEmployees",
		Short: "List employees and their contracts",
		RunE: func(cmd *cobra.Command, args []string) error {
			activeOnly, _ := cmd.Flags().GetBool("active")

			employees, err := app.Database.GetEmployees(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch employees: %w", err)
			}

			fmt.Printf("\n👥 Employees\n\n")
			fmt.Printf("%-12s %-24s %-8s %-10s %s\n", "ID", "NAME", "HOURS", "STORE", "STATUS")
			for _, e := range employees {
				if activeOnly && !e.Active {
					continue
				}
				status := "active"
				if !e.Active {
					status = "inactive"
				}
				store := e.StoreID
				if store == "" {
					store = "-"
				}
				fmt.Printf("%-12s %-24s %-8.1f %-10s %s\n", e.ID, e.Name, e.ContractHours, store, status)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().Bool("active", false, "Show only active employees")

	return cmd
}
