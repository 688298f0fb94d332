package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/services"
)

// RequestSubstitutionCmd creates the requestSubstitution command
func RequestSubstitutionCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requestSubstitution",
		Short: "Open a substitution request against an assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			assignmentID, _ := cmd.Flags().GetString("assignment")
			requestedBy, _ := cmd.Flags().GetString("requested-by")
			reason, _ := cmd.Flags().GetString("reason")
			substitute, _ := cmd.Flags().GetString("substitute")

			request, err := services.RequestSubstitution(app.Ctx, app.Database, app.Logger,
				assignmentID, requestedBy, reason, substitute)
			if err != nil {
				return err
			}

			fmt.Printf("\n🔄 Substitution request %s opened (pending)\n\n", request.ID)
			return nil
		},
	}

	cmd.Flags().String("assignment", "", "Assignment id")
	cmd.Flags().String("requested-by", "", "Requesting employee id")
	cmd.Flags().String("reason", "", "Reason for the substitution")
	cmd.Flags().String("substitute", "", "Proposed substitute employee id")
	cmd.MarkFlagRequired("assignment")
	cmd.MarkFlagRequired("requested-by")

	return cmd
}

// ApproveSubstitutionCmd creates the approveSubstitution command
func ApproveSubstitutionCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approveSubstitution",
		Short: "Approve or reject a pending substitution request",
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, _ := cmd.Flags().GetString("request")
			substitute, _ := cmd.Flags().GetString("substitute")
			actor, _ := cmd.Flags().GetString("actor")
			reject, _ := cmd.Flags().GetBool("reject")
			notes, _ := cmd.Flags().GetString("notes")

			if reject {
				if err := services.RejectSubstitution(app.Ctx, app.Database, app.Logger, requestID, actor, notes); err != nil {
					return err
				}
				fmt.Printf("\n❌ Substitution request %s rejected\n\n", requestID)
				return nil
			}

			if err := services.ApproveSubstitution(app.Ctx, app.Database, app.Logger, requestID, substitute, actor); err != nil {
				return err
			}
			app.Stats.Invalidate()
			fmt.Printf("\n✅ Substitution request %s approved and applied\n\n", requestID)
			return nil
		},
	}

	cmd.Flags().String("request", "", "Substitution request id")
	cmd.Flags().String("substitute", "", "Substitute employee id (defaults to the proposed one)")
	cmd.Flags().String("actor", "", "Approving actor")
	cmd.Flags().Bool("reject", false, "Reject instead of approve")
	cmd.Flags().String("notes", "", "Notes recorded on rejection")
	cmd.MarkFlagRequired("request")
	cmd.MarkFlagRequired("actor")

	return cmd
}

// ConfirmAssignmentCmd creates the confirmAssignment command
func ConfirmAssignmentCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confirmAssignment",
		Short: "Confirm an assigned shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			assignmentID, _ := cmd.Flags().GetString("assignment")

			if err := services.ConfirmAssignment(app.Ctx, app.Database, app.Logger, assignmentID); err != nil {
				return err
			}
			fmt.Printf("\n✅ Assignment %s confirmed\n\n", assignmentID)
			return nil
		},
	}

	cmd.Flags().String("assignment", "", "Assignment id")
	cmd.MarkFlagRequired("assignment")

	return cmd
}
