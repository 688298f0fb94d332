package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/db"
)

// SubstitutionStore defines the database operations for the substitution
// lifecycle
type SubstitutionStore interface {
	db.AssignmentStore
	db.SubstitutionStore
}

// RequestSubstitution opens a pending substitution request against an
// existing assignment and marks the assignment as change-requested.
func RequestSubstitution(
	ctx context.Context,
	database SubstitutionStore,
	logger *zap.Logger,
	assignmentID, requestedBy, reason, proposedSubstitute string,
) (*model.SubstitutionRequest, error) {
	assignment, err := database.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if assignment == nil {
		return nil, fmt.Errorf("assignment %s not found", assignmentID)
	}
	if assignment.Status == model.StatusSubstituted {
		return nil, fmt.Errorf("assignment %s is already substituted", assignmentID)
	}

	request := &model.SubstitutionRequest{
		ID:                 uuid.New().String(),
		AssignmentID:       assignmentID,
		RequestedBy:        requestedBy,
		RequestedAt:        time.Now().UTC(),
		Reason:             reason,
		Status:             model.SubstitutionPending,
		ProposedSubstitute: proposedSubstitute,
	}
	if err := database.InsertSubstitutionRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to insert substitution request: %w", err)
	}

	assignment.Status = model.StatusRequestedChange
	if err := database.UpdateAssignment(ctx, *assignment); err != nil {
		return nil, fmt.Errorf("failed to mark assignment as change-requested: %w", err)
	}

	logger.Info("Substitution requested",
		zap.String("request_id", request.ID),
		zap.String("assignment_id", assignmentID),
		zap.String("requested_by", requestedBy))
	return request, nil
}

// ApproveSubstitution approves a pending request and performs exactly one
// assignment mutation: the employee swap plus the substituted status.
func ApproveSubstitution(
	ctx context.Context,
	database SubstitutionStore,
	logger *zap.Logger,
	requestID, substituteEmployeeID, approvedBy string,
) error {
	request, err := database.GetSubstitutionRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to fetch substitution request: %w", err)
	}
	if request == nil {
		return fmt.Errorf("substitution request %s not found", requestID)
	}
	if request.Status != model.SubstitutionPending {
		return fmt.Errorf("substitution request %s is %s, not pending", requestID, request.Status)
	}

	substitute := substituteEmployeeID
	if substitute == "" {
		substitute = request.ProposedSubstitute
	}
	if substitute == "" {
		return fmt.Errorf("substitution request %s has no proposed substitute and none was supplied", requestID)
	}

	assignment, err := database.GetAssignment(ctx, request.AssignmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if assignment == nil {
		return fmt.Errorf("assignment %s not found", request.AssignmentID)
	}
	if substitute == assignment.EmployeeID {
		return fmt.Errorf("substitute %s already holds assignment %s", substitute, assignment.ID)
	}

	// The single assignment mutation triggered by approval
	assignment.EmployeeID = substitute
	assignment.Status = model.StatusSubstituted
	if err := database.UpdateAssignment(ctx, *assignment); err != nil {
		return fmt.Errorf("failed to swap assignment employee: %w", err)
	}

	now := time.Now().UTC()
	request.Status = model.SubstitutionCompleted
	request.ProposedSubstitute = substitute
	request.ApprovedBy = approvedBy
	request.ApprovedAt = &now
	if err := database.UpdateSubstitutionRequest(ctx, *request); err != nil {
		return fmt.Errorf("failed to complete substitution request: %w", err)
	}

	logger.Info("Substitution approved",
		zap.String("request_id", requestID),
		zap.String("assignment_id", assignment.ID),
		zap.String("substitute", substitute),
		zap.String("approved_by", approvedBy))
	return nil
}

// RejectSubstitution rejects a pending request. Only the request mutates;
// the assignment keeps its current holder and drops back to assigned.
func RejectSubstitution(
	ctx context.Context,
	database SubstitutionStore,
	logger *zap.Logger,
	requestID, approvedBy, notes string,
) error {
	request, err := database.GetSubstitutionRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to fetch substitution request: %w", err)
	}
	if request == nil {
		return fmt.Errorf("substitution request %s not found", requestID)
	}
	if request.Status != model.SubstitutionPending {
		return fmt.Errorf("substitution request %s is %s, not pending", requestID, request.Status)
	}

	now := time.Now().UTC()
	request.Status = model.SubstitutionRejected
	request.ApprovedBy = approvedBy
	request.ApprovedAt = &now
	if notes != "" {
		request.Notes = notes
	}
	if err := database.UpdateSubstitutionRequest(ctx, *request); err != nil {
		return fmt.Errorf("failed to reject substitution request: %w", err)
	}

	assignment, err := database.GetAssignment(ctx, request.AssignmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if assignment != nil && assignment.Status == model.StatusRequestedChange {
		assignment.Status = model.StatusAssigned
		if err := database.UpdateAssignment(ctx, *assignment); err != nil {
			return fmt.Errorf("failed to restore assignment status: %w", err)
		}
	}

	logger.Info("Substitution rejected",
		zap.String("request_id", requestID),
		zap.String("approved_by", approvedBy))
	return nil
}

// ConfirmAssignment moves an assignment from assigned to confirmed.
func ConfirmAssignment(
	ctx context.Context,
	database db.AssignmentStore,
	logger *zap.Logger,
	assignmentID string,
) error {
	assignment, err := database.GetAssignment(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if assignment == nil {
		return fmt.Errorf("assignment %s not found", assignmentID)
	}
	if assignment.Status != model.StatusAssigned {
		return fmt.Errorf("assignment %s is %s, only assigned shifts can be confirmed", assignmentID, assignment.Status)
	}

	now := time.Now().UTC()
	assignment.Status = model.StatusConfirmed
	assignment.ConfirmedAt = &now
	if err := database.UpdateAssignment(ctx, *assignment); err != nil {
		return fmt.Errorf("failed to confirm assignment: %w", err)
	}

	logger.Info("Assignment confirmed", zap.String("assignment_id", assignmentID))
	return nil
}
