// Package db defines the storage interfaces the scheduling services depend
// on. The postgres package implements all of them; tests substitute
// in-memory fakes.
package db

import (
	"context"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

// EmployeeStore reads employees and their scheduling preferences.
type EmployeeStore interface {
	GetEmployees(ctx context.Context) ([]model.Employee, error)
	GetPreferences(ctx context.Context) ([]model.EmployeePreference, error)
}

// CatalogStore reads the store list and the shift-type catalog.
type CatalogStore interface {
	GetStores(ctx context.Context) ([]model.Store, error)
	GetShiftTypes(ctx context.Context) ([]model.ShiftType, error)
}

// AssignmentStore reads and writes shift assignments. Every assignment row
// carries its frozen shift-type snapshot; reads never join the live
// catalog.
type AssignmentStore interface {
	GetAssignments(ctx context.Context) ([]model.ShiftAssignment, error)
	GetAssignmentsInRange(ctx context.Context, from, to string) ([]model.ShiftAssignment, error)
	GetAssignment(ctx context.Context, id string) (*model.ShiftAssignment, error)
	InsertAssignments(ctx context.Context, assignments []model.ShiftAssignment) error
	UpdateAssignment(ctx context.Context, assignment model.ShiftAssignment) error
}

// SubstitutionStore reads and writes substitution requests.
type SubstitutionStore interface {
	GetSubstitutionRequests(ctx context.Context) ([]model.SubstitutionRequest, error)
	GetSubstitutionRequest(ctx context.Context, id string) (*model.SubstitutionRequest, error)
	InsertSubstitutionRequest(ctx context.Context, request *model.SubstitutionRequest) error
	UpdateSubstitutionRequest(ctx context.Context, request model.SubstitutionRequest) error
}

// Database is the full storage surface. Both the postgres implementation
// and test fakes satisfy it.
type Database interface {
	EmployeeStore
	CatalogStore
	AssignmentStore
	SubstitutionStore
}
