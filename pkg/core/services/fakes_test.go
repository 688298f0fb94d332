package services

import (
	"context"
	"sort"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

// fakeDatabase is an in-memory stand-in for the postgres store, tracking
// call and mutation counts so tests can assert on service behavior.
type fakeDatabase struct {
	employees   []model.Employee
	preferences []model.EmployeePreference
	stores      []model.Store
	shiftTypes  []model.ShiftType

	assignments   map[string]model.ShiftAssignment
	substitutions map[string]model.SubstitutionRequest

	rangeCalls        int
	assignmentUpdates int
	insertErr         error
}

func newFakeDatabase() *fakeDatabase {
	return &fakeDatabase{
		assignments:   make(map[string]model.ShiftAssignment),
		substitutions: make(map[string]model.SubstitutionRequest),
	}
}

func (f *fakeDatabase) GetEmployees(context.Context) ([]model.Employee, error) {
	return f.employees, nil
}

func (f *fakeDatabase) GetPreferences(context.Context) ([]model.EmployeePreference, error) {
	return f.preferences, nil
}

func (f *fakeDatabase) GetStores(context.Context) ([]model.Store, error) {
	return f.stores, nil
}

func (f *fakeDatabase) GetShiftTypes(context.Context) ([]model.ShiftType, error) {
	return f.shiftTypes, nil
}

func (f *fakeDatabase) GetAssignments(context.Context) ([]model.ShiftAssignment, error) {
	out := make([]model.ShiftAssignment, 0, len(f.assignments))
	for _, a := range f.assignments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDatabase) GetAssignmentsInRange(_ context.Context, from, to string) ([]model.ShiftAssignment, error) {
	f.rangeCalls++
	var out []model.ShiftAssignment
	for _, a := range f.assignments {
		if a.Date >= from && a.Date <= to {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDatabase) GetAssignment(_ context.Context, id string) (*model.ShiftAssignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeDatabase) InsertAssignments(_ context.Context, assignments []model.ShiftAssignment) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, a := range assignments {
		f.assignments[a.ID] = a
	}
	return nil
}

func (f *fakeDatabase) UpdateAssignment(_ context.Context, assignment model.ShiftAssignment) error {
	f.assignmentUpdates++
	f.assignments[assignment.ID] = assignment
	return nil
}

func (f *fakeDatabase) GetSubstitutionRequests(context.Context) ([]model.SubstitutionRequest, error) {
	out := make([]model.SubstitutionRequest, 0, len(f.substitutions))
	for _, r := range f.substitutions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDatabase) GetSubstitutionRequest(_ context.Context, id string) (*model.SubstitutionRequest, error) {
	r, ok := f.substitutions[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeDatabase) InsertSubstitutionRequest(_ context.Context, request *model.SubstitutionRequest) error {
	f.substitutions[request.ID] = *request
	return nil
}

func (f *fakeDatabase) UpdateSubstitutionRequest(_ context.Context, request model.SubstitutionRequest) error {
	f.substitutions[request.ID] = request
	return nil
}
