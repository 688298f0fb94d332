package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

const assignmentColumns = `
	id, employee_id, shift_id, date, store_id,
	shift_name, shift_start, shift_end, shift_category,
	shift_difficulty, shift_required_staff, shift_break_minutes,
	status, assigned_by, assigned_at, confirmed_at, rotation_score
`

// GetAssignments retrieves all shift assignments
func (d *DB) GetAssignments(ctx context.Context) ([]model.ShiftAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+assignmentColumns+`
		FROM shift_assignment
		ORDER BY date, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()
	return scanAssignments(rows)
}

// GetAssignmentsInRange retrieves assignments with date in [from, to]
func (d *DB) GetAssignmentsInRange(ctx context.Context, from, to string) ([]model.ShiftAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+assignmentColumns+`
		FROM shift_assignment
		WHERE date >= $1 AND date <= $2
		ORDER BY date, id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments in range: %w", err)
	}
	defer rows.Close()
	return scanAssignments(rows)
}

// GetAssignment retrieves one assignment by id, nil when absent
func (d *DB) GetAssignment(ctx context.Context, id string) (*model.ShiftAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+assignmentColumns+`
		FROM shift_assignment
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment %s: %w", id, err)
	}
	defer rows.Close()

	assignments, err := scanAssignments(rows)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, nil
	}
	return &assignments[0], nil
}

// InsertAssignments inserts assignment records in one transaction
func (d *DB) InsertAssignments(ctx context.Context, assignments []model.ShiftAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO shift_assignment (`+assignmentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		`, a.ID, a.EmployeeID, a.ShiftID, a.Date, a.StoreID,
			a.Shift.Name, a.Shift.Start, a.Shift.End, string(a.Shift.Category),
			a.Shift.Difficulty, a.Shift.RequiredStaff, a.Shift.BreakMinutes,
			string(a.Status), a.AssignedBy, a.AssignedAt, a.ConfirmedAt, a.RotationScore)
		if err != nil {
			return fmt.Errorf("failed to insert assignment %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateAssignment rewrites the mutable assignment fields: employee,
// status, confirmation timestamp. The shift snapshot and score are frozen
// and never updated.
func (d *DB) UpdateAssignment(ctx context.Context, a model.ShiftAssignment) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE shift_assignment
		SET employee_id = $2, status = $3, confirmed_at = $4
		WHERE id = $1
	`, a.ID, a.EmployeeID, string(a.Status), a.ConfirmedAt)
	if err != nil {
		return fmt.Errorf("failed to update assignment %s: %w", a.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s not found", a.ID)
	}
	return nil
}

func scanAssignments(rows pgx.Rows) ([]model.ShiftAssignment, error) {
	var assignments []model.ShiftAssignment
	for rows.Next() {
		var a model.ShiftAssignment
		var category, status string
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.ShiftID, &a.Date, &a.StoreID,
			&a.Shift.Name, &a.Shift.Start, &a.Shift.End, &category,
			&a.Shift.Difficulty, &a.Shift.RequiredStaff, &a.Shift.BreakMinutes,
			&status, &a.AssignedBy, &a.AssignedAt, &a.ConfirmedAt, &a.RotationScore); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Shift.ID = a.ShiftID
		a.Shift.Category = model.ShiftCategory(category)
		a.Status = model.AssignmentStatus(status)
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}
	return assignments, nil
}
