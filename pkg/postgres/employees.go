package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

// GetEmployees retrieves all employee records
func (d *DB) GetEmployees(ctx context.Context) ([]model.Employee, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, contract_hours, min_hours, active, store_id
		FROM employee
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		var storeID *string
		if err := rows.Scan(&e.ID, &e.Name, &e.ContractHours, &e.MinHours, &e.Active, &storeID); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		if storeID != nil {
			e.StoreID = *storeID
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}
	return employees, nil
}

// GetPreferences retrieves all employee preference records
func (d *DB) GetPreferences(ctx context.Context) ([]model.EmployeePreference, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT employee_id, preferred_shift_types, unavailable_dates,
		       max_consecutive_days, preferred_days_off, priority, notes
		FROM employee_preference
		ORDER BY employee_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	var preferences []model.EmployeePreference
	for rows.Next() {
		var p model.EmployeePreference
		var daysOff []int32
		var priority string
		if err := rows.Scan(&p.EmployeeID, &p.PreferredShiftTypes, &p.UnavailableDates,
			&p.MaxConsecutiveDays, &daysOff, &priority, &p.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		p.Priority = model.PreferencePriority(priority)
		for _, day := range daysOff {
			p.PreferredDaysOff = append(p.PreferredDaysOff, time.Weekday(day))
		}
		preferences = append(preferences, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preferences: %w", err)
	}
	return preferences, nil
}
