package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

// GetStores retrieves all stores with their per-weekday opening hours.
// A weekday with no row means the store is closed that day.
func (d *DB) GetStores(ctx context.Context) ([]model.Store, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, active
		FROM store
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	var stores []model.Store
	byID := make(map[string]int)
	for rows.Next() {
		var s model.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Active); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		s.OpeningHours = make(map[time.Weekday]model.Interval)
		byID[s.ID] = len(stores)
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stores: %w", err)
	}
	rows.Close()

	hourRows, err := d.pool.Query(ctx, `
		SELECT store_id, weekday, open_time, close_time
		FROM store_opening_hours
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query opening hours: %w", err)
	}
	defer hourRows.Close()

	for hourRows.Next() {
		var storeID string
		var weekday int16
		var iv model.Interval
		if err := hourRows.Scan(&storeID, &weekday, &iv.Open, &iv.Close); err != nil {
			return nil, fmt.Errorf("failed to scan opening hours: %w", err)
		}
		if idx, ok := byID[storeID]; ok {
			stores[idx].OpeningHours[time.Weekday(weekday)] = iv
		}
	}
	if err := hourRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opening hours: %w", err)
	}

	return stores, nil
}

// GetShiftTypes retrieves the shift-type catalog
func (d *DB) GetShiftTypes(ctx context.Context) ([]model.ShiftType, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, start_time, end_time, category, difficulty, required_staff, break_minutes
		FROM shift_type
		ORDER BY start_time, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift types: %w", err)
	}
	defer rows.Close()

	var shiftTypes []model.ShiftType
	for rows.Next() {
		var st model.ShiftType
		var category string
		if err := rows.Scan(&st.ID, &st.Name, &st.Start, &st.End, &category,
			&st.Difficulty, &st.RequiredStaff, &st.BreakMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan shift type: %w", err)
		}
		st.Category = model.ShiftCategory(category)
		shiftTypes = append(shiftTypes, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift types: %w", err)
	}
	return shiftTypes, nil
}
