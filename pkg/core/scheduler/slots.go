package scheduler

import (
	"sort"
	"time"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

// minOverlapMinutes is the minimum overlap between a shift window and the
// store's opening interval for the shift to be schedulable that day.
const minOverlapMinutes = 120

// buildSlots expands the date interval into the ordered list of candidate
// slots. Ordering is fixed (date, store id, shift start, shift-type id) so
// that scoring against the running accumulator stays deterministic.
func buildSlots(stores []model.Store, shiftTypes []model.ShiftType, cfg Config, closures *ClosureCalendar, start, end time.Time) []slot {
	ordered := make([]model.Store, len(stores))
	copy(ordered, stores)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	types := make([]model.ShiftType, len(shiftTypes))
	copy(types, shiftTypes)
	sort.Slice(types, func(i, j int) bool {
		if types[i].StartMinutes() != types[j].StartMinutes() {
			return types[i].StartMinutes() < types[j].StartMinutes()
		}
		return types[i].ID < types[j].ID
	})

	var slots []slot
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(model.DateLayout)
		weekday := day.Weekday()

		for i := range ordered {
			store := &ordered[i]
			if !store.Active {
				continue
			}
			opening, open := store.OpenOn(weekday)
			if !open || closures.IsClosed(store.ID, date) {
				// Closed day: zero required staffing for this store
				continue
			}

			for _, st := range types {
				if overlapMinutes(st, opening) < minOverlapMinutes {
					continue
				}
				slots = append(slots, slot{
					date:      date,
					weekday:   weekday,
					store:     store,
					shiftType: st,
					required:  requiredStaff(st, store.ID, weekday, cfg.StaffTable),
				})
			}
		}
	}
	return slots
}

// overlapMinutes measures the overlap between the shift window and the
// store opening interval, in minutes.
func overlapMinutes(st model.ShiftType, opening model.Interval) int {
	from := max(st.StartMinutes(), opening.OpenMinutes())
	to := min(st.EndMinutes(), opening.CloseMinutes())
	if to <= from {
		return 0
	}
	return to - from
}

// requiredStaff resolves a slot's headcount: the per-store/per-weekday
// override when configured, else the catalog default. A configured max
// caps the result.
func requiredStaff(st model.ShiftType, storeID string, day time.Weekday, table *StaffTable) int {
	required := st.RequiredStaff
	if levels, ok := table.Lookup(storeID, day); ok {
		if levels.Min > 0 {
			required = levels.Min
		}
		if levels.Max > 0 && required > levels.Max {
			required = levels.Max
		}
	}
	return required
}
