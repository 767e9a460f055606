package metrics

// HoursPerYear is the number of hours in a standard annual schedule.
const HoursPerYear = 8760

// Schedule is an annual occupancy schedule. Metrics only count hours that
// the schedule marks as occupied.
type Schedule struct {
	occupied map[int]bool
}

// AllHours returns a schedule that marks every hour of the year as occupied.
func AllHours() Schedule {
	occ := make(map[int]bool, HoursPerYear)
	for h := 0; h < HoursPerYear; h++ {
		occ[h] = true
	}
	return Schedule{occupied: occ}
}

// FromHours returns a schedule occupied exactly at the given hours of the year.
func FromHours(hoys []int) Schedule {
	occ := make(map[int]bool, len(hoys))
	for _, h := range hoys {
		occ[h] = true
	}
	return Schedule{occupied: occ}
}

// FromValues builds a schedule from an annual series of values where any
// non-zero value marks the matching hour as occupied.
func FromValues(values []float64, hoys []int) Schedule {
	occ := make(map[int]bool, len(hoys))
	for i, h := range hoys {
		if i < len(values) && values[i] != 0 {
			occ[h] = true
		}
	}
	return Schedule{occupied: occ}
}

// FromWorkdayHours builds an annual schedule from a daily occupancy window.
//
// startHour and endHour bound the occupied part of each day (endHour is
// exclusive). offHours lists hours inside the window that are unoccupied,
// such as a lunch break. weekend lists weekday numbers (1 = Monday through
// 7 = Sunday) that are fully unoccupied; the year is assumed to start on a
// Monday.
func FromWorkdayHours(startHour, endHour int, offHours []int, weekend []int) Schedule {
	off := make(map[int]bool, len(offHours))
	for _, h := range offHours {
		off[h] = true
	}
	wknd := make(map[int]bool, len(weekend))
	for _, d := range weekend {
		wknd[d] = true
	}

	occ := make(map[int]bool)
	for h := 0; h < HoursPerYear; h++ {
		hod := h % 24
		if hod < startHour || hod >= endHour || off[hod] {
			continue
		}
		weekday := (h/24)%7 + 1
		if wknd[weekday] {
			continue
		}
		occ[h] = true
	}
	return Schedule{occupied: occ}
}

// EightToSix returns the 8am to 6pm daily schedule used by IES-LM-83-12,
// ten hours per day with no weekend.
func EightToSix() Schedule {
	return FromWorkdayHours(8, 18, nil, nil)
}

// IsOccupied reports whether the given hour of the year is occupied.
func (s Schedule) IsOccupied(hoy int) bool {
	return s.occupied[hoy]
}

// OccupiedCount returns how many of the given hours are occupied.
func (s Schedule) OccupiedCount(hoys []int) int {
	n := 0
	for _, h := range hoys {
		if s.occupied[h] {
			n++
		}
	}
	return n
}

// Len returns the total number of occupied hours in the schedule.
func (s Schedule) Len() int {
	return len(s.occupied)
}
