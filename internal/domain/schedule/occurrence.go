package schedule

import "time"

// MaxOccurrences caps expansion as a safety bound against malformed
// intervals or runaway end dates.
const MaxOccurrences = 366

// Occurrences expands the schedule into its ordered list of calendar dates,
// inclusive of both window bounds and capped at MaxOccurrences entries.
// A schedule whose window cannot be resolved expands to nothing.
func (s Schedule) Occurrences() []time.Time {
	start, end, ok := s.Window()
	if !ok {
		return nil
	}
	if s.Type != TypeRecurring {
		return []time.Time{start}
	}

	interval := s.Interval
	if interval < 1 {
		interval = 1
	}

	switch s.Frequency {
	case FrequencyDaily:
		return dailyOccurrences(start, end, interval)
	case FrequencyMonthly:
		return monthlyOccurrences(start, end, interval)
	default:
		// Weekly is the default when no frequency is set.
		return weeklyOccurrences(start, end, interval, s.DaysOfWeek)
	}
}

func dailyOccurrences(start, end time.Time, interval int) []time.Time {
	var out []time.Time
	for d := start; !d.After(end) && len(out) < MaxOccurrences; d = d.AddDate(0, 0, interval) {
		out = append(out, d)
	}
	return out
}

// monthlyOccurrences steps whole months from the start month and keeps the
// start date's day-of-month. Months that do not contain that day (day 31 in
// February, say) contribute no occurrence at all; the date is skipped, never
// clamped to month end.
func monthlyOccurrences(start, end time.Time, interval int) []time.Time {
	var out []time.Time
	day := start.Day()
	for step := 0; len(out) < MaxOccurrences; step += interval {
		monthStart := time.Date(start.Year(), start.Month()+time.Month(step), 1, 0, 0, 0, 0, time.UTC)
		if monthStart.After(end) {
			break
		}
		candidate := time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, time.UTC)
		if candidate.Day() != day {
			// time.Date normalized an out-of-range day into the next month.
			continue
		}
		if candidate.After(end) {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

// weeklyOccurrences walks every calendar day in the window and keeps days
// whose Monday-aligned week index lands on the interval. An empty days-of-week
// set matches every day within an in-interval week, not just the start
// weekday.
func weeklyOccurrences(start, end time.Time, interval int, daysOfWeek []int) []time.Time {
	var out []time.Time
	anchor := weekStart(start)
	for d := start; !d.After(end) && len(out) < MaxOccurrences; d = d.AddDate(0, 0, 1) {
		weeks := daysBetween(anchor, weekStart(d)) / 7
		if weeks%interval != 0 {
			continue
		}
		if len(daysOfWeek) == 0 || containsDay(daysOfWeek, ISOWeekday(d)) {
			out = append(out, d)
		}
	}
	return out
}

// weekStart returns the Monday of the week containing d.
func weekStart(d time.Time) time.Time {
	return d.AddDate(0, 0, -(ISOWeekday(d) - 1))
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
