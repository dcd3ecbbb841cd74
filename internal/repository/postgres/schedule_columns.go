package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"mikkoo/internal/domain/schedule"
)

// scheduleColumns is the shared column set postings and bookings use to
// persist their schedule.
const scheduleColumns = `schedule_type, start_date, start_time, end_time, frequency, recur_interval, days_of_week, recurrence_end_date`

func scheduleArgs(s schedule.Schedule) []any {
	return []any{
		string(s.Type),
		nullDate(s.StartDate),
		s.StartTime,
		s.EndTime,
		string(s.Frequency),
		s.Interval,
		pq.Array(daysToInt64(s.DaysOfWeek)),
		nullDate(s.RecurrenceEndDate),
	}
}

type scheduleScan struct {
	scheduleType  string
	startDate     sql.NullTime
	startTime     string
	endTime       string
	frequency     string
	interval      int
	days          pq.Int64Array
	recurrenceEnd sql.NullTime
}

func (s *scheduleScan) targets() []any {
	return []any{
		&s.scheduleType,
		&s.startDate,
		&s.startTime,
		&s.endTime,
		&s.frequency,
		&s.interval,
		&s.days,
		&s.recurrenceEnd,
	}
}

func (s *scheduleScan) toSchedule() schedule.Schedule {
	return schedule.Schedule{
		Type:              schedule.Type(s.scheduleType),
		StartDate:         datePtr(s.startDate),
		StartTime:         s.startTime,
		EndTime:           s.endTime,
		Frequency:         schedule.Frequency(s.frequency),
		Interval:          s.interval,
		DaysOfWeek:        daysFromInt64(s.days),
		RecurrenceEndDate: datePtr(s.recurrenceEnd),
	}
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return schedule.Day(*t)
}

func datePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	d := schedule.Day(t.Time)
	return &d
}

func daysToInt64(days []int) []int64 {
	out := make([]int64, 0, len(days))
	for _, d := range days {
		out = append(out, int64(d))
	}
	return out
}

func daysFromInt64(days []int64) []int {
	if len(days) == 0 {
		return nil
	}
	out := make([]int, 0, len(days))
	for _, d := range days {
		out = append(out, int(d))
	}
	return out
}
