package schedule

import "time"

type Type string

const (
	TypeSingle    Type = "single"
	TypeRecurring Type = "recurring"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Schedule is the single-or-recurring time specification attached to a
// posting or booking. Dates are calendar dates (UTC midnight); times are
// HH:MM clock strings.
type Schedule struct {
	Type              Type       `json:"schedule_type"`
	StartDate         *time.Time `json:"start_date"`
	StartTime         string     `json:"start_time"`
	EndTime           string     `json:"end_time"`
	Frequency         Frequency  `json:"frequency,omitempty"`
	Interval          int        `json:"interval,omitempty"`
	DaysOfWeek        []int      `json:"days_of_week,omitempty"`
	RecurrenceEndDate *time.Time `json:"recurrence_end_date,omitempty"`
}

// EffectiveEnd is the recurrence end date for recurring schedules that carry
// one, otherwise the start date. A single schedule always ends on its start.
func (s Schedule) EffectiveEnd() *time.Time {
	if s.Type == TypeRecurring && s.RecurrenceEndDate != nil {
		end := Day(*s.RecurrenceEndDate)
		return &end
	}
	if s.StartDate == nil {
		return nil
	}
	end := Day(*s.StartDate)
	return &end
}

// Window resolves the inclusive [start, end] date range the schedule covers.
// ok is false when either bound is missing.
func (s Schedule) Window() (start, end time.Time, ok bool) {
	if s.StartDate == nil {
		return time.Time{}, time.Time{}, false
	}
	effectiveEnd := s.EffectiveEnd()
	if effectiveEnd == nil {
		return time.Time{}, time.Time{}, false
	}
	return Day(*s.StartDate), *effectiveEnd, true
}

// Day truncates a timestamp to its UTC calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ISOWeekday returns the weekday with Monday=1 .. Sunday=7.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
