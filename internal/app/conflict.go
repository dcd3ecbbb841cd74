package app

import (
	"context"
	"time"

	"mikkoo/internal/common"
	"mikkoo/internal/domain/booking"
	"mikkoo/internal/domain/schedule"
)

// ConflictChecker decides whether a candidate schedule would double-book a
// provider against their existing active bookings.
type ConflictChecker struct{}

// HasConflict expands the candidate schedule and tests every generated date
// against the provider's pending/confirmed slots on that date, using the
// half-open time overlap rule. An unresolvable window or malformed stored
// time is an error, not a non-conflict: the caller must fail closed.
func (ConflictChecker) HasConflict(ctx context.Context, bookings booking.Repository, providerID common.UUID, sched schedule.Schedule) (bool, error) {
	from, to, ok := sched.Window()
	if !ok {
		return false, common.NewError(common.CodeValidation, "schedule window cannot be resolved", nil)
	}
	if _, err := schedule.ParseMinutes(sched.StartTime); err != nil {
		return false, common.NewValidationError("invalid schedule times", map[string]string{"start_time": err.Error()})
	}
	if _, err := schedule.ParseMinutes(sched.EndTime); err != nil {
		return false, common.NewValidationError("invalid schedule times", map[string]string{"end_time": err.Error()})
	}

	details, err := bookings.ListActiveDetailsInRange(ctx, providerID, from, to)
	if err != nil {
		return false, err
	}
	if len(details) == 0 {
		return false, nil
	}

	byDate := make(map[string][]booking.Detail, len(details))
	for _, d := range details {
		key := dateKey(d.Date)
		byDate[key] = append(byDate[key], d)
	}

	for _, occ := range sched.Occurrences() {
		for _, d := range byDate[dateKey(occ)] {
			overlaps, err := schedule.TimesOverlap(sched.StartTime, sched.EndTime, d.StartTime, d.EndTime)
			if err != nil {
				return false, common.NewError(common.CodeInternal, "stored booking slot has malformed times", err)
			}
			if overlaps {
				return true, nil
			}
		}
	}
	return false, nil
}

func dateKey(t time.Time) string {
	return schedule.Day(t).Format("2006-01-02")
}
