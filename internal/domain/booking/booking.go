package booking

import (
	"time"

	"mikkoo/internal/common"
	"mikkoo/internal/domain/schedule"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

// Booking is the shadow reservation created alongside an application. It
// carries the resolved schedule the provider committed to and mirrors the
// application's outcome in its status.
type Booking struct {
	ID             common.UUID       `json:"id"`
	ApplicationID  common.UUID       `json:"application_id"`
	ProviderID     common.UUID       `json:"provider_id"`
	RequesterID    common.UUID       `json:"requester_id"`
	Reference      string            `json:"reference"`
	Service        string            `json:"service,omitempty"`
	UnitPriceCents int64             `json:"unit_price_cents"`
	Quantity       int               `json:"quantity"`
	TotalCents     int64             `json:"total_cents"`
	Status         Status            `json:"status"`
	Schedule       schedule.Schedule `json:"schedule"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Detail is one concrete occupied slot of a booking: a single calendar date
// with the booked time window. A recurring booking owns one detail per
// occurrence.
type Detail struct {
	ID        common.UUID `json:"id"`
	BookingID common.UUID `json:"booking_id"`
	Date      time.Time   `json:"date"`
	StartTime string      `json:"start_time"`
	EndTime   string      `json:"end_time"`
}

// Active reports whether the booking still occupies its slots for the
// purposes of conflict detection.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}
