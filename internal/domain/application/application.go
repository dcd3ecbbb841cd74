package application

import (
	"time"

	"mikkoo/internal/common"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
	StatusExpired   Status = "expired"
)

// Application is a provider's claim on a posting. It is created pending and
// only ever transitioned, never deleted; every status but pending is terminal.
type Application struct {
	ID         common.UUID `json:"id"`
	PostingID  common.UUID `json:"posting_id"`
	ProviderID common.UUID `json:"provider_id"`
	BookingID  common.UUID `json:"booking_id"`
	Status     Status      `json:"status"`
	Message    string      `json:"message,omitempty"`
	ExpiresAt  *time.Time  `json:"expires_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (s Status) Terminal() bool {
	return s != StatusPending
}
