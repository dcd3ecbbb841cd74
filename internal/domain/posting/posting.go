package posting

import (
	"time"

	"mikkoo/internal/common"
	"mikkoo/internal/domain/schedule"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Posting is a requester's announcement of a recurring or one-off service
// slot. It closes automatically when an application is accepted, or manually
// by its owner.
type Posting struct {
	ID          common.UUID       `json:"id"`
	RequesterID common.UUID       `json:"requester_id"`
	Service     string            `json:"service"`
	Description string            `json:"description,omitempty"`
	Quantity    int               `json:"quantity"`
	Schedule    schedule.Schedule `json:"schedule"`
	Status      Status            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
