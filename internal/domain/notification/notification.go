package notification

import (
	"context"

	"mikkoo/internal/domain/party"
)

// Event is a post-commit notification about a lifecycle transition.
type Event struct {
	Name      string            `json:"name"`
	Recipient party.OwnerRef    `json:"recipient"`
	Payload   map[string]string `json:"payload,omitempty"`
}

// Dispatcher delivers events fire-and-forget after a transition commits.
// Delivery failures must never roll back the transition that produced them.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) error
}
