package booking

import (
	"context"
	"time"

	"mikkoo/internal/common"
)

type Repository interface {
	// LockProvider takes a transaction-scoped lock on the provider so that
	// concurrent submissions serialize their conflict checks. Row locks
	// alone cannot block an insert into a window that holds no rows yet.
	LockProvider(ctx context.Context, providerID common.UUID) error
	Create(ctx context.Context, b Booking, details []Detail) (*Booking, error)
	GetByID(ctx context.Context, id common.UUID) (*Booking, error)
	GetByApplication(ctx context.Context, applicationID common.UUID) (*Booking, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) error
	// Confirm marks the booking confirmed and backfills service and pricing.
	// A non-zero stored total is kept as-is.
	Confirm(ctx context.Context, id common.UUID, service string, unitPriceCents, totalCents int64) error
	// ListActiveDetailsInRange returns the provider's pending/confirmed
	// occupied slots whose date falls inside [from, to], locked for the
	// remainder of the surrounding transaction when the store is
	// transactional.
	ListActiveDetailsInRange(ctx context.Context, providerID common.UUID, from, to time.Time) ([]Detail, error)
}
