package application

import (
	"context"
	"time"

	"mikkoo/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByPostingAndProvider(ctx context.Context, postingID, providerID common.UUID) (*Application, error)
	ListByPosting(ctx context.Context, postingID common.UUID) ([]Application, error)
	ListByProvider(ctx context.Context, providerID common.UUID) ([]Application, error)
	// ListByPostingForUpdate locks every application row of the posting for
	// the remainder of the surrounding transaction.
	ListByPostingForUpdate(ctx context.Context, postingID common.UUID) ([]Application, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) error
	// ListExpiredPending returns pending applications whose expiry deadline
	// has passed.
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]Application, error)
}
