package posting

import (
	"context"

	"mikkoo/internal/common"
)

type Repository interface {
	Create(ctx context.Context, p Posting) (*Posting, error)
	GetByID(ctx context.Context, id common.UUID) (*Posting, error)
	// GetByIDForUpdate locks the posting row for the remainder of the
	// surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id common.UUID) (*Posting, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) error
	ListOpen(ctx context.Context, limit, offset int) ([]Posting, error)
	ListByRequester(ctx context.Context, requesterID common.UUID) ([]Posting, error)
}
