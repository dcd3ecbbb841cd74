package app

import (
	"context"
	"time"

	"mikkoo/internal/common"
	"mikkoo/internal/domain/application"
	"mikkoo/internal/domain/booking"
	"mikkoo/internal/domain/storage"
	"mikkoo/internal/observability"
)

const defaultSweepBatchSize = 500

// SweepService forces stale pending applications into the expired state.
// Each application is expired in its own transaction: one failure is logged
// and the batch continues.
type SweepService struct {
	store     storage.Store
	logger    *observability.Logger
	batchSize int
}

func NewSweepService(store storage.Store, logger *observability.Logger) *SweepService {
	return &SweepService{store: store, logger: logger, batchSize: defaultSweepBatchSize}
}

// Sweep expires every pending application whose deadline is at or before
// now and returns how many were transitioned.
func (s *SweepService) Sweep(ctx context.Context, now time.Time) (int, error) {
	due, err := s.store.Applications().ListExpiredPending(ctx, now, s.batchSize)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, app := range due {
		expired, err := s.expireOne(ctx, app, now)
		if err != nil {
			if s.logger != nil {
				s.logger.Error("sweep: failed to expire application", err, "application_id", app.ID)
			}
			continue
		}
		if expired {
			count++
		}
	}
	return count, nil
}

func (s *SweepService) expireOne(ctx context.Context, stale application.Application, now time.Time) (bool, error) {
	expired := false
	err := s.store.InTx(ctx, func(tx storage.Tx) error {
		// Lock the posting first so expiry cannot race an accept cascade
		// touching the same application.
		if _, err := tx.Postings().GetByIDForUpdate(ctx, stale.PostingID); err != nil {
			return err
		}
		app, err := tx.Applications().GetByID(ctx, stale.ID)
		if err != nil {
			return err
		}
		if app.Status != application.StatusPending {
			// Decided between the listing and the lock; nothing to do.
			return nil
		}
		if app.ExpiresAt == nil || app.ExpiresAt.After(now) {
			return common.NewError(common.CodeConflict, "application is no longer expired", nil)
		}
		if err := tx.Applications().UpdateStatus(ctx, app.ID, application.StatusExpired); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateStatus(ctx, app.BookingID, booking.StatusCanceled); err != nil {
			return err
		}
		expired = true
		return nil
	})
	return expired, err
}
