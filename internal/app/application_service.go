package app

import (
	"context"
	"time"

	"mikkoo/internal/common"
	"mikkoo/internal/domain/application"
	"mikkoo/internal/domain/booking"
	"mikkoo/internal/domain/catalog"
	"mikkoo/internal/domain/notification"
	"mikkoo/internal/domain/party"
	"mikkoo/internal/domain/posting"
	"mikkoo/internal/domain/sequence"
	"mikkoo/internal/domain/storage"
	"mikkoo/internal/observability"
)

// ApplicationService runs the application lifecycle: submit, accept, reject,
// withdraw. Every transition that reads then writes shared state runs inside
// one transaction with the rows it checks locked for update.
type ApplicationService struct {
	store          storage.Store
	conflicts      ConflictChecker
	notifier       notification.Dispatcher
	logger         *observability.Logger
	matches        catalog.MatchFunc
	applicationTTL time.Duration
	bookingPrefix  string
}

func NewApplicationService(store storage.Store, notifier notification.Dispatcher, logger *observability.Logger, applicationTTL time.Duration, bookingPrefix string) *ApplicationService {
	return &ApplicationService{
		store:          store,
		notifier:       notifier,
		logger:         logger,
		matches:        catalog.FuzzyMatch,
		applicationTTL: applicationTTL,
		bookingPrefix:  bookingPrefix,
	}
}

// UseMatcher swaps the service-matching predicate.
func (s *ApplicationService) UseMatcher(matches catalog.MatchFunc) {
	s.matches = matches
}

// Submit creates a pending application plus its shadow booking, provided the
// posting is open, the provider has not applied before, the posting's
// schedule resolves, the provider is free on every occurrence, and the
// provider offers a priced service matching the posting.
func (s *ApplicationService) Submit(ctx context.Context, postingID, providerID common.UUID, message string) (*application.Application, error) {
	var created *application.Application
	err := s.store.InTx(ctx, func(tx storage.Tx) error {
		post, err := tx.Postings().GetByID(ctx, postingID)
		if err != nil {
			return err
		}
		if post.Status != posting.StatusOpen {
			return common.NewError(common.CodePrecondition, "posting is not open", nil)
		}
		if _, err := tx.Applications().FindByPostingAndProvider(ctx, postingID, providerID); err == nil {
			return common.NewError(common.CodeConflict, "already applied to this posting", nil)
		} else if !common.Is(err, common.CodeNotFound) {
			return err
		}
		occurrences := post.Schedule.Occurrences()
		if len(occurrences) == 0 {
			return common.NewError(common.CodePrecondition, "posting schedule yields no occurrences", nil)
		}
		if err := tx.Bookings().LockProvider(ctx, providerID); err != nil {
			return err
		}
		conflict, err := s.conflicts.HasConflict(ctx, tx.Bookings(), providerID, post.Schedule)
		if err != nil {
			return err
		}
		if conflict {
			return common.NewError(common.CodeConflict, "schedule conflicts with an existing booking", nil)
		}
		offered, err := tx.Catalog().ListByProvider(ctx, providerID)
		if err != nil {
			return err
		}
		matched, ok := catalog.FindMatch(post.Service, offered, s.matches)
		if !ok {
			return common.NewError(common.CodePrecondition, "provider offers no priced service matching the posting", nil)
		}

		seq, err := tx.Sequences().Next(ctx, post.RequesterID, s.bookingPrefix)
		if err != nil {
			return err
		}

		app := application.Application{
			ID:         common.NewUUID(),
			PostingID:  postingID,
			ProviderID: providerID,
			BookingID:  common.NewUUID(),
			Status:     application.StatusPending,
			Message:    message,
		}
		if s.applicationTTL > 0 {
			expiresAt := time.Now().UTC().Add(s.applicationTTL)
			app.ExpiresAt = &expiresAt
		}
		created, err = tx.Applications().Create(ctx, app)
		if err != nil {
			return err
		}

		details := make([]booking.Detail, 0, len(occurrences))
		for _, occ := range occurrences {
			details = append(details, booking.Detail{
				Date:      occ,
				StartTime: post.Schedule.StartTime,
				EndTime:   post.Schedule.EndTime,
			})
		}
		_, err = tx.Bookings().Create(ctx, booking.Booking{
			ID:             app.BookingID,
			ApplicationID:  app.ID,
			ProviderID:     providerID,
			RequesterID:    post.RequesterID,
			Reference:      sequence.Format(s.bookingPrefix, seq),
			Service:        matched.Label,
			UnitPriceCents: matched.UnitPriceCents,
			Quantity:       post.Quantity,
			TotalCents:     catalog.Total(matched.UnitPriceCents, post.Quantity),
			Status:         booking.StatusPending,
			Schedule:       post.Schedule,
		}, details)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.dispatch(ctx, notification.Event{
		Name:      "application.submitted",
		Recipient: party.Provider(providerID),
		Payload:   map[string]string{"application_id": created.ID.String(), "posting_id": postingID.String()},
	})
	return created, nil
}

// Accept marks one pending application accepted, rejects every pending
// sibling, cancels their bookings, confirms the winner's booking, and closes
// the posting, all inside one transaction.
func (s *ApplicationService) Accept(ctx context.Context, applicationID, ownerID common.UUID) (*application.Application, []application.Application, error) {
	target, err := s.store.Applications().GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}
	postingID := target.PostingID
	// Resolve the backfill candidate before the transaction; the catalog is
	// append-only so a stale read only costs a missed backfill.
	offered, err := s.store.Catalog().ListByProvider(ctx, target.ProviderID)
	if err != nil {
		return nil, nil, err
	}

	var winner *application.Application
	var rejected []application.Application
	err = s.store.InTx(ctx, func(tx storage.Tx) error {
		post, err := tx.Postings().GetByIDForUpdate(ctx, postingID)
		if err != nil {
			return err
		}
		if post.RequesterID != ownerID {
			return common.NewError(common.CodeForbidden, "posting belongs to another requester", nil)
		}
		if post.Status != posting.StatusOpen {
			return common.NewError(common.CodeConflict, "posting is already closed", nil)
		}
		siblings, err := tx.Applications().ListByPostingForUpdate(ctx, postingID)
		if err != nil {
			return err
		}
		var current *application.Application
		for i := range siblings {
			if siblings[i].Status == application.StatusAccepted {
				return common.NewError(common.CodeConflict, "posting already has an accepted application", nil)
			}
			if siblings[i].ID == applicationID {
				current = &siblings[i]
			}
		}
		if current == nil {
			return common.NewError(common.CodeNotFound, "application not found", nil)
		}
		if current.Status != application.StatusPending {
			return common.NewError(common.CodeConflict, "application is already decided", nil)
		}

		if err := tx.Applications().UpdateStatus(ctx, applicationID, application.StatusAccepted); err != nil {
			return err
		}
		matched, _ := catalog.FindMatch(post.Service, offered, s.matches)
		var label string
		var unitPrice, total int64
		if matched != nil {
			label = matched.Label
			unitPrice = matched.UnitPriceCents
			total = catalog.Total(matched.UnitPriceCents, post.Quantity)
		}
		if err := tx.Bookings().Confirm(ctx, current.BookingID, label, unitPrice, total); err != nil {
			return err
		}

		rejected = rejected[:0]
		for _, sibling := range siblings {
			if sibling.ID == applicationID || sibling.Status != application.StatusPending {
				continue
			}
			if err := tx.Applications().UpdateStatus(ctx, sibling.ID, application.StatusRejected); err != nil {
				return err
			}
			if err := tx.Bookings().UpdateStatus(ctx, sibling.BookingID, booking.StatusCanceled); err != nil {
				return err
			}
			sibling.Status = application.StatusRejected
			rejected = append(rejected, sibling)
		}

		if err := tx.Postings().UpdateStatus(ctx, postingID, posting.StatusClosed); err != nil {
			return err
		}
		current.Status = application.StatusAccepted
		winner = current
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.dispatch(ctx, notification.Event{
		Name:      "application.accepted",
		Recipient: party.Provider(winner.ProviderID),
		Payload:   map[string]string{"application_id": winner.ID.String(), "posting_id": postingID.String()},
	})
	for _, loser := range rejected {
		s.dispatch(ctx, notification.Event{
			Name:      "application.rejected",
			Recipient: party.Provider(loser.ProviderID),
			Payload:   map[string]string{"application_id": loser.ID.String(), "posting_id": postingID.String()},
		})
	}
	return winner, rejected, nil
}

// Reject declines one pending application and cancels its booking. Siblings
// and the posting are untouched.
func (s *ApplicationService) Reject(ctx context.Context, applicationID, ownerID common.UUID) (*application.Application, error) {
	updated, err := s.transition(ctx, applicationID, application.StatusRejected, func(post *posting.Posting, app *application.Application) error {
		if post.RequesterID != ownerID {
			return common.NewError(common.CodeForbidden, "posting belongs to another requester", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.dispatch(ctx, notification.Event{
		Name:      "application.rejected",
		Recipient: party.Provider(updated.ProviderID),
		Payload:   map[string]string{"application_id": updated.ID.String(), "posting_id": updated.PostingID.String()},
	})
	return updated, nil
}

// Withdraw lets the owning provider retract a pending application; its
// booking is canceled.
func (s *ApplicationService) Withdraw(ctx context.Context, applicationID, providerID common.UUID) (*application.Application, error) {
	var requesterID common.UUID
	updated, err := s.transition(ctx, applicationID, application.StatusWithdrawn, func(post *posting.Posting, app *application.Application) error {
		if app.ProviderID != providerID {
			return common.NewError(common.CodeForbidden, "application belongs to another provider", nil)
		}
		requesterID = post.RequesterID
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.dispatch(ctx, notification.Event{
		Name:      "application.withdrawn",
		Recipient: party.Requester(requesterID),
		Payload:   map[string]string{"application_id": updated.ID.String(), "posting_id": updated.PostingID.String()},
	})
	return updated, nil
}

// transition moves one pending application to a terminal state and cancels
// its booking. The posting row is locked first so the check cannot race an
// accept cascade on the same posting.
func (s *ApplicationService) transition(ctx context.Context, applicationID common.UUID, next application.Status, authorize func(*posting.Posting, *application.Application) error) (*application.Application, error) {
	target, err := s.store.Applications().GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	var updated *application.Application
	err = s.store.InTx(ctx, func(tx storage.Tx) error {
		post, err := tx.Postings().GetByIDForUpdate(ctx, target.PostingID)
		if err != nil {
			return err
		}
		app, err := tx.Applications().GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if err := authorize(post, app); err != nil {
			return err
		}
		if app.Status != application.StatusPending {
			return common.NewError(common.CodeConflict, "application is already decided", nil)
		}
		if err := tx.Applications().UpdateStatus(ctx, applicationID, next); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateStatus(ctx, app.BookingID, booking.StatusCanceled); err != nil {
			return err
		}
		app.Status = next
		updated = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ApplicationService) ListByProvider(ctx context.Context, providerID common.UUID) ([]application.Application, error) {
	return s.store.Applications().ListByProvider(ctx, providerID)
}

func (s *ApplicationService) ListByPosting(ctx context.Context, postingID, ownerID common.UUID) ([]application.Application, error) {
	post, err := s.store.Postings().GetByID(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if post.RequesterID != ownerID {
		return nil, common.NewError(common.CodeForbidden, "posting belongs to another requester", nil)
	}
	return s.store.Applications().ListByPosting(ctx, postingID)
}

func (s *ApplicationService) dispatch(ctx context.Context, event notification.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Dispatch(ctx, event); err != nil && s.logger != nil {
		s.logger.Error("notification dispatch failed", err, "event", event.Name)
	}
}
