package app

import (
	"context"
	"sync"
	"time"

	"mikkoo/internal/common"
	"mikkoo/internal/domain/application"
	"mikkoo/internal/domain/booking"
	"mikkoo/internal/domain/catalog"
	"mikkoo/internal/domain/notification"
	"mikkoo/internal/domain/posting"
	"mikkoo/internal/domain/sequence"
	"mikkoo/internal/domain/storage"
)

// fakeStore backs every repository with in-memory maps. InTx hands the same
// handle to fn and restores a snapshot when fn fails, so tests can observe
// that a failed transition leaves no partial state. The single mutex stands
// in for row locks.
type fakeStore struct {
	mu               sync.Mutex
	postings         map[common.UUID]*posting.Posting
	applications     map[common.UUID]*application.Application
	bookings         map[common.UUID]*booking.Booking
	details          map[common.UUID][]booking.Detail
	services         map[common.UUID][]catalog.PricedService
	counters         map[string]int64
	lockedProviders  []common.UUID
	bookingCreateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		postings:     make(map[common.UUID]*posting.Posting),
		applications: make(map[common.UUID]*application.Application),
		bookings:     make(map[common.UUID]*booking.Booking),
		details:      make(map[common.UUID][]booking.Detail),
		services:     make(map[common.UUID][]catalog.PricedService),
		counters:     make(map[string]int64),
	}
}

func (s *fakeStore) Postings() posting.Repository         { return &fakePostingRepo{s} }
func (s *fakeStore) Applications() application.Repository { return &fakeApplicationRepo{s} }
func (s *fakeStore) Bookings() booking.Repository         { return &fakeBookingRepo{s} }
func (s *fakeStore) Catalog() catalog.Repository          { return &fakeCatalogRepo{s} }
func (s *fakeStore) Sequences() sequence.Repository       { return &fakeSequenceRepo{s} }

func (s *fakeStore) InTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	postings     map[common.UUID]*posting.Posting
	applications map[common.UUID]*application.Application
	bookings     map[common.UUID]*booking.Booking
	details      map[common.UUID][]booking.Detail
	services     map[common.UUID][]catalog.PricedService
	counters     map[string]int64
}

func (s *fakeStore) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := storeSnapshot{
		postings:     make(map[common.UUID]*posting.Posting, len(s.postings)),
		applications: make(map[common.UUID]*application.Application, len(s.applications)),
		bookings:     make(map[common.UUID]*booking.Booking, len(s.bookings)),
		details:      make(map[common.UUID][]booking.Detail, len(s.details)),
		services:     make(map[common.UUID][]catalog.PricedService, len(s.services)),
		counters:     make(map[string]int64, len(s.counters)),
	}
	for id, p := range s.postings {
		snap.postings[id] = clonePosting(p)
	}
	for id, app := range s.applications {
		snap.applications[id] = cloneApplication(app)
	}
	for id, b := range s.bookings {
		copy := *b
		snap.bookings[id] = &copy
	}
	for id, details := range s.details {
		snap.details[id] = append([]booking.Detail(nil), details...)
	}
	for id, services := range s.services {
		snap.services[id] = append([]catalog.PricedService(nil), services...)
	}
	for key, value := range s.counters {
		snap.counters[key] = value
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postings = snap.postings
	s.applications = snap.applications
	s.bookings = snap.bookings
	s.details = snap.details
	s.services = snap.services
	s.counters = snap.counters
}

type fakePostingRepo struct {
	store *fakeStore
}

func (r *fakePostingRepo) Create(ctx context.Context, p posting.Posting) (*posting.Posting, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p.ID = common.NewUUID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.store.postings[p.ID] = &p
	return clonePosting(&p), nil
}

func (r *fakePostingRepo) GetByID(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p := r.store.postings[id]
	if p == nil {
		return nil, common.NewError(common.CodeNotFound, "posting not found", nil)
	}
	return clonePosting(p), nil
}

func (r *fakePostingRepo) GetByIDForUpdate(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	return r.GetByID(ctx, id)
}

func (r *fakePostingRepo) UpdateStatus(ctx context.Context, id common.UUID, status posting.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p := r.store.postings[id]
	if p == nil {
		return common.NewError(common.CodeNotFound, "posting not found", nil)
	}
	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakePostingRepo) ListOpen(ctx context.Context, limit, offset int) ([]posting.Posting, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []posting.Posting
	for _, p := range r.store.postings {
		if p.Status == posting.StatusOpen {
			out = append(out, *clonePosting(p))
		}
	}
	return out, nil
}

func (r *fakePostingRepo) ListByRequester(ctx context.Context, requesterID common.UUID) ([]posting.Posting, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []posting.Posting
	for _, p := range r.store.postings {
		if p.RequesterID == requesterID {
			out = append(out, *clonePosting(p))
		}
	}
	return out, nil
}

func clonePosting(p *posting.Posting) *posting.Posting {
	copy := *p
	copy.Schedule.DaysOfWeek = append([]int(nil), p.Schedule.DaysOfWeek...)
	return &copy
}

type fakeApplicationRepo struct {
	store *fakeStore
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.applications {
		if existing.PostingID == app.PostingID && existing.ProviderID == app.ProviderID {
			return nil, common.NewError(common.CodeConflict, "already applied to this posting", nil)
		}
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	r.store.applications[app.ID] = &app
	return cloneApplication(&app), nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	app := r.store.applications[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return cloneApplication(app), nil
}

func (r *fakeApplicationRepo) FindByPostingAndProvider(ctx context.Context, postingID, providerID common.UUID) (*application.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, app := range r.store.applications {
		if app.PostingID == postingID && app.ProviderID == providerID {
			return cloneApplication(app), nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) ListByPosting(ctx context.Context, postingID common.UUID) ([]application.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.listByPostingLocked(postingID), nil
}

func (r *fakeApplicationRepo) ListByProvider(ctx context.Context, providerID common.UUID) ([]application.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []application.Application
	for _, app := range r.store.applications {
		if app.ProviderID == providerID {
			out = append(out, *cloneApplication(app))
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByPostingForUpdate(ctx context.Context, postingID common.UUID) ([]application.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.listByPostingLocked(postingID), nil
}

func (r *fakeApplicationRepo) listByPostingLocked(postingID common.UUID) []application.Application {
	var out []application.Application
	for _, app := range r.store.applications {
		if app.PostingID == postingID {
			out = append(out, *cloneApplication(app))
		}
	}
	return out
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	app := r.store.applications[id]
	if app == nil {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	app.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeApplicationRepo) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]application.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []application.Application
	for _, app := range r.store.applications {
		if app.Status != application.StatusPending || app.ExpiresAt == nil {
			continue
		}
		if app.ExpiresAt.After(now) {
			continue
		}
		out = append(out, *cloneApplication(app))
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func cloneApplication(app *application.Application) *application.Application {
	copy := *app
	if app.ExpiresAt != nil {
		expiresAt := *app.ExpiresAt
		copy.ExpiresAt = &expiresAt
	}
	return &copy
}

type fakeBookingRepo struct {
	store *fakeStore
}

func (r *fakeBookingRepo) LockProvider(ctx context.Context, providerID common.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.lockedProviders = append(r.store.lockedProviders, providerID)
	return nil
}

func (r *fakeBookingRepo) Create(ctx context.Context, b booking.Booking, details []booking.Detail) (*booking.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.bookingCreateErr != nil {
		return nil, r.store.bookingCreateErr
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	r.store.bookings[b.ID] = &b
	stored := make([]booking.Detail, 0, len(details))
	for _, d := range details {
		d.ID = common.NewUUID()
		d.BookingID = b.ID
		stored = append(stored, d)
	}
	r.store.details[b.ID] = stored
	copy := b
	return &copy, nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id common.UUID) (*booking.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b := r.store.bookings[id]
	if b == nil {
		return nil, common.NewError(common.CodeNotFound, "booking not found", nil)
	}
	copy := *b
	return &copy, nil
}

func (r *fakeBookingRepo) GetByApplication(ctx context.Context, applicationID common.UUID) (*booking.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.bookings {
		if b.ApplicationID == applicationID {
			copy := *b
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "booking not found", nil)
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id common.UUID, status booking.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b := r.store.bookings[id]
	if b == nil {
		return common.NewError(common.CodeNotFound, "booking not found", nil)
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeBookingRepo) Confirm(ctx context.Context, id common.UUID, service string, unitPriceCents, totalCents int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b := r.store.bookings[id]
	if b == nil {
		return common.NewError(common.CodeNotFound, "booking not found", nil)
	}
	b.Status = booking.StatusConfirmed
	if b.Service == "" {
		b.Service = service
	}
	if b.UnitPriceCents == 0 {
		b.UnitPriceCents = unitPriceCents
	}
	if b.TotalCents == 0 {
		b.TotalCents = totalCents
	}
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeBookingRepo) ListActiveDetailsInRange(ctx context.Context, providerID common.UUID, from, to time.Time) ([]booking.Detail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []booking.Detail
	for id, b := range r.store.bookings {
		if b.ProviderID != providerID || !b.Status.Active() {
			continue
		}
		for _, d := range r.store.details[id] {
			if d.Date.Before(from) || d.Date.After(to) {
				continue
			}
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeCatalogRepo struct {
	store *fakeStore
}

func (r *fakeCatalogRepo) ListByProvider(ctx context.Context, providerID common.UUID) ([]catalog.PricedService, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]catalog.PricedService(nil), r.store.services[providerID]...), nil
}

func (r *fakeCatalogRepo) Create(ctx context.Context, service catalog.PricedService) (*catalog.PricedService, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if service.ID == "" {
		service.ID = common.NewUUID()
	}
	r.store.services[service.ProviderID] = append(r.store.services[service.ProviderID], service)
	copy := service
	return &copy, nil
}

type fakeSequenceRepo struct {
	store *fakeStore
}

func (r *fakeSequenceRepo) Next(ctx context.Context, ownerID common.UUID, prefix string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := ownerID.String() + "/" + prefix
	r.store.counters[key]++
	return r.store.counters[key], nil
}

type fakeDispatcher struct {
	mu     sync.Mutex
	events []notification.Event
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, event notification.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *fakeDispatcher) named(name string) []notification.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []notification.Event
	for _, event := range d.events {
		if event.Name == name {
			out = append(out, event)
		}
	}
	return out
}
