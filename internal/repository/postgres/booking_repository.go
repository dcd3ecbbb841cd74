package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"mikkoo/internal/common"
	"mikkoo/internal/domain/booking"
	"mikkoo/internal/domain/schedule"
)

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, application_id, provider_id, requester_id, reference, service, unit_price_cents, quantity, total_cents, status, ` + scheduleColumns + `, created_at, updated_at`

// LockProvider holds a transaction-scoped advisory lock on the provider until
// commit or rollback, so two submissions for the same provider cannot both
// pass the overlap check against a window with no detail rows to lock.
func (r *BookingRepository) LockProvider(ctx context.Context, providerID common.UUID) error {
	if _, err := r.db.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, providerID); err != nil {
		return common.NewError(common.CodeInternal, "failed to lock provider", err)
	}
	return nil
}

func (r *BookingRepository) Create(ctx context.Context, b booking.Booking, details []booking.Detail) (*booking.Booking, error) {
	if b.ID == "" {
		b.ID = common.NewUUID()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	args := append([]any{b.ID, b.ApplicationID, b.ProviderID, b.RequesterID, b.Reference, b.Service, b.UnitPriceCents, b.Quantity, b.TotalCents, b.Status}, scheduleArgs(b.Schedule)...)
	args = append(args, b.CreatedAt, b.UpdatedAt)
	_, err := r.db.ExecContext(ctx, `INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create booking", err)
	}
	for _, d := range details {
		if _, err := r.db.ExecContext(ctx, `INSERT INTO booking_details (id, booking_id, occur_date, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5)`,
			common.NewUUID(), b.ID, schedule.Day(d.Date), d.StartTime, d.EndTime); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to create booking detail", err)
		}
	}
	return &b, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id common.UUID) (*booking.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return scanBooking(row)
}

func (r *BookingRepository) GetByApplication(ctx context.Context, applicationID common.UUID) (*booking.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE application_id = $1`, applicationID)
	return scanBooking(row)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id common.UUID, status booking.Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update booking status", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "booking not found", sql.ErrNoRows)
	}
	return nil
}

func (r *BookingRepository) Confirm(ctx context.Context, id common.UUID, service string, unitPriceCents, totalCents int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE bookings SET
			status = $1,
			service = CASE WHEN service = '' THEN $2 ELSE service END,
			unit_price_cents = CASE WHEN unit_price_cents = 0 THEN $3 ELSE unit_price_cents END,
			total_cents = CASE WHEN total_cents = 0 THEN $4 ELSE total_cents END,
			updated_at = $5
		WHERE id = $6`,
		booking.StatusConfirmed, service, unitPriceCents, totalCents, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to confirm booking", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "booking not found", sql.ErrNoRows)
	}
	return nil
}

func (r *BookingRepository) ListActiveDetailsInRange(ctx context.Context, providerID common.UUID, from, to time.Time) ([]booking.Detail, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT d.id, d.booking_id, d.occur_date, d.start_time, d.end_time
		FROM booking_details d
		JOIN bookings b ON b.id = d.booking_id
		WHERE b.provider_id = $1 AND b.status = ANY($2)
			AND d.occur_date BETWEEN $3 AND $4
		ORDER BY d.occur_date
		FOR UPDATE OF d`,
		providerID, activeStatuses(), schedule.Day(from), schedule.Day(to))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list booked slots", err)
	}
	defer rows.Close()
	var items []booking.Detail
	for rows.Next() {
		var d booking.Detail
		if err := rows.Scan(&d.ID, &d.BookingID, &d.Date, &d.StartTime, &d.EndTime); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan booked slot", err)
		}
		d.Date = schedule.Day(d.Date)
		items = append(items, d)
	}
	return items, nil
}

func scanBooking(row *sql.Row) (*booking.Booking, error) {
	var b booking.Booking
	var sched scheduleScan
	targets := append([]any{&b.ID, &b.ApplicationID, &b.ProviderID, &b.RequesterID, &b.Reference, &b.Service, &b.UnitPriceCents, &b.Quantity, &b.TotalCents, &b.Status}, sched.targets()...)
	targets = append(targets, &b.CreatedAt, &b.UpdatedAt)
	if err := row.Scan(targets...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "booking not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load booking", err)
	}
	b.Schedule = sched.toSchedule()
	return &b, nil
}

func activeStatuses() any {
	return pq.Array([]string{string(booking.StatusPending), string(booking.StatusConfirmed)})
}
