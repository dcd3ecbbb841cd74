package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mikkoo/internal/common"
	"mikkoo/internal/domain/application"
)

type ApplicationRepository struct {
	db DBTX
}

func NewApplicationRepository(db DBTX) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, posting_id, provider_id, booking_id, status, message, expires_at, created_at, updated_at`

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	if app.ID == "" {
		app.ID = common.NewUUID()
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		app.ID, app.PostingID, app.ProviderID, nullUUID(app.BookingID), app.Status, app.Message, app.ExpiresAt, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "already applied to this posting", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) FindByPostingAndProvider(ctx context.Context, postingID, providerID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE posting_id = $1 AND provider_id = $2`, postingID, providerID)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListByPosting(ctx context.Context, postingID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE posting_id = $1 ORDER BY created_at`, postingID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByProvider(ctx context.Context, providerID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE provider_id = $1 ORDER BY created_at DESC`, providerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list provider applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByPostingForUpdate(ctx context.Context, postingID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE posting_id = $1 ORDER BY created_at FOR UPDATE`, postingID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to lock applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update application status", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return nil
}

func (r *ApplicationRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE status = $1 AND expires_at IS NOT NULL AND expires_at <= $2
		ORDER BY expires_at LIMIT $3`, application.StatusPending, now.UTC(), limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list expired applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func scanApplication(row *sql.Row) (*application.Application, error) {
	var app application.Application
	var bookingID sql.NullString
	if err := row.Scan(&app.ID, &app.PostingID, &app.ProviderID, &bookingID, &app.Status, &app.Message, &app.ExpiresAt, &app.CreatedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	app.BookingID = common.UUID(bookingID.String)
	return &app, nil
}

func collectApplications(rows *sql.Rows) ([]application.Application, error) {
	var items []application.Application
	for rows.Next() {
		var app application.Application
		var bookingID sql.NullString
		if err := rows.Scan(&app.ID, &app.PostingID, &app.ProviderID, &bookingID, &app.Status, &app.Message, &app.ExpiresAt, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		app.BookingID = common.UUID(bookingID.String)
		items = append(items, app)
	}
	return items, nil
}

func nullUUID(id common.UUID) any {
	if id == "" {
		return nil
	}
	return id
}
