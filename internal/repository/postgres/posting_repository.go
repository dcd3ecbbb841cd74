package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mikkoo/internal/common"
	"mikkoo/internal/domain/posting"
)

type PostingRepository struct {
	db DBTX
}

func NewPostingRepository(db DBTX) *PostingRepository {
	return &PostingRepository{db: db}
}

const postingColumns = `id, requester_id, service, description, quantity, ` + scheduleColumns + `, status, created_at, updated_at`

func (r *PostingRepository) Create(ctx context.Context, p posting.Posting) (*posting.Posting, error) {
	p.ID = common.NewUUID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	args := append([]any{p.ID, p.RequesterID, p.Service, p.Description, p.Quantity}, scheduleArgs(p.Schedule)...)
	args = append(args, p.Status, p.CreatedAt, p.UpdatedAt)
	_, err := r.db.ExecContext(ctx, `INSERT INTO postings (`+postingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create posting", err)
	}
	return &p, nil
}

func (r *PostingRepository) GetByID(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postingColumns+` FROM postings WHERE id = $1`, id)
	return scanPosting(row)
}

func (r *PostingRepository) GetByIDForUpdate(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postingColumns+` FROM postings WHERE id = $1 FOR UPDATE`, id)
	return scanPosting(row)
}

func (r *PostingRepository) UpdateStatus(ctx context.Context, id common.UUID, status posting.Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE postings SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update posting status", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "posting not found", sql.ErrNoRows)
	}
	return nil
}

func (r *PostingRepository) ListOpen(ctx context.Context, limit, offset int) ([]posting.Posting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+postingColumns+` FROM postings
		WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, posting.StatusOpen, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list postings", err)
	}
	defer rows.Close()
	return collectPostings(rows)
}

func (r *PostingRepository) ListByRequester(ctx context.Context, requesterID common.UUID) ([]posting.Posting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+postingColumns+` FROM postings
		WHERE requester_id = $1 ORDER BY created_at DESC`, requesterID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list requester postings", err)
	}
	defer rows.Close()
	return collectPostings(rows)
}

func scanPosting(row *sql.Row) (*posting.Posting, error) {
	var p posting.Posting
	var sched scheduleScan
	targets := append([]any{&p.ID, &p.RequesterID, &p.Service, &p.Description, &p.Quantity}, sched.targets()...)
	targets = append(targets, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err := row.Scan(targets...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "posting not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load posting", err)
	}
	p.Schedule = sched.toSchedule()
	return &p, nil
}

func collectPostings(rows *sql.Rows) ([]posting.Posting, error) {
	var items []posting.Posting
	for rows.Next() {
		var p posting.Posting
		var sched scheduleScan
		targets := append([]any{&p.ID, &p.RequesterID, &p.Service, &p.Description, &p.Quantity}, sched.targets()...)
		targets = append(targets, &p.Status, &p.CreatedAt, &p.UpdatedAt)
		if err := rows.Scan(targets...); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan posting", err)
		}
		p.Schedule = sched.toSchedule()
		items = append(items, p)
	}
	return items, nil
}
