package postgres

import (
	"context"
	"database/sql"

	"mikkoo/internal/common"
	"mikkoo/internal/domain/application"
	"mikkoo/internal/domain/booking"
	"mikkoo/internal/domain/catalog"
	"mikkoo/internal/domain/posting"
	"mikkoo/internal/domain/sequence"
	"mikkoo/internal/domain/storage"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so every
// repository works both pooled and inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repos
}

type repos struct {
	postings     *PostingRepository
	applications *ApplicationRepository
	bookings     *BookingRepository
	catalog      *CatalogRepository
	sequences    *SequenceRepository
}

func newRepos(db DBTX) repos {
	return repos{
		postings:     NewPostingRepository(db),
		applications: NewApplicationRepository(db),
		bookings:     NewBookingRepository(db),
		catalog:      NewCatalogRepository(db),
		sequences:    NewSequenceRepository(db),
	}
}

func (r repos) Postings() posting.Repository         { return r.postings }
func (r repos) Applications() application.Repository { return r.applications }
func (r repos) Bookings() booking.Repository         { return r.bookings }
func (r repos) Catalog() catalog.Repository          { return r.catalog }
func (r repos) Sequences() sequence.Repository       { return r.sequences }

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, repos: newRepos(db)}
}

// InTx runs fn against transaction-bound repositories. FOR UPDATE locks taken
// by fn hold until commit or rollback.
func (s *Store) InTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	if err := fn(newRepos(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return common.NewError(common.CodeInternal, "failed to commit transaction", err)
	}
	return nil
}
