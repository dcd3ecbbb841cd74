package storage

import (
	"context"

	"mikkoo/internal/domain/application"
	"mikkoo/internal/domain/booking"
	"mikkoo/internal/domain/catalog"
	"mikkoo/internal/domain/posting"
	"mikkoo/internal/domain/sequence"
)

// Tx bundles the repositories bound to one database handle, either the pool
// or a single transaction.
type Tx interface {
	Postings() posting.Repository
	Applications() application.Repository
	Bookings() booking.Repository
	Catalog() catalog.Repository
	Sequences() sequence.Repository
}

// Store is the persistence entry point. InTx runs fn against repositories
// bound to a single transaction, committing when fn returns nil and rolling
// back otherwise; row locks taken inside fn hold until it returns.
type Store interface {
	Tx
	InTx(ctx context.Context, fn func(tx Tx) error) error
}
