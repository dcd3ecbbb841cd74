package postgres

import (
	"context"

	"mikkoo/internal/common"
)

type SequenceRepository struct {
	db DBTX
}

func NewSequenceRepository(db DBTX) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next increments and returns the (owner, prefix) counter in one statement.
// The row update serializes concurrent callers inside their transactions.
func (r *SequenceRepository) Next(ctx context.Context, ownerID common.UUID, prefix string) (int64, error) {
	row := r.db.QueryRowContext(ctx, `INSERT INTO sequences (owner_id, prefix, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (owner_id, prefix) DO UPDATE SET value = sequences.value + 1
		RETURNING value`, ownerID, prefix)
	var value int64
	if err := row.Scan(&value); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to advance sequence", err)
	}
	return value, nil
}
