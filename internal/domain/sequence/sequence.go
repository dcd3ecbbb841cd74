package sequence

import (
	"context"
	"fmt"

	"mikkoo/internal/common"
)

// Repository hands out monotonically increasing counters scoped by
// (owner, prefix). Next must be called inside the transaction that consumes
// the number so concurrent callers serialize on the counter row.
type Repository interface {
	Next(ctx context.Context, ownerID common.UUID, prefix string) (int64, error)
}

// Format renders a counter value as a human-readable reference.
func Format(prefix string, value int64) string {
	return fmt.Sprintf("%s-%04d", prefix, value)
}
