package catalog

import (
	"context"
	"strings"

	"mikkoo/internal/common"
)

// PricedService is one service a provider offers at a unit price.
type PricedService struct {
	ID             common.UUID `json:"id"`
	ProviderID     common.UUID `json:"provider_id"`
	Label          string      `json:"label"`
	UnitPriceCents int64       `json:"unit_price_cents"`
}

// Repository is the provider-to-priced-services lookup consumed by the
// application lifecycle.
type Repository interface {
	ListByProvider(ctx context.Context, providerID common.UUID) ([]PricedService, error)
	Create(ctx context.Context, service PricedService) (*PricedService, error)
}

// MatchFunc decides whether an offered service satisfies a requested label.
// It is kept as a standalone predicate so the matching rule can be swapped
// without touching the lifecycle.
type MatchFunc func(requested, offered string) bool

// FuzzyMatch is the default rule: case-insensitive substring containment in
// either direction.
func FuzzyMatch(requested, offered string) bool {
	req := strings.ToLower(strings.TrimSpace(requested))
	off := strings.ToLower(strings.TrimSpace(offered))
	if req == "" || off == "" {
		return false
	}
	return strings.Contains(req, off) || strings.Contains(off, req)
}

// FindMatch returns the first offered service matching the requested label.
func FindMatch(requested string, offered []PricedService, matches MatchFunc) (*PricedService, bool) {
	if matches == nil {
		matches = FuzzyMatch
	}
	for i := range offered {
		if matches(requested, offered[i].Label) {
			return &offered[i], true
		}
	}
	return nil, false
}

// Total computes a booking total from a unit price and requested quantity.
func Total(unitPriceCents int64, quantity int) int64 {
	if quantity < 1 {
		quantity = 1
	}
	return unitPriceCents * int64(quantity)
}
