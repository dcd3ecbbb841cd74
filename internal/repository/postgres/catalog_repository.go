package postgres

import (
	"context"
	"time"

	"mikkoo/internal/common"
	"mikkoo/internal/domain/catalog"
)

type CatalogRepository struct {
	db DBTX
}

func NewCatalogRepository(db DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListByProvider(ctx context.Context, providerID common.UUID) ([]catalog.PricedService, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, provider_id, label, unit_price_cents
		FROM provider_services WHERE provider_id = $1 ORDER BY created_at`, providerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list provider services", err)
	}
	defer rows.Close()
	var items []catalog.PricedService
	for rows.Next() {
		var s catalog.PricedService
		if err := rows.Scan(&s.ID, &s.ProviderID, &s.Label, &s.UnitPriceCents); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan provider service", err)
		}
		items = append(items, s)
	}
	return items, nil
}

func (r *CatalogRepository) Create(ctx context.Context, service catalog.PricedService) (*catalog.PricedService, error) {
	service.ID = common.NewUUID()
	_, err := r.db.ExecContext(ctx, `INSERT INTO provider_services (id, provider_id, label, unit_price_cents, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		service.ID, service.ProviderID, service.Label, service.UnitPriceCents, time.Now().UTC())
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create provider service", err)
	}
	return &service, nil
}
