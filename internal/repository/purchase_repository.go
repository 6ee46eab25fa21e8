package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type purchaseRepository struct {
	q *db.Queries
}

func NewPurchase(pool *pgxpool.Pool) port.PurchaseRepository {
	return &purchaseRepository{
		q: db.New(pool),
	}
}

func (r *purchaseRepository) SearchPurchases(ctx context.Context, filter domain.PurchaseFilter) ([]domain.Purchase, int, error) {
	if err := filter.Page.Validate(); err != nil {
		return nil, 0, fmt.Errorf("filter.Page.Validate: %w", err)
	}

	if filter.Scope.Empty {
		return nil, 0, nil
	}

	scope := mapDomainScopeToDB(filter.Scope)

	count, err := r.q.CountPurchases(ctx, scope)
	if err != nil {
		return nil, 0, fmt.Errorf("q.CountPurchases: %w", err)
	}

	rows, err := r.q.SearchPurchases(ctx, scope, int32(filter.Page.Limit), int32(filter.Page.Offset))
	if err != nil {
		return nil, 0, fmt.Errorf("q.SearchPurchases: %w", err)
	}

	purchases, err := mapDBPurchasesToDomain(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("mapDBPurchasesToDomain: %w", err)
	}

	return purchases, int(count), nil
}

func (r *purchaseRepository) GetPurchase(ctx context.Context, purchaseID int64, scope domain.OrderScope) (domain.Purchase, error) {
	if scope.Empty {
		return domain.Purchase{}, fmt.Errorf("q.GetPurchase: %w", domain.ErrNotFound)
	}

	row, err := r.q.GetPurchase(ctx, purchaseID, mapDomainScopeToDB(scope))
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("q.GetPurchase: %w", mapError(err))
	}

	return mapDBPurchaseToDomain(row)
}
