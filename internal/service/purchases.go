package service

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// Purchases is read-only. Purchases are written together with their order.
type Purchases struct {
	purchases port.PurchaseRepository
	policy    *access.Policy
}

func NewPurchases(purchases port.PurchaseRepository, policies access.Policies) *Purchases {
	return &Purchases{
		purchases: purchases,
		policy:    policies.Purchases,
	}
}

func (p *Purchases) List(ctx context.Context, page domain.Page) ([]domain.Purchase, int, error) {
	s, err := authorize(ctx, p.policy, access.ActionList)
	if err != nil {
		return nil, 0, err
	}

	scope, err := access.PurchaseScope(ctx, s)
	if err != nil {
		return nil, 0, fmt.Errorf("access.PurchaseScope: %w", err)
	}

	purchases, count, err := p.purchases.SearchPurchases(ctx, domain.PurchaseFilter{Scope: scope, Page: page})
	if err != nil {
		return nil, 0, fmt.Errorf("purchases.SearchPurchases: %w", err)
	}

	return purchases, count, nil
}

func (p *Purchases) Get(ctx context.Context, purchaseID int64) (domain.Purchase, error) {
	s, err := authorize(ctx, p.policy, access.ActionRetrieve)
	if err != nil {
		return domain.Purchase{}, err
	}

	scope, err := access.PurchaseScope(ctx, s)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("access.PurchaseScope: %w", err)
	}

	purchase, err := p.purchases.GetPurchase(ctx, purchaseID, scope)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("purchases.GetPurchase: %w", err)
	}

	return purchase, nil
}

// Deny answers the verbs the resource does not offer. The policy has no rule for them.
func (p *Purchases) Deny(ctx context.Context, action access.Action) error {
	_, err := authorize(ctx, p.policy, action)
	return err
}
