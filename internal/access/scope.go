package access

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
)

// OfferScope reports whether the subject is limited to enabled offers.
func OfferScope(ctx context.Context, s Subject) (enabledOnly bool, err error) {
	ok, err := moderateOffer(ctx, s)
	if err != nil {
		return true, fmt.Errorf("moderateOffer: %w", err)
	}
	return !ok, nil
}

// PurchaseScope narrows purchases through the order they belong to.
func PurchaseScope(ctx context.Context, s Subject) (domain.OrderScope, error) {
	ok, err := HasPerm(domain.PermViewPurchase)(ctx, s)
	if err != nil {
		return domain.NoOrders(), fmt.Errorf("HasPerm[%s]: %w", domain.PermViewPurchase, err)
	}
	if ok {
		return domain.AllOrders(), nil
	}

	ok, err = HasPerm(domain.PermViewMyPurchase)(ctx, s)
	if err != nil {
		return domain.NoOrders(), fmt.Errorf("HasPerm[%s]: %w", domain.PermViewMyPurchase, err)
	}
	if !ok {
		return domain.NoOrders(), nil
	}

	if s.IsAnonymous() {
		return domain.OwnedBy(domain.Anonymous{}).WithIDs(s.SessionOrderIDs), nil
	}

	return domain.OwnedBy(s.Owner), nil
}

// OrderScope narrows the global order endpoint. The broader permission wins.
func OrderScope(ctx context.Context, s Subject) (domain.OrderScope, error) {
	global, err := AnyPerm(domain.PermViewOrder, domain.PermAddOrder, domain.PermChangeOrder, domain.PermDeleteOrder)(ctx, s)
	if err != nil {
		return domain.NoOrders(), fmt.Errorf("global order perms: %w", err)
	}
	if global {
		return domain.AllOrders(), nil
	}

	own, err := AnyPerm(domain.PermViewMyOrder, domain.PermModerateMyOrder)(ctx, s)
	if err != nil {
		return domain.NoOrders(), fmt.Errorf("own order perms: %w", err)
	}
	if own && !s.IsAnonymous() {
		return domain.OwnedBy(s.Owner), nil
	}

	return domain.NoOrders(), nil
}

// MyOrderScope narrows the buyer endpoint by ownership alone. Anonymous listings
// only show orders created from the caller's session.
func MyOrderScope(s Subject, action Action) domain.OrderScope {
	if !s.IsAnonymous() {
		return domain.OwnedBy(s.Owner)
	}

	scope := domain.OwnedBy(domain.Anonymous{})
	if action == ActionList {
		scope = scope.WithIDs(s.SessionOrderIDs)
	}

	return scope
}
