package service

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/orderid"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/session"
)

// MyOrderInput places or replaces a buyer order. A nil or empty OfferIDs on
// update keeps the purchases as they are.
type MyOrderInput struct {
	Email      string
	EthAddress string
	OfferIDs   []int64
}

type MyOrderPatch struct {
	Email      *string
	EthAddress *string
	OfferIDs   []int64
}

// MyOrders is the buyer endpoint. Registered buyers see their own orders,
// anonymous buyers the orders without a user.
type MyOrders struct {
	orders    port.OrderRepository
	offers    port.OfferRepository
	allocator *orderid.Allocator
	policy    *access.Policy
}

func NewMyOrders(orders port.OrderRepository, offers port.OfferRepository, allocator *orderid.Allocator, policies access.Policies) *MyOrders {
	return &MyOrders{
		orders:    orders,
		offers:    offers,
		allocator: allocator,
		policy:    policies.MyOrders,
	}
}

// List shows anonymous callers only the orders placed from their session.
func (m *MyOrders) List(ctx context.Context, statuses []domain.OrderStatus, page domain.Page) ([]domain.Order, int, error) {
	s, err := authorize(ctx, m.policy, access.ActionList)
	if err != nil {
		return nil, 0, err
	}

	for _, status := range statuses {
		if err := validStatus(status); err != nil {
			return nil, 0, err
		}
	}

	orders, count, err := m.orders.SearchOrders(ctx, domain.OrderFilter{
		Scope:    access.MyOrderScope(s, access.ActionList),
		Statuses: statuses,
		Page:     page,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	return orders, count, nil
}

// Get is not limited to the session: any anonymous order is retrievable by id.
func (m *MyOrders) Get(ctx context.Context, orderID int64) (domain.Order, error) {
	return m.get(ctx, access.ActionRetrieve, orderID)
}

func (m *MyOrders) get(ctx context.Context, action access.Action, orderID int64) (domain.Order, error) {
	s, err := authorize(ctx, m.policy, action)
	if err != nil {
		return domain.Order{}, err
	}

	order, err := m.orders.GetOrder(ctx, orderID, access.MyOrderScope(s, action))
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}

// Create snapshots the offers into purchases. Registered orders take the next
// sequence value, anonymous ones a random id bound to the session.
func (m *MyOrders) Create(ctx context.Context, in MyOrderInput) (domain.Order, error) {
	s, err := authorize(ctx, m.policy, access.ActionCreate)
	if err != nil {
		return domain.Order{}, err
	}

	if len(in.OfferIDs) == 0 {
		return domain.Order{}, domain.NewValidationError("offer_ids", msgEmptyList)
	}

	purchases, err := m.purchasesFromOffers(ctx, s, in.OfferIDs)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		Owner:      s.Owner,
		Email:      in.Email,
		EthAddress: in.EthAddress,
		Status:     domain.OrderStatusDraft,
		Purchases:  purchases,
	}

	var orderID int64
	if s.IsAnonymous() {
		order.Owner = domain.Anonymous{}
		orderID, err = m.allocator.Create(ctx, order, session.FromContext(ctx))
		if err != nil {
			return domain.Order{}, fmt.Errorf("allocator.Create: %w", err)
		}
	} else {
		orderID, err = m.orders.InsertOrder(ctx, order)
		if err != nil {
			return domain.Order{}, fmt.Errorf("orders.InsertOrder: %w", err)
		}
	}

	created, err := m.orders.GetOrder(ctx, orderID, access.MyOrderScope(s, access.ActionRetrieve))
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return created, nil
}

func (m *MyOrders) Update(ctx context.Context, orderID int64, in MyOrderInput) (domain.Order, error) {
	patch := MyOrderPatch{
		Email:      &in.Email,
		EthAddress: &in.EthAddress,
		OfferIDs:   in.OfferIDs,
	}
	return m.update(ctx, access.ActionUpdate, orderID, patch)
}

func (m *MyOrders) PartialUpdate(ctx context.Context, orderID int64, patch MyOrderPatch) (domain.Order, error) {
	return m.update(ctx, access.ActionPartialUpdate, orderID, patch)
}

// update leaves the status alone: buyers cannot move their orders through the workflow.
func (m *MyOrders) update(ctx context.Context, action access.Action, orderID int64, patch MyOrderPatch) (domain.Order, error) {
	order, err := m.get(ctx, action, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if patch.Email != nil {
		order.Email = *patch.Email
	}
	if patch.EthAddress != nil {
		order.EthAddress = *patch.EthAddress
	}

	replace := len(patch.OfferIDs) > 0
	if replace {
		order.Purchases, err = m.purchasesFromOffers(ctx, access.SubjectFrom(ctx), patch.OfferIDs)
		if err != nil {
			return domain.Order{}, err
		}
	}

	updated, err := m.orders.UpdateOrder(ctx, order, replace)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.UpdateOrder: %w", err)
	}

	return updated, nil
}

func (m *MyOrders) Destroy(ctx context.Context, orderID int64) error {
	if _, err := m.get(ctx, access.ActionDestroy, orderID); err != nil {
		return err
	}

	if err := m.orders.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("orders.DeleteOrder: %w", err)
	}

	return nil
}

// purchasesFromOffers requires every id to name a distinct offer the subject can see.
func (m *MyOrders) purchasesFromOffers(ctx context.Context, s access.Subject, offerIDs []int64) ([]domain.Purchase, error) {
	enabledOnly, err := access.OfferScope(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("access.OfferScope: %w", err)
	}

	offers, err := m.offers.GetOffers(ctx, offerIDs, enabledOnly)
	if err != nil {
		return nil, fmt.Errorf("offers.GetOffers: %w", err)
	}

	if len(offers) != len(offerIDs) {
		return nil, domain.NewValidationError("offer_ids", domain.MsgOffersUnavailable)
	}

	purchases := make([]domain.Purchase, 0, len(offers))
	for _, offer := range offers {
		purchases = append(purchases, domain.PurchaseFromOffer(offer))
	}

	return purchases, nil
}

func (m *MyOrders) Authorize(ctx context.Context, action access.Action) error {
	_, err := authorize(ctx, m.policy, action)
	return err
}

// Check fails with domain.ErrNotFound for orders the subject does not own.
func (m *MyOrders) Check(ctx context.Context, action access.Action, orderID int64) error {
	_, err := m.get(ctx, action, orderID)
	return err
}
