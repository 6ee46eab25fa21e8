package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type OrderQuery struct {
	Emails   []string
	Statuses []domain.OrderStatus
	Page     domain.Page
}

type PurchaseInput struct {
	GoodID int64
	Price  decimal.Decimal
}

// OrderInput is a full replacement of an order, purchases included.
type OrderInput struct {
	Email      string
	EthAddress string
	Status     domain.OrderStatus
	Purchases  []PurchaseInput
}

type OrderPatch struct {
	Email      *string
	EthAddress *string
	Status     *domain.OrderStatus
}

// Orders is the moderation endpoint over every order the subject may see.
// Orders are placed and removed through MyOrders only.
type Orders struct {
	orders   port.OrderRepository
	goods    port.GoodRepository
	policy   *access.Policy
	currency currency.Unit
}

func NewOrders(orders port.OrderRepository, goods port.GoodRepository, policies access.Policies, unit currency.Unit) *Orders {
	return &Orders{
		orders:   orders,
		goods:    goods,
		policy:   policies.Orders,
		currency: unit,
	}
}

func (o *Orders) List(ctx context.Context, query OrderQuery) ([]domain.Order, int, error) {
	s, err := authorize(ctx, o.policy, access.ActionList)
	if err != nil {
		return nil, 0, err
	}

	scope, err := access.OrderScope(ctx, s)
	if err != nil {
		return nil, 0, fmt.Errorf("access.OrderScope: %w", err)
	}

	for _, status := range query.Statuses {
		if err := validStatus(status); err != nil {
			return nil, 0, err
		}
	}

	orders, count, err := o.orders.SearchOrders(ctx, domain.OrderFilter{
		Scope:    scope,
		Emails:   query.Emails,
		Statuses: query.Statuses,
		Page:     query.Page,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	return orders, count, nil
}

func (o *Orders) Get(ctx context.Context, orderID int64) (domain.Order, error) {
	return o.get(ctx, access.ActionRetrieve, orderID)
}

func (o *Orders) get(ctx context.Context, action access.Action, orderID int64) (domain.Order, error) {
	s, err := authorize(ctx, o.policy, action)
	if err != nil {
		return domain.Order{}, err
	}

	scope, err := access.OrderScope(ctx, s)
	if err != nil {
		return domain.Order{}, fmt.Errorf("access.OrderScope: %w", err)
	}

	order, err := o.orders.GetOrder(ctx, orderID, scope)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}

// StatusHistory follows the retrieve rules of the order.
func (o *Orders) StatusHistory(ctx context.Context, orderID int64) ([]domain.OrderStatusChange, error) {
	if _, err := o.get(ctx, access.ActionRetrieve, orderID); err != nil {
		return nil, err
	}

	history, err := o.orders.GetStatusHistory(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("orders.GetStatusHistory: %w", err)
	}

	return history, nil
}

// Update swaps the purchases for in.Purchases in the same transaction as the order fields.
func (o *Orders) Update(ctx context.Context, orderID int64, in OrderInput) (domain.Order, error) {
	order, err := o.get(ctx, access.ActionUpdate, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	order.Email = in.Email
	order.EthAddress = in.EthAddress
	order.Status = in.Status

	if err := validStatus(order.Status); err != nil {
		return domain.Order{}, err
	}

	order.Purchases, err = o.buildPurchases(ctx, in.Purchases)
	if err != nil {
		return domain.Order{}, err
	}

	updated, err := o.orders.UpdateOrder(ctx, order, true)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.UpdateOrder: %w", err)
	}

	return updated, nil
}

func (o *Orders) PartialUpdate(ctx context.Context, orderID int64, patch OrderPatch) (domain.Order, error) {
	order, err := o.get(ctx, access.ActionPartialUpdate, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if patch.Email != nil {
		order.Email = *patch.Email
	}
	if patch.EthAddress != nil {
		order.EthAddress = *patch.EthAddress
	}
	if patch.Status != nil {
		if err := validStatus(*patch.Status); err != nil {
			return domain.Order{}, err
		}
		order.Status = *patch.Status
	}

	updated, err := o.orders.UpdateOrder(ctx, order, false)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.UpdateOrder: %w", err)
	}

	return updated, nil
}

// Deny answers create and destroy, which the policy never allows here.
func (o *Orders) Deny(ctx context.Context, action access.Action) error {
	_, err := authorize(ctx, o.policy, action)
	return err
}

func (o *Orders) buildPurchases(ctx context.Context, inputs []PurchaseInput) ([]domain.Purchase, error) {
	verr := &domain.ValidationError{}
	purchases := make([]domain.Purchase, 0, len(inputs))
	goods := make(map[int64]domain.Good)

	for _, in := range inputs {
		if msg := domain.ValidatePrice(in.Price); msg != "" {
			verr.Add("purchases", msg)
			continue
		}

		good, ok := goods[in.GoodID]
		if !ok {
			var err error
			good, err = o.goods.GetGood(ctx, in.GoodID)
			if errors.Is(err, domain.ErrNotFound) {
				verr.Add("purchases", fmt.Sprintf(msgInvalidGood, in.GoodID))
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("goods.GetGood: %w", err)
			}
			goods[in.GoodID] = good
		}

		purchases = append(purchases, domain.Purchase{
			Good:  good,
			Price: domain.Money{Amount: in.Price, Currency: o.currency},
		})
	}

	if !verr.Empty() {
		return nil, verr
	}

	return purchases, nil
}

// Check fails with domain.ErrNotFound for orders outside the subject's scope.
func (o *Orders) Check(ctx context.Context, action access.Action, orderID int64) error {
	_, err := o.get(ctx, action, orderID)
	return err
}
