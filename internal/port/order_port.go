package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type OrderRepository interface {
	// GetOrder returns the order with its purchases, or domain.ErrNotFound when it is outside scope.
	GetOrder(ctx context.Context, orderID int64, scope domain.OrderScope) (domain.Order, error)

	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error)

	// InsertOrder stores the order, its purchases and the initial status history entry atomically.
	// A non-zero order.ID is used as the primary key; a collision yields domain.ErrDuplicateID.
	InsertOrder(ctx context.Context, order domain.Order) (int64, error)

	// UpdateOrder writes email, eth address and status, appending history on a status change.
	// With replacePurchases set, existing purchases are swapped for order.Purchases.
	UpdateOrder(ctx context.Context, order domain.Order, replacePurchases bool) (domain.Order, error)

	DeleteOrder(ctx context.Context, orderID int64) error

	GetStatusHistory(ctx context.Context, orderID int64) ([]domain.OrderStatusChange, error)
}

type PurchaseRepository interface {
	SearchPurchases(ctx context.Context, filter domain.PurchaseFilter) ([]domain.Purchase, int, error)
	GetPurchase(ctx context.Context, purchaseID int64, scope domain.OrderScope) (domain.Purchase, error)
}
