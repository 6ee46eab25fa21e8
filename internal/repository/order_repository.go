package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		dbtx: tx, // use provided transaction instead
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID int64, scope domain.OrderScope) (domain.Order, error) {
	var o domain.Order

	if scope.Empty {
		return o, fmt.Errorf("q.GetOrder: %w", domain.ErrNotFound)
	}

	order, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		return getOrder(ctx, q, orderID, scope)
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func getOrder(ctx context.Context, q *db.Queries, orderID int64, scope domain.OrderScope) (domain.Order, error) {
	var o domain.Order

	dbOrder, err := q.GetOrder(ctx, orderID, mapDomainScopeToDB(scope))
	if err != nil {
		return o, fmt.Errorf("q.GetOrder: %w", mapError(err))
	}

	dbPurchases, err := q.GetOrdersPurchases(ctx, []int64{orderID})
	if err != nil {
		return o, fmt.Errorf("q.GetOrdersPurchases: %w", err)
	}

	purchases, err := mapDBPurchasesToDomain(dbPurchases)
	if err != nil {
		return o, fmt.Errorf("mapDBPurchasesToDomain: %w", err)
	}

	o, err = mapDBOrderToDomain(dbOrder)
	if err != nil {
		return o, fmt.Errorf("mapDBOrderToDomain: %w", err)
	}
	o.Purchases = purchases

	return o, nil
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, fmt.Errorf("filter.Validate: %w", err)
	}

	if filter.Scope.Empty {
		return nil, 0, nil
	}

	type result struct {
		orders []domain.Order
		count  int
	}

	res, err := withTx(ctx, r.dbtx, func(q *db.Queries) (result, error) {
		var res result

		params := mapDomainOrderFilterToDB(filter)

		count, err := q.CountOrders(ctx, params)
		if err != nil {
			return res, fmt.Errorf("q.CountOrders: %w", err)
		}
		res.count = int(count)

		dbOrders, err := q.SearchOrders(ctx, params)
		if err != nil {
			return res, fmt.Errorf("q.SearchOrders: %w", err)
		}

		if len(dbOrders) == 0 {
			return res, nil
		}

		orderIDs := lo.Map(dbOrders, func(o db.Order, _ int) int64 { return o.ID })

		dbPurchases, err := q.GetOrdersPurchases(ctx, orderIDs)
		if err != nil {
			return res, fmt.Errorf("q.GetOrdersPurchases: %w", err)
		}

		purchases, err := mapDBPurchasesToDomain(dbPurchases)
		if err != nil {
			return res, fmt.Errorf("mapDBPurchasesToDomain: %w", err)
		}
		purchasesByOrder := lo.GroupBy(purchases, func(p domain.Purchase) int64 { return p.OrderID })

		for _, dbOrder := range dbOrders {
			order, err := mapDBOrderToDomain(dbOrder)
			if err != nil {
				return res, fmt.Errorf("mapDBOrderToDomain: %w", err)
			}
			order.Purchases = purchasesByOrder[order.ID]
			res.orders = append(res.orders, order)
		}

		return res, nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("withTx: %w", err)
	}

	return res.orders, res.count, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (int64, error) {
	if len(order.Purchases) == 0 {
		return 0, errors.New("no purchases in order")
	}

	if order.Status == "" {
		order.Status = domain.OrderStatusDraft
	}

	orderID, err := withTx(ctx, r.dbtx, func(q *db.Queries) (int64, error) {
		arg := db.InsertOrderParams{
			UserID:     mapDomainOwnerToDB(order.Owner),
			Email:      order.Email,
			EthAddress: order.EthAddress,
			Status:     string(order.Status),
		}
		if order.ID != 0 {
			arg.ID = lo.ToPtr(order.ID)
		}

		orderID, _, _, err := q.InsertOrder(ctx, arg)
		if err != nil {
			return 0, fmt.Errorf("q.InsertOrder: %w", mapError(err))
		}

		if err := insertPurchases(ctx, q, orderID, order.Purchases); err != nil {
			return 0, fmt.Errorf("insertPurchases: %w", err)
		}

		if err := q.InsertOrderStatus(ctx, orderID, string(order.Status)); err != nil {
			return 0, fmt.Errorf("q.InsertOrderStatus: %w", err)
		}

		return orderID, nil
	})
	if err != nil {
		return 0, fmt.Errorf("withTx: %w", err)
	}

	return orderID, nil
}

func (r *orderRepository) UpdateOrder(ctx context.Context, order domain.Order, replacePurchases bool) (domain.Order, error) {
	var o domain.Order

	if order.ID == 0 {
		return o, errors.New("orderID is empty")
	}

	if _, err := domain.ToOrderStatus(string(order.Status)); err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", order.Status, err)
	}

	updated, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		row, err := q.UpdateOrder(ctx, db.UpdateOrderParams{
			ID:         order.ID,
			Email:      order.Email,
			EthAddress: order.EthAddress,
			Status:     string(order.Status),
		})
		if err != nil {
			return o, fmt.Errorf("q.UpdateOrder: %w", mapError(err))
		}

		if row.PreviousStatus != string(order.Status) {
			if err := q.InsertOrderStatus(ctx, order.ID, string(order.Status)); err != nil {
				return o, fmt.Errorf("q.InsertOrderStatus: %w", err)
			}
		}

		if replacePurchases {
			if _, err := q.DeleteOrderPurchases(ctx, order.ID); err != nil {
				return o, fmt.Errorf("q.DeleteOrderPurchases: %w", err)
			}

			if err := insertPurchases(ctx, q, order.ID, order.Purchases); err != nil {
				return o, fmt.Errorf("insertPurchases: %w", err)
			}
		}

		return getOrder(ctx, q, order.ID, domain.AllOrders())
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return updated, nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, orderID int64) error {
	if orderID == 0 {
		return errors.New("orderID is empty")
	}

	// purchases and status history cascade
	cmdTag, err := r.q.DeleteOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("q.DeleteOrder: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.DeleteOrder: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *orderRepository) GetStatusHistory(ctx context.Context, orderID int64) ([]domain.OrderStatusChange, error) {
	rows, err := r.q.ListOrderStatuses(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrderStatuses: %w", err)
	}

	history := make([]domain.OrderStatusChange, 0, len(rows))
	for _, row := range rows {
		status, err := domain.ToOrderStatus(row.Status)
		if err != nil {
			return nil, fmt.Errorf("domain.ToOrderStatus[%s]: %w", row.Status, err)
		}
		history = append(history, domain.OrderStatusChange{Status: status, CreatedAt: row.CreatedAt})
	}

	return history, nil
}

// TODO: batch the inserts with pgx.Batch once orders grow beyond a handful of purchases
func insertPurchases(ctx context.Context, q *db.Queries, orderID int64, purchases []domain.Purchase) error {
	for _, p := range purchases {
		arg := db.InsertPurchaseParams{
			OrderID:       orderID,
			GoodID:        p.Good.ID,
			PriceAmount:   p.Price.Amount,
			PriceCurrency: p.Price.Currency.String(),
		}
		if err := q.InsertPurchase(ctx, arg); err != nil {
			return fmt.Errorf("q.InsertPurchase: %w", mapError(err))
		}
	}

	return nil
}

func mapDomainOrderFilterToDB(filter domain.OrderFilter) db.SearchOrdersParams {
	statuses := lo.Map(filter.Statuses, func(s domain.OrderStatus, _ int) string { return string(s) })

	return db.SearchOrdersParams{
		Scope:    mapDomainScopeToDB(filter.Scope),
		Emails:   nilSliceIfEmpty(filter.Emails),
		Statuses: nilSliceIfEmpty(statuses),
		Limit:    int32(filter.Page.Limit),
		Offset:   int32(filter.Page.Offset),
	}
}

func mapDomainScopeToDB(scope domain.OrderScope) db.OrderScope {
	var s db.OrderScope

	switch owner := scope.Owner.(type) {
	case domain.RegisteredUser:
		s.UserID = lo.ToPtr(owner.ID)
	case domain.Anonymous:
		s.AnonymousOnly = true
	}

	if scope.RestrictIDs {
		s.RestrictIDs = true
		s.IDs = scope.IDs
	}

	return s
}

func mapDomainOwnerToDB(owner domain.Owner) *int64 {
	if id, ok := domain.UserID(owner); ok {
		return lo.ToPtr(id)
	}
	return nil
}

func mapDBOrderToDomain(row db.Order) (domain.Order, error) {
	status, err := domain.ToOrderStatus(row.Status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("domain.ToOrderStatus[%s]: %w", row.Status, err)
	}

	var owner domain.Owner = domain.Anonymous{}
	if row.UserID != nil {
		owner = domain.RegisteredUser{ID: *row.UserID}
	}

	return domain.Order{
		ID:         row.ID,
		Owner:      owner,
		Email:      row.Email,
		EthAddress: row.EthAddress,
		Status:     status,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

func mapDBPurchasesToDomain(rows []db.Purchase) ([]domain.Purchase, error) {
	var purchases []domain.Purchase

	for _, row := range rows {
		purchase, err := mapDBPurchaseToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapDBPurchaseToDomain: %w", err)
		}
		purchases = append(purchases, purchase)
	}

	return purchases, nil
}

func mapDBPurchaseToDomain(row db.Purchase) (domain.Purchase, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.Purchase{
		ID:        row.ID,
		OrderID:   row.OrderID,
		Good:      domain.Good{ID: row.GoodID, Name: row.GoodName},
		Price:     domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		CreatedAt: row.CreatedAt,
	}, nil
}
