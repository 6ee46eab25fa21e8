package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const purchaseColumns = `p.id, p.order_id, p.good_id, g.name, p.price_amount, p.price_currency, p.created_at`

const purchaseFrom = `FROM purchases p
JOIN orders o ON o.id = p.order_id
JOIN goods g ON g.id = p.good_id`

const searchPurchases = `SELECT ` + purchaseColumns + `
` + purchaseFrom + `
WHERE ` + orderScopeWhere + `
ORDER BY p.id
LIMIT $5 OFFSET $6`

func (q *Queries) SearchPurchases(ctx context.Context, scope OrderScope, limit, offset int32) ([]Purchase, error) {
	rows, err := q.db.Query(ctx, searchPurchases,
		scope.AnonymousOnly, scope.UserID, scope.RestrictIDs, scope.IDs, limit, offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPurchase)
}

const countPurchases = `SELECT count(*)
FROM purchases p
JOIN orders o ON o.id = p.order_id
WHERE ` + orderScopeWhere

func (q *Queries) CountPurchases(ctx context.Context, scope OrderScope) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countPurchases,
		scope.AnonymousOnly, scope.UserID, scope.RestrictIDs, scope.IDs).Scan(&count)
	return count, err
}

const getPurchase = `SELECT ` + purchaseColumns + `
` + purchaseFrom + `
WHERE p.id = $5 AND ` + orderScopeWhere

func (q *Queries) GetPurchase(ctx context.Context, id int64, scope OrderScope) (Purchase, error) {
	return scanPurchase(q.db.QueryRow(ctx, getPurchase,
		scope.AnonymousOnly, scope.UserID, scope.RestrictIDs, scope.IDs, id))
}

const getOrdersPurchases = `SELECT ` + purchaseColumns + `
` + purchaseFrom + `
WHERE p.order_id = ANY($1::bigint[])
ORDER BY p.id`

func (q *Queries) GetOrdersPurchases(ctx context.Context, orderIDs []int64) ([]Purchase, error) {
	rows, err := q.db.Query(ctx, getOrdersPurchases, orderIDs)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPurchase)
}

type InsertPurchaseParams struct {
	OrderID       int64
	GoodID        int64
	PriceAmount   decimal.Decimal
	PriceCurrency string
}

const insertPurchase = `INSERT INTO purchases (order_id, good_id, price_amount, price_currency)
VALUES ($1, $2, $3, $4)`

func (q *Queries) InsertPurchase(ctx context.Context, arg InsertPurchaseParams) error {
	_, err := q.db.Exec(ctx, insertPurchase, arg.OrderID, arg.GoodID, arg.PriceAmount, arg.PriceCurrency)
	return err
}

const deleteOrderPurchases = `DELETE FROM purchases WHERE order_id = $1`

func (q *Queries) DeleteOrderPurchases(ctx context.Context, orderID int64) (pgconn.CommandTag, error) {
	return q.db.Exec(ctx, deleteOrderPurchases, orderID)
}

func scanPurchase(row scanner) (Purchase, error) {
	var p Purchase
	err := row.Scan(&p.ID, &p.OrderID, &p.GoodID, &p.GoodName, &p.PriceAmount, &p.PriceCurrency, &p.CreatedAt)
	return p, err
}
