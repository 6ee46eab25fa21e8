package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// orderScopeWhere binds OrderScope to $1..$4 against orders aliased as o.
const orderScopeWhere = `($1::bool IS FALSE OR o.user_id IS NULL)
AND ($2::bigint IS NULL OR o.user_id = $2)
AND ($3::bool IS FALSE OR o.id = ANY($4::bigint[]))`

const orderColumns = `o.id, o.user_id, o.email, o.eth_address, o.status, o.created_at, o.updated_at`

type SearchOrdersParams struct {
	Scope    OrderScope
	Emails   []string
	Statuses []string
	Limit    int32
	Offset   int32
}

const searchOrdersWhere = orderScopeWhere + `
AND ($5::text[] IS NULL OR o.email = ANY($5))
AND ($6::text[] IS NULL OR o.status = ANY($6))`

const searchOrders = `SELECT ` + orderColumns + `
FROM orders o
WHERE ` + searchOrdersWhere + `
ORDER BY o.id
LIMIT $7 OFFSET $8`

func (q *Queries) SearchOrders(ctx context.Context, arg SearchOrdersParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, searchOrders,
		arg.Scope.AnonymousOnly, arg.Scope.UserID, arg.Scope.RestrictIDs, arg.Scope.IDs,
		arg.Emails, arg.Statuses, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOrder)
}

const countOrders = `SELECT count(*) FROM orders o WHERE ` + searchOrdersWhere

func (q *Queries) CountOrders(ctx context.Context, arg SearchOrdersParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countOrders,
		arg.Scope.AnonymousOnly, arg.Scope.UserID, arg.Scope.RestrictIDs, arg.Scope.IDs,
		arg.Emails, arg.Statuses).Scan(&count)
	return count, err
}

const getOrder = `SELECT ` + orderColumns + `
FROM orders o
WHERE o.id = $5 AND ` + orderScopeWhere

func (q *Queries) GetOrder(ctx context.Context, id int64, scope OrderScope) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, getOrder,
		scope.AnonymousOnly, scope.UserID, scope.RestrictIDs, scope.IDs, id))
}

type InsertOrderParams struct {
	// ID is drawn by the caller when set, otherwise taken from the sequence.
	ID         *int64
	UserID     *int64
	Email      string
	EthAddress string
	Status     string
}

const insertOrder = `INSERT INTO orders (id, user_id, email, eth_address, status)
VALUES (COALESCE($1::bigint, nextval(pg_get_serial_sequence('orders', 'id'))), $2, $3, $4, $5)
RETURNING id, created_at, updated_at`

func (q *Queries) InsertOrder(ctx context.Context, arg InsertOrderParams) (int64, time.Time, time.Time, error) {
	var (
		id                   int64
		createdAt, updatedAt time.Time
	)
	err := q.db.QueryRow(ctx, insertOrder, arg.ID, arg.UserID, arg.Email, arg.EthAddress, arg.Status).
		Scan(&id, &createdAt, &updatedAt)
	return id, createdAt, updatedAt, err
}

type UpdateOrderParams struct {
	ID         int64
	Email      string
	EthAddress string
	Status     string
}

type UpdateOrderRow struct {
	PreviousStatus string
	UpdatedAt      time.Time
}

const updateOrder = `WITH prev AS (SELECT status FROM orders WHERE id = $1)
UPDATE orders o
SET email = $2, eth_address = $3, status = $4, updated_at = now()
FROM prev
WHERE o.id = $1
RETURNING prev.status, o.updated_at`

func (q *Queries) UpdateOrder(ctx context.Context, arg UpdateOrderParams) (UpdateOrderRow, error) {
	var row UpdateOrderRow
	err := q.db.QueryRow(ctx, updateOrder, arg.ID, arg.Email, arg.EthAddress, arg.Status).
		Scan(&row.PreviousStatus, &row.UpdatedAt)
	return row, err
}

const deleteOrder = `DELETE FROM orders WHERE id = $1`

func (q *Queries) DeleteOrder(ctx context.Context, id int64) (pgconn.CommandTag, error) {
	return q.db.Exec(ctx, deleteOrder, id)
}

const insertOrderStatus = `INSERT INTO order_statuses (order_id, status) VALUES ($1, $2)`

func (q *Queries) InsertOrderStatus(ctx context.Context, orderID int64, status string) error {
	_, err := q.db.Exec(ctx, insertOrderStatus, orderID, status)
	return err
}

const listOrderStatuses = `SELECT order_id, status, created_at
FROM order_statuses
WHERE order_id = $1
ORDER BY created_at`

func (q *Queries) ListOrderStatuses(ctx context.Context, orderID int64) ([]OrderStatus, error) {
	rows, err := q.db.Query(ctx, listOrderStatuses, orderID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row scanner) (OrderStatus, error) {
		var s OrderStatus
		err := row.Scan(&s.OrderID, &s.Status, &s.CreatedAt)
		return s, err
	})
}

func scanOrder(row scanner) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.Email, &o.EthAddress, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}
