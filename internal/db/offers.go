package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const offerColumns = `o.id, o.good_id, g.name, o.price_amount, o.price_currency, o.enabled`

const listOffers = `SELECT ` + offerColumns + `
FROM offers o JOIN goods g ON g.id = o.good_id
WHERE ($1::bool IS FALSE OR o.enabled)
ORDER BY o.id
LIMIT $2 OFFSET $3`

func (q *Queries) ListOffers(ctx context.Context, enabledOnly bool, limit, offset int32) ([]Offer, error) {
	rows, err := q.db.Query(ctx, listOffers, enabledOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOffer)
}

const countOffers = `SELECT count(*) FROM offers o WHERE ($1::bool IS FALSE OR o.enabled)`

func (q *Queries) CountOffers(ctx context.Context, enabledOnly bool) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countOffers, enabledOnly).Scan(&count)
	return count, err
}

const getOffer = `SELECT ` + offerColumns + `
FROM offers o JOIN goods g ON g.id = o.good_id
WHERE o.id = $1 AND ($2::bool IS FALSE OR o.enabled)`

func (q *Queries) GetOffer(ctx context.Context, id int64, enabledOnly bool) (Offer, error) {
	return scanOffer(q.db.QueryRow(ctx, getOffer, id, enabledOnly))
}

const getOffersByIDs = `SELECT ` + offerColumns + `
FROM offers o JOIN goods g ON g.id = o.good_id
WHERE o.id = ANY($1::bigint[]) AND ($2::bool IS FALSE OR o.enabled)
ORDER BY o.id`

func (q *Queries) GetOffersByIDs(ctx context.Context, ids []int64, enabledOnly bool) ([]Offer, error) {
	rows, err := q.db.Query(ctx, getOffersByIDs, ids, enabledOnly)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOffer)
}

type InsertOfferParams struct {
	GoodID        int64
	PriceAmount   decimal.Decimal
	PriceCurrency string
	Enabled       bool
}

const insertOffer = `INSERT INTO offers (good_id, price_amount, price_currency, enabled)
VALUES ($1, $2, $3, $4)
RETURNING id`

func (q *Queries) InsertOffer(ctx context.Context, arg InsertOfferParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, insertOffer, arg.GoodID, arg.PriceAmount, arg.PriceCurrency, arg.Enabled).Scan(&id)
	return id, err
}

type UpdateOfferParams struct {
	ID            int64
	GoodID        int64
	PriceAmount   decimal.Decimal
	PriceCurrency string
	Enabled       bool
}

const updateOffer = `UPDATE offers
SET good_id = $2, price_amount = $3, price_currency = $4, enabled = $5
WHERE id = $1`

func (q *Queries) UpdateOffer(ctx context.Context, arg UpdateOfferParams) (pgconn.CommandTag, error) {
	return q.db.Exec(ctx, updateOffer, arg.ID, arg.GoodID, arg.PriceAmount, arg.PriceCurrency, arg.Enabled)
}

const deleteOffer = `DELETE FROM offers WHERE id = $1`

func (q *Queries) DeleteOffer(ctx context.Context, id int64) (pgconn.CommandTag, error) {
	return q.db.Exec(ctx, deleteOffer, id)
}

func scanOffer(row scanner) (Offer, error) {
	var o Offer
	err := row.Scan(&o.ID, &o.GoodID, &o.GoodName, &o.PriceAmount, &o.PriceCurrency, &o.Enabled)
	return o, err
}
