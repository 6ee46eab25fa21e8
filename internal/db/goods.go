package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

const listGoods = `SELECT id, name FROM goods ORDER BY id LIMIT $1 OFFSET $2`

func (q *Queries) ListGoods(ctx context.Context, limit, offset int32) ([]Good, error) {
	rows, err := q.db.Query(ctx, listGoods, limit, offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanGood)
}

const countGoods = `SELECT count(*) FROM goods`

func (q *Queries) CountGoods(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countGoods).Scan(&count)
	return count, err
}

const getGood = `SELECT id, name FROM goods WHERE id = $1`

func (q *Queries) GetGood(ctx context.Context, id int64) (Good, error) {
	return scanGood(q.db.QueryRow(ctx, getGood, id))
}

const insertGood = `INSERT INTO goods (name) VALUES ($1) RETURNING id`

func (q *Queries) InsertGood(ctx context.Context, name string) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, insertGood, name).Scan(&id)
	return id, err
}

const updateGood = `UPDATE goods SET name = $2 WHERE id = $1`

func (q *Queries) UpdateGood(ctx context.Context, id int64, name string) (pgconn.CommandTag, error) {
	return q.db.Exec(ctx, updateGood, id, name)
}

const deleteGood = `DELETE FROM goods WHERE id = $1`

func (q *Queries) DeleteGood(ctx context.Context, id int64) (pgconn.CommandTag, error) {
	return q.db.Exec(ctx, deleteGood, id)
}

func scanGood(row scanner) (Good, error) {
	var g Good
	err := row.Scan(&g.ID, &g.Name)
	return g, err
}
