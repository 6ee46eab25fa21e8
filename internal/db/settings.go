package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

const listSettings = `SELECT name, value FROM settings ORDER BY name LIMIT $1 OFFSET $2`

func (q *Queries) ListSettings(ctx context.Context, limit, offset int32) ([]Setting, error) {
	rows, err := q.db.Query(ctx, listSettings, limit, offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSetting)
}

const countSettings = `SELECT count(*) FROM settings`

func (q *Queries) CountSettings(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countSettings).Scan(&count)
	return count, err
}

const getSetting = `SELECT name, value FROM settings WHERE name = $1`

func (q *Queries) GetSetting(ctx context.Context, name string) (Setting, error) {
	return scanSetting(q.db.QueryRow(ctx, getSetting, name))
}

const insertSetting = `INSERT INTO settings (name, value) VALUES ($1, $2)`

func (q *Queries) InsertSetting(ctx context.Context, arg Setting) error {
	_, err := q.db.Exec(ctx, insertSetting, arg.Name, arg.Value)
	return err
}

const updateSetting = `UPDATE settings SET name = $2, value = $3 WHERE name = $1`

func (q *Queries) UpdateSetting(ctx context.Context, name string, arg Setting) (pgconn.CommandTag, error) {
	return q.db.Exec(ctx, updateSetting, name, arg.Name, arg.Value)
}

const deleteSetting = `DELETE FROM settings WHERE name = $1`

func (q *Queries) DeleteSetting(ctx context.Context, name string) (pgconn.CommandTag, error) {
	return q.db.Exec(ctx, deleteSetting, name)
}

func scanSetting(row scanner) (Setting, error) {
	var s Setting
	err := row.Scan(&s.Name, &s.Value)
	return s, err
}
