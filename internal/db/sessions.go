package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const getSession = `SELECT id, data, expires_at FROM sessions WHERE id = $1 AND expires_at > now()`

func (q *Queries) GetSession(ctx context.Context, id uuid.UUID) (Session, error) {
	var s Session
	err := q.db.QueryRow(ctx, getSession, id).Scan(&s.ID, &s.Data, &s.ExpiresAt)
	return s, err
}

// upsertSession keeps the order ids of a live stored row: the merged list holds
// the stored ids first, then the new ones, without duplicates.
const upsertSession = `INSERT INTO sessions (id, data, expires_at) VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET
    data = EXCLUDED.data || jsonb_build_object('order_ids', (
        SELECT COALESCE(jsonb_agg(ids.oid ORDER BY ids.pos), '[]'::jsonb)
        FROM (
            SELECT e.oid, min(e.pos) AS pos
            FROM (
                SELECT value AS oid, ordinality AS pos
                FROM jsonb_array_elements(CASE
                    WHEN sessions.expires_at > now() THEN COALESCE(sessions.data->'order_ids', '[]'::jsonb)
                    ELSE '[]'::jsonb END) WITH ORDINALITY
                UNION ALL
                SELECT value, (1::bigint << 32) + ordinality
                FROM jsonb_array_elements(COALESCE(EXCLUDED.data->'order_ids', '[]'::jsonb)) WITH ORDINALITY
            ) AS e
            GROUP BY e.oid
        ) AS ids)),
    expires_at = EXCLUDED.expires_at`

func (q *Queries) UpsertSession(ctx context.Context, id uuid.UUID, data []byte, expiresAt time.Time) error {
	_, err := q.db.Exec(ctx, upsertSession, id, data, expiresAt)
	return err
}

const deleteSession = `DELETE FROM sessions WHERE id = $1`

func (q *Queries) DeleteSession(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteSession, id)
	return err
}

const deleteExpiredSessions = `DELETE FROM sessions WHERE expires_at <= now()`

func (q *Queries) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteExpiredSessions)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
