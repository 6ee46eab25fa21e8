package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/port"
)

type sessionRepository struct {
	q *db.Queries
}

func NewSession(pool *pgxpool.Pool) port.SessionRepository {
	return &sessionRepository{
		q: db.New(pool),
	}
}

func (r *sessionRepository) LoadSession(ctx context.Context, id uuid.UUID) ([]byte, error) {
	row, err := r.q.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("q.GetSession: %w", mapError(err))
	}

	return row.Data, nil
}

func (r *sessionRepository) SaveSession(ctx context.Context, id uuid.UUID, data []byte, expiresAt time.Time) error {
	if id == uuid.Nil {
		return fmt.Errorf("session id is empty")
	}

	if err := r.q.UpsertSession(ctx, id, data, expiresAt); err != nil {
		return fmt.Errorf("q.UpsertSession: %w", err)
	}

	return nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := r.q.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("q.DeleteSession: %w", err)
	}

	return nil
}

func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	n, err := r.q.DeleteExpiredSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("q.DeleteExpiredSessions: %w", err)
	}

	return n, nil
}
