package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

type goodRepository struct {
	q *db.Queries
}

func NewGood(pool *pgxpool.Pool) port.GoodRepository {
	return &goodRepository{
		q: db.New(pool),
	}
}

func (r *goodRepository) ListGoods(ctx context.Context, page domain.Page) ([]domain.Good, int, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, fmt.Errorf("page.Validate: %w", err)
	}

	count, err := r.q.CountGoods(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("q.CountGoods: %w", err)
	}

	rows, err := r.q.ListGoods(ctx, int32(page.Limit), int32(page.Offset))
	if err != nil {
		return nil, 0, fmt.Errorf("q.ListGoods: %w", err)
	}

	return lo.Map(rows, func(g db.Good, _ int) domain.Good { return mapDBGoodToDomain(g) }), int(count), nil
}

func (r *goodRepository) GetGood(ctx context.Context, goodID int64) (domain.Good, error) {
	row, err := r.q.GetGood(ctx, goodID)
	if err != nil {
		return domain.Good{}, fmt.Errorf("q.GetGood: %w", mapError(err))
	}

	return mapDBGoodToDomain(row), nil
}

func (r *goodRepository) InsertGood(ctx context.Context, good domain.Good) (int64, error) {
	if good.Name == "" {
		return 0, errors.New("name is empty")
	}

	id, err := r.q.InsertGood(ctx, good.Name)
	if err != nil {
		return 0, fmt.Errorf("q.InsertGood: %w", mapError(err))
	}

	return id, nil
}

func (r *goodRepository) UpdateGood(ctx context.Context, good domain.Good) error {
	if good.Name == "" {
		return errors.New("name is empty")
	}

	cmdTag, err := r.q.UpdateGood(ctx, good.ID, good.Name)
	if err != nil {
		return fmt.Errorf("q.UpdateGood: %w", mapError(err))
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateGood: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *goodRepository) DeleteGood(ctx context.Context, goodID int64) error {
	cmdTag, err := r.q.DeleteGood(ctx, goodID)
	if err != nil {
		return fmt.Errorf("q.DeleteGood: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.DeleteGood: %w", domain.ErrNotFound)
	}

	return nil
}

func mapDBGoodToDomain(g db.Good) domain.Good {
	return domain.Good{ID: g.ID, Name: g.Name}
}
