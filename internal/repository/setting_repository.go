package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

type settingRepository struct {
	q *db.Queries
}

func NewSetting(pool *pgxpool.Pool) port.SettingRepository {
	return &settingRepository{
		q: db.New(pool),
	}
}

func (r *settingRepository) ListSettings(ctx context.Context, page domain.Page) ([]domain.Setting, int, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, fmt.Errorf("page.Validate: %w", err)
	}

	count, err := r.q.CountSettings(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("q.CountSettings: %w", err)
	}

	rows, err := r.q.ListSettings(ctx, int32(page.Limit), int32(page.Offset))
	if err != nil {
		return nil, 0, fmt.Errorf("q.ListSettings: %w", err)
	}

	return lo.Map(rows, func(s db.Setting, _ int) domain.Setting { return domain.Setting(s) }), int(count), nil
}

func (r *settingRepository) GetSetting(ctx context.Context, name string) (domain.Setting, error) {
	row, err := r.q.GetSetting(ctx, name)
	if err != nil {
		return domain.Setting{}, fmt.Errorf("q.GetSetting: %w", mapError(err))
	}

	return domain.Setting(row), nil
}

func (r *settingRepository) InsertSetting(ctx context.Context, setting domain.Setting) error {
	if err := r.q.InsertSetting(ctx, db.Setting(setting)); err != nil {
		return fmt.Errorf("q.InsertSetting: %w", mapError(err))
	}

	return nil
}

func (r *settingRepository) UpdateSetting(ctx context.Context, name string, setting domain.Setting) error {
	cmdTag, err := r.q.UpdateSetting(ctx, name, db.Setting(setting))
	if err != nil {
		return fmt.Errorf("q.UpdateSetting: %w", mapError(err))
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateSetting: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *settingRepository) DeleteSetting(ctx context.Context, name string) error {
	cmdTag, err := r.q.DeleteSetting(ctx, name)
	if err != nil {
		return fmt.Errorf("q.DeleteSetting: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.DeleteSetting: %w", domain.ErrNotFound)
	}

	return nil
}
