package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type GoodRepository interface {
	ListGoods(ctx context.Context, page domain.Page) ([]domain.Good, int, error)
	GetGood(ctx context.Context, goodID int64) (domain.Good, error)
	InsertGood(ctx context.Context, good domain.Good) (int64, error)
	UpdateGood(ctx context.Context, good domain.Good) error
	DeleteGood(ctx context.Context, goodID int64) error
}

type OfferRepository interface {
	ListOffers(ctx context.Context, filter domain.OfferFilter) ([]domain.Offer, int, error)
	GetOffer(ctx context.Context, offerID int64, enabledOnly bool) (domain.Offer, error)
	// GetOffers returns the offers found among ids, ordered by id. Missing ids are skipped.
	GetOffers(ctx context.Context, offerIDs []int64, enabledOnly bool) ([]domain.Offer, error)
	InsertOffer(ctx context.Context, offer domain.Offer) (int64, error)
	UpdateOffer(ctx context.Context, offer domain.Offer) error
	DeleteOffer(ctx context.Context, offerID int64) error
}

type SettingRepository interface {
	ListSettings(ctx context.Context, page domain.Page) ([]domain.Setting, int, error)
	GetSetting(ctx context.Context, name string) (domain.Setting, error)
	InsertSetting(ctx context.Context, setting domain.Setting) error
	UpdateSetting(ctx context.Context, name string, setting domain.Setting) error
	DeleteSetting(ctx context.Context, name string) error
}
