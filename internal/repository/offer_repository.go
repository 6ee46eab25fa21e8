package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/text/currency"
)

type offerRepository struct {
	q *db.Queries
}

func NewOffer(pool *pgxpool.Pool) port.OfferRepository {
	return &offerRepository{
		q: db.New(pool),
	}
}

func (r *offerRepository) ListOffers(ctx context.Context, filter domain.OfferFilter) ([]domain.Offer, int, error) {
	if err := filter.Page.Validate(); err != nil {
		return nil, 0, fmt.Errorf("filter.Page.Validate: %w", err)
	}

	count, err := r.q.CountOffers(ctx, filter.EnabledOnly)
	if err != nil {
		return nil, 0, fmt.Errorf("q.CountOffers: %w", err)
	}

	rows, err := r.q.ListOffers(ctx, filter.EnabledOnly, int32(filter.Page.Limit), int32(filter.Page.Offset))
	if err != nil {
		return nil, 0, fmt.Errorf("q.ListOffers: %w", err)
	}

	offers, err := mapDBOffersToDomain(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("mapDBOffersToDomain: %w", err)
	}

	return offers, int(count), nil
}

func (r *offerRepository) GetOffer(ctx context.Context, offerID int64, enabledOnly bool) (domain.Offer, error) {
	row, err := r.q.GetOffer(ctx, offerID, enabledOnly)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("q.GetOffer: %w", mapError(err))
	}

	return mapDBOfferToDomain(row)
}

func (r *offerRepository) GetOffers(ctx context.Context, offerIDs []int64, enabledOnly bool) ([]domain.Offer, error) {
	if len(offerIDs) == 0 {
		return nil, nil
	}

	rows, err := r.q.GetOffersByIDs(ctx, offerIDs, enabledOnly)
	if err != nil {
		return nil, fmt.Errorf("q.GetOffersByIDs: %w", err)
	}

	return mapDBOffersToDomain(rows)
}

func (r *offerRepository) InsertOffer(ctx context.Context, offer domain.Offer) (int64, error) {
	id, err := r.q.InsertOffer(ctx, db.InsertOfferParams{
		GoodID:        offer.Good.ID,
		PriceAmount:   offer.Price.Amount,
		PriceCurrency: offer.Price.Currency.String(),
		Enabled:       offer.Enabled,
	})
	if err != nil {
		return 0, fmt.Errorf("q.InsertOffer: %w", mapError(err))
	}

	return id, nil
}

func (r *offerRepository) UpdateOffer(ctx context.Context, offer domain.Offer) error {
	cmdTag, err := r.q.UpdateOffer(ctx, db.UpdateOfferParams{
		ID:            offer.ID,
		GoodID:        offer.Good.ID,
		PriceAmount:   offer.Price.Amount,
		PriceCurrency: offer.Price.Currency.String(),
		Enabled:       offer.Enabled,
	})
	if err != nil {
		return fmt.Errorf("q.UpdateOffer: %w", mapError(err))
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateOffer: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *offerRepository) DeleteOffer(ctx context.Context, offerID int64) error {
	cmdTag, err := r.q.DeleteOffer(ctx, offerID)
	if err != nil {
		return fmt.Errorf("q.DeleteOffer: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.DeleteOffer: %w", domain.ErrNotFound)
	}

	return nil
}

func mapDBOffersToDomain(rows []db.Offer) ([]domain.Offer, error) {
	offers := make([]domain.Offer, 0, len(rows))

	for _, row := range rows {
		offer, err := mapDBOfferToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapDBOfferToDomain: %w", err)
		}
		offers = append(offers, offer)
	}

	return offers, nil
}

func mapDBOfferToDomain(row db.Offer) (domain.Offer, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.Offer{
		ID:      row.ID,
		Good:    domain.Good{ID: row.GoodID, Name: row.GoodName},
		Price:   domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Enabled: row.Enabled,
	}, nil
}
