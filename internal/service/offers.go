package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const msgOfferExists = "The fields good, price must make a unique set."

type OfferInput struct {
	GoodID  int64
	Price   decimal.Decimal
	Enabled *bool
}

type OfferPatch struct {
	GoodID  *int64
	Price   *decimal.Decimal
	Enabled *bool
}

type Offers struct {
	offers   port.OfferRepository
	goods    port.GoodRepository
	policy   *access.Policy
	currency currency.Unit
}

// NewOffers prices new offers in unit.
func NewOffers(offers port.OfferRepository, goods port.GoodRepository, policies access.Policies, unit currency.Unit) *Offers {
	return &Offers{
		offers:   offers,
		goods:    goods,
		policy:   policies.Offers,
		currency: unit,
	}
}

func (o *Offers) List(ctx context.Context, page domain.Page) ([]domain.Offer, int, error) {
	s, err := authorize(ctx, o.policy, access.ActionList)
	if err != nil {
		return nil, 0, err
	}

	enabledOnly, err := access.OfferScope(ctx, s)
	if err != nil {
		return nil, 0, fmt.Errorf("access.OfferScope: %w", err)
	}

	offers, count, err := o.offers.ListOffers(ctx, domain.OfferFilter{EnabledOnly: enabledOnly, Page: page})
	if err != nil {
		return nil, 0, fmt.Errorf("offers.ListOffers: %w", err)
	}

	return offers, count, nil
}

func (o *Offers) Get(ctx context.Context, offerID int64) (domain.Offer, error) {
	return o.get(ctx, access.ActionRetrieve, offerID)
}

func (o *Offers) get(ctx context.Context, action access.Action, offerID int64) (domain.Offer, error) {
	s, err := authorize(ctx, o.policy, action)
	if err != nil {
		return domain.Offer{}, err
	}

	enabledOnly, err := access.OfferScope(ctx, s)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("access.OfferScope: %w", err)
	}

	offer, err := o.offers.GetOffer(ctx, offerID, enabledOnly)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("offers.GetOffer: %w", err)
	}

	return offer, nil
}

func (o *Offers) Create(ctx context.Context, in OfferInput) (domain.Offer, error) {
	if _, err := authorize(ctx, o.policy, access.ActionCreate); err != nil {
		return domain.Offer{}, err
	}

	offer := domain.Offer{
		Price:   domain.Money{Amount: in.Price, Currency: o.currency},
		Enabled: in.Enabled == nil || *in.Enabled,
	}

	good, err := o.resolveGood(ctx, in.GoodID)
	if err != nil {
		return domain.Offer{}, err
	}
	offer.Good = good

	if err := validateOffer(offer); err != nil {
		return domain.Offer{}, err
	}

	id, err := o.offers.InsertOffer(ctx, offer)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// good deleted between lookup and insert
			return domain.Offer{}, domain.NewValidationError("good_id", fmt.Sprintf(msgInvalidGood, offer.Good.ID))
		}
		return domain.Offer{}, fmt.Errorf("offers.InsertOffer: %w", uniqueOn(err, domain.NonFieldErrors, msgOfferExists))
	}
	offer.ID = id

	return offer, nil
}

func (o *Offers) Update(ctx context.Context, offerID int64, in OfferInput) (domain.Offer, error) {
	patch := OfferPatch{
		GoodID:  &in.GoodID,
		Price:   &in.Price,
		Enabled: in.Enabled,
	}
	return o.update(ctx, access.ActionUpdate, offerID, patch)
}

func (o *Offers) PartialUpdate(ctx context.Context, offerID int64, patch OfferPatch) (domain.Offer, error) {
	return o.update(ctx, access.ActionPartialUpdate, offerID, patch)
}

func (o *Offers) update(ctx context.Context, action access.Action, offerID int64, patch OfferPatch) (domain.Offer, error) {
	offer, err := o.get(ctx, action, offerID)
	if err != nil {
		return domain.Offer{}, err
	}

	if patch.GoodID != nil && *patch.GoodID != offer.Good.ID {
		good, err := o.resolveGood(ctx, *patch.GoodID)
		if err != nil {
			return domain.Offer{}, err
		}
		offer.Good = good
	}

	if patch.Price != nil {
		offer.Price = domain.Money{Amount: *patch.Price, Currency: o.currency}
	}

	if patch.Enabled != nil {
		offer.Enabled = *patch.Enabled
	}

	if err := validateOffer(offer); err != nil {
		return domain.Offer{}, err
	}

	if err := o.offers.UpdateOffer(ctx, offer); err != nil {
		return domain.Offer{}, fmt.Errorf("offers.UpdateOffer: %w", uniqueOn(err, domain.NonFieldErrors, msgOfferExists))
	}

	return offer, nil
}

func (o *Offers) Destroy(ctx context.Context, offerID int64) error {
	if _, err := o.get(ctx, access.ActionDestroy, offerID); err != nil {
		return err
	}

	if err := o.offers.DeleteOffer(ctx, offerID); err != nil {
		return fmt.Errorf("offers.DeleteOffer: %w", err)
	}

	return nil
}

func (o *Offers) resolveGood(ctx context.Context, goodID int64) (domain.Good, error) {
	good, err := o.goods.GetGood(ctx, goodID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Good{}, domain.NewValidationError("good_id", fmt.Sprintf(msgInvalidGood, goodID))
	}
	if err != nil {
		return domain.Good{}, fmt.Errorf("goods.GetGood: %w", err)
	}

	return good, nil
}

func validateOffer(offer domain.Offer) error {
	if msg := domain.ValidatePrice(offer.Price.Amount); msg != "" {
		return domain.NewValidationError("price", msg)
	}
	return nil
}

func (o *Offers) Authorize(ctx context.Context, action access.Action) error {
	_, err := authorize(ctx, o.policy, action)
	return err
}

// Check fails with domain.ErrNotFound for offers outside the subject's scope.
func (o *Offers) Check(ctx context.Context, action access.Action, offerID int64) error {
	_, err := o.get(ctx, action, offerID)
	return err
}
