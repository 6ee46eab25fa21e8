package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type GoodPatch struct {
	Name *string
}

type Goods struct {
	goods  port.GoodRepository
	policy *access.Policy
}

func NewGoods(goods port.GoodRepository, policies access.Policies) *Goods {
	return &Goods{
		goods:  goods,
		policy: policies.Goods,
	}
}

func (g *Goods) List(ctx context.Context, page domain.Page) ([]domain.Good, int, error) {
	if _, err := authorize(ctx, g.policy, access.ActionList); err != nil {
		return nil, 0, err
	}

	goods, count, err := g.goods.ListGoods(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("goods.ListGoods: %w", err)
	}

	return goods, count, nil
}

func (g *Goods) Get(ctx context.Context, goodID int64) (domain.Good, error) {
	if _, err := authorize(ctx, g.policy, access.ActionRetrieve); err != nil {
		return domain.Good{}, err
	}

	good, err := g.goods.GetGood(ctx, goodID)
	if err != nil {
		return domain.Good{}, fmt.Errorf("goods.GetGood: %w", err)
	}

	return good, nil
}

func (g *Goods) Create(ctx context.Context, name string) (domain.Good, error) {
	if _, err := authorize(ctx, g.policy, access.ActionCreate); err != nil {
		return domain.Good{}, err
	}

	good := domain.Good{Name: strings.TrimSpace(name)}
	if err := validateGood(good); err != nil {
		return domain.Good{}, err
	}

	id, err := g.goods.InsertGood(ctx, good)
	if err != nil {
		return domain.Good{}, fmt.Errorf("goods.InsertGood: %w", uniqueOn(err, "name", msgGoodExists))
	}
	good.ID = id

	return good, nil
}

// Update replaces every writable field, PartialUpdate only the ones set in patch.
func (g *Goods) Update(ctx context.Context, goodID int64, name string) (domain.Good, error) {
	return g.update(ctx, access.ActionUpdate, goodID, GoodPatch{Name: &name})
}

func (g *Goods) PartialUpdate(ctx context.Context, goodID int64, patch GoodPatch) (domain.Good, error) {
	return g.update(ctx, access.ActionPartialUpdate, goodID, patch)
}

func (g *Goods) update(ctx context.Context, action access.Action, goodID int64, patch GoodPatch) (domain.Good, error) {
	if _, err := authorize(ctx, g.policy, action); err != nil {
		return domain.Good{}, err
	}

	good, err := g.goods.GetGood(ctx, goodID)
	if err != nil {
		return domain.Good{}, fmt.Errorf("goods.GetGood: %w", err)
	}

	if patch.Name != nil {
		good.Name = strings.TrimSpace(*patch.Name)
	}

	if err := validateGood(good); err != nil {
		return domain.Good{}, err
	}

	if err := g.goods.UpdateGood(ctx, good); err != nil {
		return domain.Good{}, fmt.Errorf("goods.UpdateGood: %w", uniqueOn(err, "name", msgGoodExists))
	}

	return good, nil
}

// Destroy cascades into offers and purchase history, so it is switched off by default.
func (g *Goods) Destroy(ctx context.Context, goodID int64) error {
	if _, err := authorize(ctx, g.policy, access.ActionDestroy); err != nil {
		return err
	}

	if err := g.goods.DeleteGood(ctx, goodID); err != nil {
		return fmt.Errorf("goods.DeleteGood: %w", err)
	}

	return nil
}

const msgGoodExists = "good with this name already exists."

func validateGood(good domain.Good) error {
	if good.Name == "" {
		return domain.NewValidationError("name", msgBlank)
	}

	if len(good.Name) > maxNameLength {
		return domain.NewValidationError("name", fmt.Sprintf(msgTooLong, maxNameLength))
	}

	return nil
}

const (
	maxNameLength = 255
	msgTooLong    = "Ensure this field has no more than %d characters."
)

// Authorize answers whether the subject may run action at all. Handlers call
// it before reading a request body.
func (g *Goods) Authorize(ctx context.Context, action access.Action) error {
	_, err := authorize(ctx, g.policy, action)
	return err
}

// Check is Authorize plus the lookup of the addressed good.
func (g *Goods) Check(ctx context.Context, action access.Action, goodID int64) error {
	if err := g.Authorize(ctx, action); err != nil {
		return err
	}

	if _, err := g.goods.GetGood(ctx, goodID); err != nil {
		return fmt.Errorf("goods.GetGood: %w", err)
	}

	return nil
}
