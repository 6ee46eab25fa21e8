package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	demoGoods  = 16
	demoOffers = 9
)

var ErrDemoPresent = errors.New("store already has goods")

// Seeder prepares a store outside of any request, so nothing here is authorized.
type Seeder struct {
	users    port.UserRepository
	goods    port.GoodRepository
	offers   port.OfferRepository
	orders   port.OrderRepository
	auth     *Auth
	currency currency.Unit
}

func NewSeeder(
	users port.UserRepository,
	goods port.GoodRepository,
	offers port.OfferRepository,
	orders port.OrderRepository,
	unit currency.Unit,
) *Seeder {
	return &Seeder{
		users:    users,
		goods:    goods,
		offers:   offers,
		orders:   orders,
		auth:     NewAuth(users),
		currency: unit,
	}
}

// Seed creates the default groups with their permissions. It is idempotent.
func (s *Seeder) Seed(ctx context.Context) error {
	for group, perms := range domain.DefaultGroups() {
		if err := s.users.EnsureGroup(ctx, group, perms); err != nil {
			return fmt.Errorf("users.EnsureGroup[%s]: %w", group, err)
		}
	}

	return nil
}

// Demo fills an empty store: users admin, moderator and buyer (passwords equal
// to usernames), goods, offers for the first goods and one order per status for
// buyer and moderator.
func (s *Seeder) Demo(ctx context.Context) error {
	if err := s.Seed(ctx); err != nil {
		return fmt.Errorf("Seed: %w", err)
	}

	_, count, err := s.goods.ListGoods(ctx, domain.Page{Limit: 1})
	if err != nil {
		return fmt.Errorf("goods.ListGoods: %w", err)
	}
	if count > 0 {
		return ErrDemoPresent
	}

	users, err := s.demoUsers(ctx)
	if err != nil {
		return fmt.Errorf("demoUsers: %w", err)
	}

	goods := make([]domain.Good, 0, demoGoods)
	for idx := 1; idx <= demoGoods; idx++ {
		good := domain.Good{Name: fmt.Sprintf("good %d", idx)}
		if good.ID, err = s.goods.InsertGood(ctx, good); err != nil {
			return fmt.Errorf("goods.InsertGood: %w", err)
		}
		goods = append(goods, good)
	}

	for idx := 1; idx <= demoOffers; idx++ {
		offer := domain.Offer{
			Good:    goods[idx-1],
			Price:   s.money(idx),
			Enabled: true,
		}
		if _, err := s.offers.InsertOffer(ctx, offer); err != nil {
			return fmt.Errorf("offers.InsertOffer: %w", err)
		}
	}

	statuses := []domain.OrderStatus{
		domain.OrderStatusDraft, domain.OrderStatusProcessing, domain.OrderStatusCanceled, domain.OrderStatusFinished,
	}

	idx := 0
	for _, username := range []string{"buyer", "moderator"} {
		user := users[username]
		for _, status := range statuses {
			order := domain.Order{
				Owner:  domain.RegisteredUser{ID: user.ID},
				Email:  username + "@example.com",
				Status: status,
				Purchases: []domain.Purchase{
					{Good: goods[idx%len(goods)], Price: s.money(idx + 1)},
				},
			}
			if _, err := s.orders.InsertOrder(ctx, order); err != nil {
				return fmt.Errorf("orders.InsertOrder: %w", err)
			}
			idx++
		}
	}

	slog.Info("demo data created", "method", "Seeder.Demo", "goods", demoGoods, "offers", demoOffers, "orders", idx)

	return nil
}

func (s *Seeder) demoUsers(ctx context.Context) (map[string]domain.User, error) {
	users := make(map[string]domain.User)

	for _, in := range []NewUser{
		{Username: "admin", Password: "admin", Email: "admin@example.com"},
		{Username: "moderator", Password: "moderator", Email: "moderator@example.com", Group: domain.GroupModerators},
		{Username: "buyer", Password: "buyer", Email: "buyer@example.com", Group: domain.GroupBuyers},
	} {
		user, err := s.auth.CreateUser(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("auth.CreateUser[%s]: %w", in.Username, err)
		}
		users[in.Username] = user
	}

	// admin holds every permission directly, outside of any group
	for _, perm := range domain.AllPermissions() {
		if err := s.users.GrantPermission(ctx, users["admin"].ID, perm); err != nil {
			return nil, fmt.Errorf("users.GrantPermission[%s]: %w", perm, err)
		}
	}

	return users, nil
}

func (s *Seeder) money(amount int) domain.Money {
	return domain.Money{Amount: decimal.NewFromInt(int64(amount)), Currency: s.currency}
}
