package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/orderid"
	"github.com/nikolayk812/storefront/internal/permission"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/server"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/session"
)

// sessionStore is a session.Store that can also drop stale records.
type sessionStore interface {
	session.Store
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// app holds the pool and the repositories every command shares.
type app struct {
	cfg  config.Config
	pool *pgxpool.Pool

	users  port.UserRepository
	goods  port.GoodRepository
	offers port.OfferRepository
	orders port.OrderRepository
}

func openApp(ctx context.Context, cfg config.Config) (*app, error) {
	pool, err := pgxpool.New(ctx, cfg.DB.URL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return &app{
		cfg:    cfg,
		pool:   pool,
		users:  repository.NewUser(pool),
		goods:  repository.NewGood(pool),
		offers: repository.NewOffer(pool),
		orders: repository.NewOrder(pool),
	}, nil
}

func (a *app) close() {
	a.pool.Close()
}

func (a *app) seeder() *service.Seeder {
	return service.NewSeeder(a.users, a.goods, a.offers, a.orders, a.cfg.Currency())
}

func (a *app) sessionStore() sessionStore {
	if a.cfg.Session.Backend == config.SessionBackendMemory {
		return session.NewMemoryStore()
	}
	return repository.NewSession(a.pool)
}

func (a *app) permissionStore() (permission.Store, error) {
	if a.cfg.Authz.Backend != config.AuthzBackendOpenFGA {
		return permission.NewPostgres(a.users), nil
	}

	fga, err := permission.NewOpenFGA(permission.OpenFGAConfig{
		APIURL:    a.cfg.Authz.OpenFGA.APIURL,
		StoreID:   a.cfg.Authz.OpenFGA.StoreID,
		APIToken:  a.cfg.Authz.OpenFGA.APIToken,
		ModelID:   a.cfg.Authz.OpenFGA.ModelID,
		StoreName: a.cfg.Store.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("permission.NewOpenFGA: %w", err)
	}
	return fga, nil
}

func (a *app) serverDeps(sessions session.Store) (server.Deps, error) {
	perms, err := a.permissionStore()
	if err != nil {
		return server.Deps{}, fmt.Errorf("permissionStore: %w", err)
	}

	allocator, err := orderid.NewAllocator(a.orders, a.cfg.OrderIDConfig())
	if err != nil {
		return server.Deps{}, fmt.Errorf("orderid.NewAllocator: %w", err)
	}

	policies := access.NewPolicies(access.Options{AllowGoodDeletion: a.cfg.Store.AllowGoodDeletion})
	unit := a.cfg.Currency()

	return server.Deps{
		Goods:     service.NewGoods(a.goods, policies),
		Offers:    service.NewOffers(a.offers, a.goods, policies, unit),
		Purchases: service.NewPurchases(repository.NewPurchase(a.pool), policies),
		Orders:    service.NewOrders(a.orders, a.goods, policies, unit),
		MyOrders:  service.NewMyOrders(a.orders, a.offers, allocator, policies),
		Settings:  service.NewSettings(repository.NewSetting(a.pool), policies),
		Auth:      service.NewAuth(a.users),
		Sessions:  sessions,
		Perms:     perms,
		DB:        a.pool,
	}, nil
}
