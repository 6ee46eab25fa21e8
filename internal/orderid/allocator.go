// Package orderid places anonymous orders under random primary keys so that
// ids handed to anonymous buyers cannot be enumerated.
package orderid

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/nikolayk812/storefront/internal/domain"
)

const (
	DefaultRetries = 10
	DefaultLow     = int64(1_000_000_000_000)
	// DefaultHigh is 2^53 - 1, the largest integer JSON clients keep exact.
	DefaultHigh = int64(9_007_199_254_740_991)
)

type Config struct {
	Retries int
	Low     int64
	High    int64
}

func DefaultConfig() Config {
	return Config{
		Retries: DefaultRetries,
		Low:     DefaultLow,
		High:    DefaultHigh,
	}
}

func (c Config) Validate() error {
	if c.Retries < 1 {
		return fmt.Errorf("retries must be at least 1, got %d", c.Retries)
	}

	if c.Low < 1 {
		return fmt.Errorf("low must be positive, got %d", c.Low)
	}

	if c.Low >= c.High {
		return fmt.Errorf("low %d must be below high %d", c.Low, c.High)
	}

	return nil
}

// Inserter persists an order with purchases in one transaction. It must
// report a primary key collision as domain.ErrDuplicateID.
type Inserter interface {
	InsertOrder(ctx context.Context, order domain.Order) (int64, error)
}

// Binder records an anonymous order id in the caller's session.
type Binder interface {
	AddOrderID(orderID int64)
}

type Allocator struct {
	orders Inserter
	cfg    Config
	seed   func() [32]byte
}

func NewAllocator(orders Inserter, cfg Config) (*Allocator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cfg.Validate: %w", err)
	}

	return &Allocator{
		orders: orders,
		cfg:    cfg,
		seed:   cryptoSeed,
	}, nil
}

// Create stores order under a random id from [Low, High], drawing again on collision,
// and binds the id to the session once the transaction has committed.
func (a *Allocator) Create(ctx context.Context, order domain.Order, binder Binder) (int64, error) {
	if !domain.IsAnonymous(order.Owner) {
		return 0, errors.New("order is not anonymous")
	}

	for attempt := 1; attempt <= a.cfg.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("ctx.Err: %w", err)
		}

		order.ID = a.draw()

		orderID, err := a.orders.InsertOrder(ctx, order)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateID) {
				slog.Debug("order id collision", "method", "Allocator.Create", "attempt", attempt, "order_id", order.ID)
				continue
			}
			return 0, fmt.Errorf("orders.InsertOrder: %w", err)
		}

		binder.AddOrderID(orderID)

		return orderID, nil
	}

	slog.Error("unable to allocate anonymous order id", "method", "Allocator.Create",
		"retries", a.cfg.Retries, "low", a.cfg.Low, "high", a.cfg.High)

	return 0, fmt.Errorf("after %d attempts: %w", a.cfg.Retries, domain.ErrAllocationExhausted)
}

// draw uses a generator seeded for this attempt alone, so no random state is shared across requests.
func (a *Allocator) draw() int64 {
	rng := rand.New(rand.NewChaCha8(a.seed()))
	return a.cfg.Low + rng.Int64N(a.cfg.High-a.cfg.Low+1)
}

func cryptoSeed() [32]byte {
	var seed [32]byte
	// crypto/rand.Read never returns an error since Go 1.24
	_, _ = crand.Read(seed[:])
	return seed
}
