// Package permission answers "may this owner do that" from a backing store.
package permission

import (
	"context"
	"sync"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
)

type Store interface {
	HasPerm(ctx context.Context, owner domain.Owner, perm domain.Permission) (bool, error)
}

// For binds store to owner. Answers are memoized, so a checker should live no longer than a request.
func For(store Store, owner domain.Owner) access.Checker {
	return &checker{
		store: store,
		owner: owner,
		cache: make(map[domain.Permission]bool),
	}
}

type checker struct {
	store Store
	owner domain.Owner

	mu    sync.Mutex
	cache map[domain.Permission]bool
}

func (c *checker) HasPerm(ctx context.Context, perm domain.Permission) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ok, found := c.cache[perm]; found {
		return ok, nil
	}

	ok, err := c.store.HasPerm(ctx, c.owner, perm)
	if err != nil {
		return false, err
	}

	c.cache[perm] = ok
	return ok, nil
}
