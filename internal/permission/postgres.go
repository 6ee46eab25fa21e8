package permission

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// Postgres resolves grants from users, groups and their permissions.
// Anonymous callers get the permissions of the AnonymousBuyers group.
type Postgres struct {
	users port.UserRepository
}

func NewPostgres(users port.UserRepository) *Postgres {
	return &Postgres{users: users}
}

func (p *Postgres) HasPerm(ctx context.Context, owner domain.Owner, perm domain.Permission) (bool, error) {
	if userID, ok := domain.UserID(owner); ok {
		allowed, err := p.users.HasPerm(ctx, userID, perm)
		if err != nil {
			return false, fmt.Errorf("users.HasPerm: %w", err)
		}
		return allowed, nil
	}

	allowed, err := p.users.GroupHasPerm(ctx, domain.GroupAnonymousBuyers, perm)
	if err != nil {
		return false, fmt.Errorf("users.GroupHasPerm: %w", err)
	}
	return allowed, nil
}
