package permission

import (
	"context"
	"slices"

	"github.com/nikolayk812/storefront/internal/domain"
)

// Static is a fixed grant table.
type Static struct {
	Anonymous []domain.Permission
	Users     map[int64][]domain.Permission
}

// NewStaticDefaults grants anonymous callers the AnonymousBuyers permissions
// and each listed user the permissions of its group.
func NewStaticDefaults(userGroups map[int64]string) *Static {
	groups := domain.DefaultGroups()

	s := &Static{
		Anonymous: groups[domain.GroupAnonymousBuyers],
		Users:     make(map[int64][]domain.Permission, len(userGroups)),
	}
	for userID, group := range userGroups {
		s.Users[userID] = groups[group]
	}

	return s
}

func (s *Static) HasPerm(_ context.Context, owner domain.Owner, perm domain.Permission) (bool, error) {
	if userID, ok := domain.UserID(owner); ok {
		return slices.Contains(s.Users[userID], perm), nil
	}
	return slices.Contains(s.Anonymous, perm), nil
}
