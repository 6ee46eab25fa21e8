package access

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// Condition is one way of being allowed to perform an action.
type Condition func(ctx context.Context, s Subject) (bool, error)

func HasPerm(perm domain.Permission) Condition {
	return func(ctx context.Context, s Subject) (bool, error) {
		if s.Perms == nil {
			return false, nil
		}
		return s.Perms.HasPerm(ctx, perm)
	}
}

// AnyPerm holds when the subject has at least one of perms.
func AnyPerm(perms ...domain.Permission) Condition {
	return func(ctx context.Context, s Subject) (bool, error) {
		for _, perm := range perms {
			ok, err := HasPerm(perm)(ctx, s)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
}

// All holds when every condition holds.
func All(conds ...Condition) Condition {
	return func(ctx context.Context, s Subject) (bool, error) {
		for _, cond := range conds {
			ok, err := cond(ctx, s)
			if err != nil || !ok {
				return false, err
			}
		}
		return len(conds) > 0, nil
	}
}

// Flag is a configuration switch.
func Flag(enabled bool) Condition {
	return func(context.Context, Subject) (bool, error) {
		return enabled, nil
	}
}
