package domain

import (
	"errors"
	"fmt"
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

type Page struct {
	Limit  int
	Offset int
}

func (p Page) Validate() error {
	if p.Limit < 1 || p.Limit > MaxPageLimit {
		return fmt.Errorf("limit must be within [1, %d]", MaxPageLimit)
	}

	if p.Offset < 0 {
		return errors.New("offset is negative")
	}

	return nil
}

// OrderScope narrows orders, and purchases through their order, to the ones
// a subject may see. The zero value matches every order.
type OrderScope struct {
	// Empty matches nothing.
	Empty bool
	// Owner restricts to orders of this owner. Anonymous matches orders without a user.
	Owner Owner
	// IDs restricts to these order ids when RestrictIDs is set.
	IDs         []int64
	RestrictIDs bool
}

func AllOrders() OrderScope {
	return OrderScope{}
}

func NoOrders() OrderScope {
	return OrderScope{Empty: true}
}

func OwnedBy(owner Owner) OrderScope {
	return OrderScope{Owner: owner}
}

// WithIDs returns a copy of the scope additionally restricted to ids.
func (s OrderScope) WithIDs(ids []int64) OrderScope {
	s.IDs = append([]int64{}, ids...)
	s.RestrictIDs = true
	return s
}

// Matches reports whether an order is inside the scope.
func (s OrderScope) Matches(o Order) bool {
	if s.Empty {
		return false
	}

	switch owner := s.Owner.(type) {
	case RegisteredUser:
		if id, ok := UserID(o.Owner); !ok || id != owner.ID {
			return false
		}
	case Anonymous:
		if !IsAnonymous(o.Owner) {
			return false
		}
	}

	if s.RestrictIDs {
		for _, id := range s.IDs {
			if id == o.ID {
				return true
			}
		}
		return false
	}

	return true
}

// OrderFilter has AND semantics across fields, OR semantics within each field slice
type OrderFilter struct {
	Scope    OrderScope
	Emails   []string
	Statuses []OrderStatus
	Page     Page
}

func (f OrderFilter) Validate() error {
	if err := f.Page.Validate(); err != nil {
		return fmt.Errorf("page: %w", err)
	}

	for _, status := range f.Statuses {
		if _, err := ToOrderStatus(string(status)); err != nil {
			return fmt.Errorf("status[%s]: %w", status, err)
		}
	}

	return nil
}

type PurchaseFilter struct {
	Scope OrderScope
	Page  Page
}

type OfferFilter struct {
	EnabledOnly bool
	Page        Page
}
