// Package service implements the store operations on top of the repositories.
// Every operation authorizes the request subject first and then narrows what it
// may touch by the resource scope, so a record outside the scope is not found.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
)

const (
	msgRequired     = "This field is required."
	msgBlank        = "This field may not be blank."
	msgEmptyList    = "This list may not be empty."
	msgInvalidGood  = "Invalid pk \"%d\" - object does not exist."
	msgInvalidState = "\"%s\" is not a valid choice."
)

// authorize runs the coarse policy check for the request subject.
func authorize(ctx context.Context, policy *access.Policy, action access.Action) (access.Subject, error) {
	s := access.SubjectFrom(ctx)

	if err := policy.Authorize(ctx, s, action); err != nil {
		return s, err
	}

	return s, nil
}

// uniqueOn turns a natural key violation into a field error.
func uniqueOn(err error, field, msg string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.NewValidationError(field, msg)
	}
	return err
}

func validStatus(status domain.OrderStatus) error {
	if _, err := domain.ToOrderStatus(string(status)); err != nil {
		return domain.NewValidationError("status", fmt.Sprintf(msgInvalidState, status))
	}
	return nil
}
