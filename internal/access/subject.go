package access

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// Checker answers permission questions for one subject.
type Checker interface {
	HasPerm(ctx context.Context, perm domain.Permission) (bool, error)
}

// Subject is the caller of a request.
type Subject struct {
	Owner domain.Owner
	Perms Checker
	// SessionOrderIDs are the anonymous orders created from the caller's session.
	SessionOrderIDs []int64
}

func (s Subject) IsAnonymous() bool {
	return s.Owner == nil || domain.IsAnonymous(s.Owner)
}

type subjectKey struct{}

func WithSubject(ctx context.Context, s Subject) context.Context {
	return context.WithValue(ctx, subjectKey{}, s)
}

// SubjectFrom returns the request subject, or an anonymous subject without permissions.
func SubjectFrom(ctx context.Context) Subject {
	if s, ok := ctx.Value(subjectKey{}).(Subject); ok {
		return s
	}
	return Subject{Owner: domain.Anonymous{}, Perms: noPerms{}}
}

type noPerms struct{}

func (noPerms) HasPerm(context.Context, domain.Permission) (bool, error) {
	return false, nil
}
