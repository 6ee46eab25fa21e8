package access

import (
	"context"
	"errors"
	"fmt"
)

type Action string

const (
	ActionList          Action = "list"
	ActionRetrieve      Action = "retrieve"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"
)

var ErrDenied = errors.New("access denied")

// DeniedError reports a refused action. Anonymous callers are told to authenticate,
// registered ones that they are forbidden.
type DeniedError struct {
	Resource  string
	Action    Action
	Anonymous bool
	// Err is set when a condition failed to evaluate.
	Err error
}

func (e *DeniedError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", ErrDenied, e.Action, e.Resource)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DeniedError) Is(target error) bool {
	return target == ErrDenied
}

func (e *DeniedError) Unwrap() error {
	return e.Err
}

// Policy maps actions on one resource to the conditions that allow them.
// An action without conditions is always denied.
type Policy struct {
	resource string
	rules    map[Action][]Condition
}

func NewPolicy(resource string) *Policy {
	return &Policy{
		resource: resource,
		rules:    make(map[Action][]Condition),
	}
}

// Allow registers cond as sufficient for each of actions.
func (p *Policy) Allow(cond Condition, actions ...Action) *Policy {
	for _, action := range actions {
		p.rules[action] = append(p.rules[action], cond)
	}
	return p
}

func (p *Policy) Resource() string {
	return p.resource
}

// Authorize returns nil when at least one condition for the action holds.
// A condition error denies without consulting the rest.
func (p *Policy) Authorize(ctx context.Context, s Subject, action Action) error {
	for _, cond := range p.rules[action] {
		ok, err := cond(ctx, s)
		if err != nil {
			return p.denied(s, action, err)
		}
		if ok {
			return nil
		}
	}

	return p.denied(s, action, nil)
}

func (p *Policy) denied(s Subject, action Action, err error) *DeniedError {
	return &DeniedError{
		Resource:  p.resource,
		Action:    action,
		Anonymous: s.IsAnonymous(),
		Err:       err,
	}
}
