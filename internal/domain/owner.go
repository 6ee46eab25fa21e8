package domain

// Owner is who an order belongs to: either a registered user or
// an anonymous session. Scoping code switches on the concrete type.
type Owner interface {
	isOwner()
}

type RegisteredUser struct {
	ID int64
}

type Anonymous struct{}

func (RegisteredUser) isOwner() {}

func (Anonymous) isOwner() {}

func IsAnonymous(o Owner) bool {
	_, ok := o.(Anonymous)
	return ok
}

// UserID returns the id of a registered owner.
func UserID(o Owner) (int64, bool) {
	u, ok := o.(RegisteredUser)
	return u.ID, ok
}
