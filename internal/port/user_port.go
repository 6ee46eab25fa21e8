package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type UserRepository interface {
	InsertUser(ctx context.Context, user domain.User) (int64, error)
	GetUser(ctx context.Context, userID int64) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// HasPerm is false for inactive users.
	HasPerm(ctx context.Context, userID int64, perm domain.Permission) (bool, error)
	GroupHasPerm(ctx context.Context, group string, perm domain.Permission) (bool, error)

	// EnsureGroup creates the group if needed and grants perms to it.
	EnsureGroup(ctx context.Context, group string, perms []domain.Permission) error
	AddUserToGroup(ctx context.Context, userID int64, group string) error
	GrantPermission(ctx context.Context, userID int64, perm domain.Permission) error
}

// SessionRepository persists opaque session payloads.
type SessionRepository interface {
	// LoadSession returns domain.ErrNotFound for unknown or expired sessions.
	LoadSession(ctx context.Context, id uuid.UUID) ([]byte, error)
	SaveSession(ctx context.Context, id uuid.UUID, data []byte, expiresAt time.Time) error
	DeleteSession(ctx context.Context, id uuid.UUID) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}
