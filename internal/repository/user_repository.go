package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type userRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewUser(pool *pgxpool.Pool) port.UserRepository {
	return &userRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func (r *userRepository) InsertUser(ctx context.Context, user domain.User) (int64, error) {
	if user.Username == "" {
		return 0, errors.New("username is empty")
	}

	if user.PasswordHash == "" {
		return 0, errors.New("password hash is empty")
	}

	id, err := r.q.InsertUser(ctx, db.InsertUserParams{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Email:        user.Email,
		EthAddress:   user.EthAddress,
		IsActive:     user.IsActive,
	})
	if err != nil {
		return 0, fmt.Errorf("q.InsertUser: %w", mapError(err))
	}

	return id, nil
}

func (r *userRepository) GetUser(ctx context.Context, userID int64) (domain.User, error) {
	row, err := r.q.GetUser(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("q.GetUser: %w", mapError(err))
	}

	return domain.User(row), nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("q.GetUserByUsername: %w", mapError(err))
	}

	return domain.User(row), nil
}

func (r *userRepository) HasPerm(ctx context.Context, userID int64, perm domain.Permission) (bool, error) {
	ok, err := r.q.UserHasPerm(ctx, userID, string(perm))
	if err != nil {
		return false, fmt.Errorf("q.UserHasPerm: %w", err)
	}

	return ok, nil
}

func (r *userRepository) GroupHasPerm(ctx context.Context, group string, perm domain.Permission) (bool, error) {
	ok, err := r.q.GroupHasPerm(ctx, group, string(perm))
	if err != nil {
		return false, fmt.Errorf("q.GroupHasPerm: %w", err)
	}

	return ok, nil
}

func (r *userRepository) EnsureGroup(ctx context.Context, group string, perms []domain.Permission) error {
	if group == "" {
		return errors.New("group is empty")
	}

	if err := withTxNoResult(ctx, r.dbtx, func(q *db.Queries) error {
		groupID, err := q.UpsertGroup(ctx, group)
		if err != nil {
			return fmt.Errorf("q.UpsertGroup: %w", err)
		}

		for _, perm := range perms {
			if err := q.GrantGroupPermission(ctx, groupID, string(perm)); err != nil {
				return fmt.Errorf("q.GrantGroupPermission[%s]: %w", perm, err)
			}
		}

		return nil
	}); err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *userRepository) AddUserToGroup(ctx context.Context, userID int64, group string) error {
	found, err := r.q.AddUserToGroup(ctx, userID, group)
	if err != nil {
		return fmt.Errorf("q.AddUserToGroup: %w", mapError(err))
	}

	if !found {
		return fmt.Errorf("q.AddUserToGroup: group[%s]: %w", group, domain.ErrNotFound)
	}

	return nil
}

func (r *userRepository) GrantPermission(ctx context.Context, userID int64, perm domain.Permission) error {
	if err := r.q.GrantUserPermission(ctx, userID, string(perm)); err != nil {
		return fmt.Errorf("q.GrantUserPermission: %w", mapError(err))
	}

	return nil
}
