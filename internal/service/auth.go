package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/session"
	"golang.org/x/crypto/bcrypt"
)

type NewUser struct {
	Username   string
	Password   string
	Email      string
	EthAddress string
	// Group is optional.
	Group string
}

type Auth struct {
	users port.UserRepository
	cost  int
}

func NewAuth(users port.UserRepository) *Auth {
	return &Auth{
		users: users,
		cost:  bcrypt.DefaultCost,
	}
}

// Login checks the password and binds the user to the request session under a fresh session id.
func (a *Auth) Login(ctx context.Context, username, password string) (domain.User, error) {
	user, err := a.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("users.GetUserByUsername: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	session.FromContext(ctx).Login(user.ID)

	slog.Info("user logged in", "method", "Auth.Login", "user_id", user.ID)

	return user, nil
}

// Logout drops the user and the anonymous order ids of the session.
func (a *Auth) Logout(ctx context.Context) {
	session.FromContext(ctx).Flush()
}

func (a *Auth) CreateUser(ctx context.Context, in NewUser) (domain.User, error) {
	user := domain.User{
		Username:   strings.TrimSpace(in.Username),
		Email:      in.Email,
		EthAddress: in.EthAddress,
		IsActive:   true,
	}

	verr := &domain.ValidationError{}
	if user.Username == "" {
		verr.Add("username", msgBlank)
	}
	if in.Password == "" {
		verr.Add("password", msgBlank)
	}
	if !verr.Empty() {
		return domain.User{}, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}
	user.PasswordHash = string(hash)

	user.ID, err = a.users.InsertUser(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("users.InsertUser: %w", uniqueOn(err, "username", msgUserExists))
	}

	if in.Group != "" {
		if err := a.users.AddUserToGroup(ctx, user.ID, in.Group); err != nil {
			return domain.User{}, fmt.Errorf("users.AddUserToGroup: %w", err)
		}
	}

	return user, nil
}

const msgUserExists = "A user with that username already exists."
