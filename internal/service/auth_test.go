package service_test

import (
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *serviceSuite) TestLogin() {
	ctx := suite.T().Context()

	require.NoError(suite.T(), suite.seeder.Seed(ctx))

	active, err := suite.auth.CreateUser(ctx, service.NewUser{
		Username: "Buyer",
		Password: "secret",
		Email:    "buyer@example.com",
		Group:    domain.GroupBuyers,
	})
	suite.Require().NoError(err)
	suite.NotEqual("secret", active.PasswordHash)

	tests := []struct {
		name      string
		username  string
		password  string
		wantError error
	}{
		{name: "valid credentials: ok", username: "Buyer", password: "secret"},
		{name: "username is case insensitive: ok", username: "buyer", password: "secret"},
		{name: "wrong password: fail", username: "Buyer", password: "Secret", wantError: domain.ErrInvalidCredentials},
		{name: "unknown user: fail", username: "nobody", password: "secret", wantError: domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			sess := session.New()
			sess.AddOrderID(42)
			ctx := session.WithSession(t.Context(), sess)

			user, err := suite.auth.Login(ctx, tt.username, tt.password)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				_, ok := sess.UserID()
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, active.ID, user.ID)
			id, ok := sess.UserID()
			require.True(t, ok)
			assert.Equal(t, active.ID, id)
			// anonymous orders placed before logging in stay with the session
			assert.Equal(t, []int64{42}, sess.OrderIDs())

			suite.auth.Logout(ctx)
			_, ok = sess.UserID()
			assert.False(t, ok)
			assert.Empty(t, sess.OrderIDs())
		})
	}
}

func (suite *serviceSuite) TestCreateUser() {
	t := suite.T()
	ctx := t.Context()

	_, err := suite.auth.CreateUser(ctx, service.NewUser{Username: " ", Password: ""})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "password")

	_, err = suite.auth.CreateUser(ctx, service.NewUser{Username: "twin", Password: "x"})
	require.NoError(t, err)

	_, err = suite.auth.CreateUser(ctx, service.NewUser{Username: "TWIN", Password: "x"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")

	_, err = suite.auth.CreateUser(ctx, service.NewUser{Username: "lonely", Password: "x", Group: "Missing"})
	require.Error(t, err)
}
