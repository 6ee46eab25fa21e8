package permission_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/permission"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type postgresStoreSuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	container testcontainers.Container

	users port.UserRepository
	store permission.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(postgresStoreSuite))
}

func (suite *postgresStoreSuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = testutil.StartPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.users = repository.NewUser(suite.pool)
	suite.store = permission.NewPostgres(suite.users)

	for group, perms := range domain.DefaultGroups() {
		suite.Require().NoError(suite.users.EnsureGroup(ctx, group, perms))
	}
}

func (suite *postgresStoreSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *postgresStoreSuite) TestHasPerm() {
	ctx := suite.T().Context()

	moderatorID, err := suite.users.InsertUser(ctx, domain.User{Username: "mod", PasswordHash: "x", IsActive: true})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.users.AddUserToGroup(ctx, moderatorID, domain.GroupModerators))

	tests := []struct {
		name  string
		owner domain.Owner
		perm  domain.Permission
		want  bool
	}{
		{name: "anonymous uses AnonymousBuyers group", owner: domain.Anonymous{}, perm: domain.PermViewMyOrder, want: true},
		{name: "anonymous cannot view settings", owner: domain.Anonymous{}, perm: domain.PermViewSettings},
		{name: "moderator views settings", owner: domain.RegisteredUser{ID: moderatorID}, perm: domain.PermViewSettings, want: true},
		{name: "unknown user", owner: domain.RegisteredUser{ID: moderatorID + 1}, perm: domain.PermViewGood},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			got, err := suite.store.HasPerm(ctx, tt.owner, tt.perm)
			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), tt.want, got)
		})
	}
}
