package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"golang.org/x/text/currency"
)

type catalogRepositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	container testcontainers.Container

	goods    port.GoodRepository
	offers   port.OfferRepository
	settings port.SettingRepository
}

// entry point to run the tests in the suite
func TestCatalogRepositorySuite(t *testing.T) {
	suite.Run(t, new(catalogRepositorySuite))
}

// before all tests in the suite
func (suite *catalogRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = testutil.StartPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.goods = repository.NewGood(suite.pool)
	suite.offers = repository.NewOffer(suite.pool)
	suite.settings = repository.NewSetting(suite.pool)
}

// after all tests in the suite
func (suite *catalogRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(suite.T().Context()))
	}
}

// before each test
func (suite *catalogRepositorySuite) SetupTest() {
	suite.Require().NoError(testutil.Truncate(suite.T().Context(), suite.pool))
}

func (suite *catalogRepositorySuite) TestGoods() {
	t := suite.T()
	ctx := t.Context()

	name := gofakeit.ProductName()

	goodID, err := suite.goods.InsertGood(ctx, domain.Good{Name: name})
	require.NoError(t, err)

	_, err = suite.goods.InsertGood(ctx, domain.Good{Name: name})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = suite.goods.InsertGood(ctx, domain.Good{})
	require.EqualError(t, err, "name is empty")

	good, err := suite.goods.GetGood(ctx, goodID)
	require.NoError(t, err)
	assert.Equal(t, domain.Good{ID: goodID, Name: name}, good)

	renamed := domain.Good{ID: goodID, Name: name + " v2"}
	require.NoError(t, suite.goods.UpdateGood(ctx, renamed))

	goods, count, err := suite.goods.ListGoods(ctx, domain.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []domain.Good{renamed}, goods)

	err = suite.goods.UpdateGood(ctx, domain.Good{ID: goodID + 1, Name: "missing"})
	require.EqualError(t, err, "q.UpdateGood: not found")

	require.NoError(t, suite.goods.DeleteGood(ctx, goodID))

	_, err = suite.goods.GetGood(ctx, goodID)
	require.EqualError(t, err, "q.GetGood: not found")
}

func (suite *catalogRepositorySuite) TestOffers() {
	ctx := suite.T().Context()

	var err error

	good := domain.Good{Name: gofakeit.ProductName()}
	good.ID, err = suite.goods.InsertGood(ctx, good)
	suite.Require().NoError(err)

	enabled := randomOffer(good, true)
	disabled := randomOffer(good, false)
	disabled.Price.Amount = enabled.Price.Amount.Add(decimal.NewFromInt(1))

	enabled.ID, err = suite.offers.InsertOffer(ctx, enabled)
	suite.Require().NoError(err)
	disabled.ID, err = suite.offers.InsertOffer(ctx, disabled)
	suite.Require().NoError(err)

	tests := []struct {
		name        string
		enabledOnly bool
		want        []domain.Offer
	}{
		{
			name:        "all offers",
			enabledOnly: false,
			want:        []domain.Offer{enabled, disabled},
		},
		{
			name:        "enabled only",
			enabledOnly: true,
			want:        []domain.Offer{enabled},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			offers, count, err := suite.offers.ListOffers(ctx, domain.OfferFilter{
				EnabledOnly: tt.enabledOnly,
				Page:        domain.Page{Limit: 10},
			})
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), count)
			assert.Empty(t, cmp.Diff(tt.want, offers, moneyComparers()))

			byIDs, err := suite.offers.GetOffers(ctx, []int64{disabled.ID, enabled.ID, -1}, tt.enabledOnly)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, byIDs, moneyComparers()))
		})
	}
}

func (suite *catalogRepositorySuite) TestOfferWrites() {
	t := suite.T()
	ctx := t.Context()

	good := domain.Good{Name: gofakeit.ProductName()}
	goodID, err := suite.goods.InsertGood(ctx, good)
	require.NoError(t, err)
	good.ID = goodID

	offer := randomOffer(good, true)
	offer.ID, err = suite.offers.InsertOffer(ctx, offer)
	require.NoError(t, err)

	_, err = suite.offers.InsertOffer(ctx, offer)
	require.ErrorIs(t, err, domain.ErrDuplicate, "same good and price")

	_, err = suite.offers.InsertOffer(ctx, randomOffer(domain.Good{ID: goodID + 100}, true))
	require.ErrorIs(t, err, domain.ErrNotFound, "unknown good")

	offer.Enabled = false
	offer.Price.Amount = offer.Price.Amount.Add(decimal.NewFromInt(1))
	require.NoError(t, suite.offers.UpdateOffer(ctx, offer))

	_, err = suite.offers.GetOffer(ctx, offer.ID, true)
	require.EqualError(t, err, "q.GetOffer: not found")

	got, err := suite.offers.GetOffer(ctx, offer.ID, false)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(offer, got, moneyComparers()))

	require.NoError(t, suite.offers.DeleteOffer(ctx, offer.ID))
	require.EqualError(t, suite.offers.DeleteOffer(ctx, offer.ID), "q.DeleteOffer: not found")

	// deleting a good cascades into its offers
	offer.ID, err = suite.offers.InsertOffer(ctx, offer)
	require.NoError(t, err)
	require.NoError(t, suite.goods.DeleteGood(ctx, goodID))

	_, err = suite.offers.GetOffer(ctx, offer.ID, false)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *catalogRepositorySuite) TestSettings() {
	t := suite.T()
	ctx := t.Context()

	setting := domain.Setting{Name: "store_title", Value: gofakeit.Company()}
	require.NoError(t, suite.settings.InsertSetting(ctx, setting))
	require.ErrorIs(t, suite.settings.InsertSetting(ctx, setting), domain.ErrDuplicate)

	other := domain.Setting{Name: "about", Value: gofakeit.Sentence(5)}
	require.NoError(t, suite.settings.InsertSetting(ctx, other))

	settings, count, err := suite.settings.ListSettings(ctx, domain.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []domain.Setting{other, setting}, settings, "ordered by name")

	setting.Value = "changed"
	require.NoError(t, suite.settings.UpdateSetting(ctx, setting.Name, setting))

	got, err := suite.settings.GetSetting(ctx, setting.Name)
	require.NoError(t, err)
	assert.Equal(t, setting, got)

	require.NoError(t, suite.settings.DeleteSetting(ctx, setting.Name))
	_, err = suite.settings.GetSetting(ctx, setting.Name)
	require.EqualError(t, err, "q.GetSetting: not found")
}

func randomOffer(good domain.Good, enabled bool) domain.Offer {
	return domain.Offer{
		Good: good,
		Price: domain.Money{
			Amount:   decimal.NewFromFloat(gofakeit.Price(1, 1000)).Round(2),
			Currency: currency.USD,
		},
		Enabled: enabled,
	}
}
