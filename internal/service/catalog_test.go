package service_test

import (
	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func (suite *serviceSuite) TestGoods() {
	t := suite.T()
	ctx := suite.moderator()

	good, err := suite.goods.Create(ctx, "  good3 ")
	require.NoError(t, err)
	assert.Equal(t, "good3", good.Name)

	_, err = suite.goods.Create(ctx, suite.good.Name)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"good with this name already exists."}, verr.Fields["name"])

	_, err = suite.goods.Create(ctx, " ")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	renamed, err := suite.goods.Update(ctx, good.ID, "good4")
	require.NoError(t, err)
	assert.Equal(t, domain.Good{ID: good.ID, Name: "good4"}, renamed)

	_, err = suite.goods.PartialUpdate(ctx, good.ID, service.GoodPatch{Name: &suite.good2.Name})
	require.ErrorAs(t, err, &verr)

	_, err = suite.goods.Get(ctx, -1)
	require.ErrorIs(t, err, domain.ErrNotFound)

	goods, count, err := suite.goods.List(suite.as(anonymous, domain.PermViewGood), firstPage())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, []domain.Good{suite.good, suite.good2, renamed}, goods)

	_, err = suite.goods.Create(suite.as(user, domain.PermViewGood), "good5")
	require.ErrorIs(t, err, access.ErrDenied)
}

func (suite *serviceSuite) TestGoodsDestroy() {
	t := suite.T()

	// off by default, even for moderators
	err := suite.goods.Destroy(suite.moderator(), suite.good.ID)
	require.ErrorIs(t, err, access.ErrDenied)

	goods := service.NewGoods(suite.goodRepo, access.NewPolicies(access.Options{AllowGoodDeletion: true}))
	require.NoError(t, goods.Destroy(suite.moderator(), suite.good.ID))

	// purchases of the good are gone with it, the order stays
	order, err := suite.orderRepo.GetOrder(t.Context(), suite.userOrder.ID, domain.AllOrders())
	require.NoError(t, err)
	assert.Empty(t, order.Purchases)
}

func (suite *serviceSuite) TestOffersScope() {
	tests := []struct {
		name  string
		ctx   func() (domain.Owner, []domain.Permission)
		want  func() []int64
		found bool
	}{
		{
			name: "buyer sees enabled offers",
			ctx: func() (domain.Owner, []domain.Permission) {
				return user, []domain.Permission{domain.PermViewOffer}
			},
			want: func() []int64 { return []int64{suite.offer.ID, suite.offer2.ID} },
		},
		{
			name: "offer moderator sees every offer",
			ctx: func() (domain.Owner, []domain.Permission) {
				return user, []domain.Permission{domain.PermViewOffer, domain.PermChangeOffer}
			},
			want:  func() []int64 { return []int64{suite.offer.ID, suite.offer2.ID, suite.disabledOffer.ID} },
			found: true,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			owner, list := tt.ctx()
			ctx := suite.as(owner, list...)

			offers, count, err := suite.offers.List(ctx, firstPage())
			require.NoError(t, err)

			ids := make([]int64, 0, len(offers))
			for _, offer := range offers {
				ids = append(ids, offer.ID)
			}
			assert.Equal(t, tt.want(), ids)
			assert.Equal(t, len(ids), count)

			_, err = suite.offers.Get(ctx, suite.disabledOffer.ID)
			if tt.found {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func (suite *serviceSuite) TestOfferWrites() {
	t := suite.T()
	ctx := suite.moderator()

	offer, err := suite.offers.Create(ctx, service.OfferInput{GoodID: suite.good.ID, Price: decimal.RequireFromString("2.5")})
	require.NoError(t, err)
	assert.True(t, offer.Enabled)
	assert.Equal(t, currency.USD, offer.Price.Currency)
	assert.Equal(t, suite.good, offer.Good)

	var verr *domain.ValidationError

	_, err = suite.offers.Create(ctx, service.OfferInput{GoodID: suite.good.ID, Price: decimal.RequireFromString("2.500000")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"The fields good, price must make a unique set."}, verr.Fields[domain.NonFieldErrors])

	_, err = suite.offers.Create(ctx, service.OfferInput{GoodID: -1, Price: decimal.NewFromInt(1)})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{`Invalid pk "-1" - object does not exist.`}, verr.Fields["good_id"])

	_, err = suite.offers.Create(ctx, service.OfferInput{GoodID: suite.good.ID, Price: decimal.RequireFromString("0.1234567")})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "price")

	disabled := false
	updated, err := suite.offers.PartialUpdate(ctx, offer.ID, service.OfferPatch{GoodID: &suite.good2.ID, Enabled: &disabled})
	require.NoError(t, err)
	assert.Equal(t, suite.good2, updated.Good)
	assert.False(t, updated.Enabled)
	assert.True(t, offer.Price.Amount.Equal(updated.Price.Amount))

	updated, err = suite.offers.Update(ctx, offer.ID, service.OfferInput{GoodID: suite.good.ID, Price: decimal.NewFromInt(3)})
	require.NoError(t, err)
	assert.True(t, updated.Enabled, "enabled defaults to true on a full update")
	assert.False(t, updated.Price.Amount.Equal(offer.Price.Amount))

	require.NoError(t, suite.offers.Destroy(ctx, offer.ID))
	require.ErrorIs(t, suite.offers.Destroy(ctx, offer.ID), domain.ErrNotFound)

	err = suite.offers.Destroy(suite.as(user, domain.PermViewOffer), suite.offer.ID)
	require.ErrorIs(t, err, access.ErrDenied)
}

func (suite *serviceSuite) TestSettings() {
	t := suite.T()
	ctx := suite.moderator()

	setting, err := suite.settings.Create(ctx, domain.Setting{Name: "banner", Value: "Welcome"})
	require.NoError(t, err)

	_, err = suite.settings.Create(ctx, setting)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	value := "Closed today"
	updated, err := suite.settings.PartialUpdate(ctx, "banner", service.SettingPatch{Value: &value})
	require.NoError(t, err)
	assert.Equal(t, domain.Setting{Name: "banner", Value: value}, updated)

	renamed, err := suite.settings.Update(ctx, "banner", domain.Setting{Name: "notice", Value: value})
	require.NoError(t, err)
	assert.Equal(t, "notice", renamed.Name)

	_, err = suite.settings.Get(ctx, "banner")
	require.ErrorIs(t, err, domain.ErrNotFound)

	settings, count, err := suite.settings.List(ctx, firstPage())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []domain.Setting{renamed}, settings)

	_, _, err = suite.settings.List(suite.as(user, domain.DefaultGroups()[domain.GroupBuyers]...), firstPage())
	require.ErrorIs(t, err, access.ErrDenied)

	require.NoError(t, suite.settings.Destroy(ctx, "notice"))
	require.ErrorIs(t, suite.settings.Destroy(ctx, "notice"), domain.ErrNotFound)
}

func (suite *serviceSuite) TestSeederDemo() {
	t := suite.T()
	ctx := t.Context()

	require.NoError(t, testutil.Truncate(ctx, suite.pool))
	require.NoError(t, suite.seeder.Demo(ctx))

	require.ErrorIs(t, suite.seeder.Demo(ctx), service.ErrDemoPresent)

	_, goods, err := suite.goodRepo.ListGoods(ctx, firstPage())
	require.NoError(t, err)
	assert.Equal(t, 16, goods)

	_, offers, err := suite.offerRepo.ListOffers(ctx, domain.OfferFilter{Page: firstPage()})
	require.NoError(t, err)
	assert.Equal(t, 9, offers)

	_, orders, err := suite.orderRepo.SearchOrders(ctx, domain.OrderFilter{Page: firstPage()})
	require.NoError(t, err)
	assert.Equal(t, 8, orders)

	moderator, err := suite.userRepo.GetUserByUsername(ctx, "moderator")
	require.NoError(t, err)
	ok, err := suite.userRepo.HasPerm(ctx, moderator.ID, domain.PermViewOrder)
	require.NoError(t, err)
	assert.True(t, ok)

	admin, err := suite.userRepo.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	ok, err = suite.userRepo.HasPerm(ctx, admin.ID, domain.PermDeleteSettings)
	require.NoError(t, err)
	assert.True(t, ok)

	// seeding twice keeps the groups as they are
	require.NoError(t, suite.seeder.Seed(ctx))
	ok, err = suite.userRepo.GroupHasPerm(ctx, domain.GroupAnonymousBuyers, domain.PermModerateMyOrder)
	require.NoError(t, err)
	assert.True(t, ok)
}
