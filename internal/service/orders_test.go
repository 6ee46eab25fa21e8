package service_test

import (
	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *serviceSuite) TestOrdersList() {
	all := func() []int64 {
		return []int64{suite.userOrder.ID, suite.otherUserOrder.ID, suite.anonOrder.ID, suite.otherAnonOrder.ID}
	}

	tests := []struct {
		name       string
		owner      domain.Owner
		perms      []domain.Permission
		want       func() []int64
		wantDenied bool
	}{
		{
			name:       "no permission: denied",
			owner:      user,
			wantDenied: true,
		},
		{
			name:  "view_order: all orders",
			owner: user,
			perms: []domain.Permission{domain.PermViewOrder},
			want:  all,
		},
		{
			name:  "change_order: all orders",
			owner: user,
			perms: []domain.Permission{domain.PermChangeOrder},
			want:  all,
		},
		{
			name:  "view_my_order: own orders",
			owner: user,
			perms: []domain.Permission{domain.PermViewMyOrder},
			want:  func() []int64 { return []int64{suite.userOrder.ID} },
		},
		{
			name:  "view_order wins over view_my_order",
			owner: user,
			perms: []domain.Permission{domain.PermViewMyOrder, domain.PermViewOrder},
			want:  all,
		},
		{
			name:  "anonymous with view_my_order: nothing",
			owner: anonymous,
			perms: []domain.Permission{domain.PermViewMyOrder},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := suite.as(tt.owner, tt.perms...)

			orders, count, err := suite.orders.List(ctx, service.OrderQuery{Page: firstPage()})
			if tt.wantDenied {
				require.ErrorIs(t, err, access.ErrDenied)
				return
			}
			require.NoError(t, err)

			var want []int64
			if tt.want != nil {
				want = tt.want()
			}
			assert.Equal(t, len(want), count)
			assert.ElementsMatch(t, want, orderIDs(orders))
		})
	}
}

func (suite *serviceSuite) TestOrdersListFilters() {
	t := suite.T()
	ctx := suite.moderator()

	orders, count, err := suite.orders.List(ctx, service.OrderQuery{
		Emails: []string{suite.anonOrder.Email, suite.userOrder.Email},
		Page:   firstPage(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []int64{suite.userOrder.ID, suite.anonOrder.ID}, orderIDs(orders))

	orders, count, err = suite.orders.List(ctx, service.OrderQuery{
		Statuses: []domain.OrderStatus{domain.OrderStatusCanceled},
		Page:     firstPage(),
	})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, orders)
}

func (suite *serviceSuite) TestOrdersRetrieve() {
	t := suite.T()

	_, err := suite.orders.Get(suite.as(user, domain.PermViewMyOrder), suite.otherUserOrder.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = suite.orders.Get(suite.as(anonymous, domain.PermViewMyOrder), suite.anonOrder.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = suite.orders.Get(suite.as(anonymous), suite.anonOrder.ID)
	var denied *access.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.True(t, denied.Anonymous)

	order, err := suite.orders.Get(suite.as(user, domain.PermViewOrder), suite.otherUserOrder.ID)
	require.NoError(t, err)
	assert.Equal(t, suite.otherUserOrder.ID, order.ID)
}

func (suite *serviceSuite) TestOrdersCreateAndDestroyDenied() {
	t := suite.T()
	ctx := suite.moderator()

	for _, action := range []access.Action{access.ActionCreate, access.ActionDestroy} {
		err := suite.orders.Deny(ctx, action)
		require.ErrorIs(t, err, access.ErrDenied, action)
	}
}

func (suite *serviceSuite) TestOrdersUpdate() {
	t := suite.T()
	ctx := suite.moderator()

	updated, err := suite.orders.Update(ctx, suite.anonOrder.ID, service.OrderInput{
		Email:  "moderated@example.com",
		Status: domain.OrderStatusProcessing,
		Purchases: []service.PurchaseInput{
			{GoodID: suite.good2.ID, Price: decimal.RequireFromString("9.5")},
			{GoodID: suite.good.ID, Price: decimal.RequireFromString("0.000001")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "moderated@example.com", updated.Email)
	assert.Equal(t, domain.OrderStatusProcessing, updated.Status)
	assert.True(t, domain.IsAnonymous(updated.Owner))
	require.Len(t, updated.Purchases, 2)
	goods := lo.Map(updated.Purchases, func(p domain.Purchase, _ int) domain.Good { return p.Good })
	assert.ElementsMatch(t, []domain.Good{suite.good, suite.good2}, goods)

	history, err := suite.orders.StatusHistory(ctx, suite.anonOrder.ID)
	require.NoError(t, err)
	statuses := lo.Map(history, func(c domain.OrderStatusChange, _ int) domain.OrderStatus { return c.Status })
	assert.Equal(t, []domain.OrderStatus{domain.OrderStatusDraft, domain.OrderStatusProcessing}, statuses)
}

func (suite *serviceSuite) TestOrdersUpdateValidation() {
	tests := []struct {
		name      string
		in        service.OrderInput
		wantField string
	}{
		{
			name:      "unknown status: fail",
			in:        service.OrderInput{Email: "a@example.com", Status: "XX"},
			wantField: "status",
		},
		{
			name: "unknown good: fail",
			in: service.OrderInput{
				Email:     "a@example.com",
				Status:    domain.OrderStatusDraft,
				Purchases: []service.PurchaseInput{{GoodID: -1, Price: decimal.NewFromInt(1)}},
			},
			wantField: "purchases",
		},
		{
			name: "negative price: fail",
			in: service.OrderInput{
				Email:     "a@example.com",
				Status:    domain.OrderStatusDraft,
				Purchases: []service.PurchaseInput{{GoodID: suite.good.ID, Price: decimal.NewFromInt(-1)}},
			},
			wantField: "purchases",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			_, err := suite.orders.Update(suite.moderator(), suite.userOrder.ID, tt.in)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.wantField)
		})
	}
}

func (suite *serviceSuite) TestOrdersPartialUpdateByOwner() {
	t := suite.T()
	ctx := suite.as(user, domain.PermModerateMyOrder)

	status := domain.OrderStatusCanceled
	updated, err := suite.orders.PartialUpdate(ctx, suite.userOrder.ID, service.OrderPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, status, updated.Status)
	assert.Len(t, updated.Purchases, 1)

	_, err = suite.orders.PartialUpdate(ctx, suite.otherUserOrder.ID, service.OrderPatch{Status: &status})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *serviceSuite) TestPurchases() {
	purchaseOf := func(o domain.Order) int64 { return o.Purchases[0].ID }

	tests := []struct {
		name       string
		owner      domain.Owner
		perms      []domain.Permission
		sessionIDs func() []int64
		want       func() []int64
		wantDenied bool
	}{
		{
			name:       "no permission: denied",
			owner:      user,
			wantDenied: true,
		},
		{
			name:  "view_purchase: all",
			owner: user,
			perms: []domain.Permission{domain.PermViewPurchase},
			want: func() []int64 {
				return []int64{
					purchaseOf(suite.userOrder), purchaseOf(suite.otherUserOrder),
					purchaseOf(suite.anonOrder), purchaseOf(suite.otherAnonOrder),
				}
			},
		},
		{
			name:  "view_my_purchase: own orders",
			owner: user,
			perms: []domain.Permission{domain.PermViewMyPurchase},
			want:  func() []int64 { return []int64{purchaseOf(suite.userOrder)} },
		},
		{
			name:  "anonymous: empty session sees nothing",
			owner: anonymous,
			perms: []domain.Permission{domain.PermViewMyPurchase},
		},
		{
			name:       "anonymous: session orders",
			owner:      anonymous,
			perms:      []domain.Permission{domain.PermViewMyPurchase},
			sessionIDs: func() []int64 { return []int64{suite.anonOrder.ID, suite.userOrder.ID} },
			want:       func() []int64 { return []int64{purchaseOf(suite.anonOrder)} },
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			var sessionIDs []int64
			if tt.sessionIDs != nil {
				sessionIDs = tt.sessionIDs()
			}
			ctx := suite.asSession(tt.owner, sessionIDs, tt.perms...)

			purchases, count, err := suite.purchases.List(ctx, firstPage())
			if tt.wantDenied {
				require.ErrorIs(t, err, access.ErrDenied)
				return
			}
			require.NoError(t, err)

			var want []int64
			if tt.want != nil {
				want = tt.want()
			}
			got := lo.Map(purchases, func(p domain.Purchase, _ int) int64 { return p.ID })
			assert.Equal(t, len(want), count)
			assert.ElementsMatch(t, want, got)

			for _, id := range want {
				_, err := suite.purchases.Get(ctx, id)
				assert.NoError(t, err)
			}
		})
	}
}

func (suite *serviceSuite) TestPurchasesAreSnapshots() {
	t := suite.T()
	ctx := suite.moderator()

	price := decimal.NewFromInt(100)
	_, err := suite.offers.PartialUpdate(ctx, suite.offer.ID, service.OfferPatch{Price: &price})
	require.NoError(t, err)

	purchase, err := suite.purchases.Get(ctx, suite.userOrder.Purchases[0].ID)
	require.NoError(t, err)
	assert.True(t, suite.offer.Price.Amount.Equal(purchase.Price.Amount))

	_, err = suite.purchases.Get(suite.as(user, domain.PermViewMyPurchase), suite.anonOrder.Purchases[0].ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, suite.purchases.Deny(ctx, access.ActionCreate), access.ErrDenied)
}
