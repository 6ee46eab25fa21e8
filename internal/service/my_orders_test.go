package service_test

import (
	"context"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/orderid"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	user      = domain.RegisteredUser{ID: userID}
	anonymous = domain.Anonymous{}
)

func (suite *serviceSuite) TestMyOrdersList() {
	tests := []struct {
		name       string
		owner      domain.Owner
		perms      []domain.Permission
		sessionIDs func() []int64
		want       func() []int64
		wantDenied bool
	}{
		{
			name:       "registered without permission: denied",
			owner:      user,
			wantDenied: true,
		},
		{
			name:  "registered: own orders only",
			owner: user,
			perms: []domain.Permission{domain.PermViewMyOrder},
			want:  func() []int64 { return []int64{suite.userOrder.ID} },
		},
		{
			name:  "registered: session ids are ignored",
			owner: user,
			perms: []domain.Permission{domain.PermViewMyOrder},
			sessionIDs: func() []int64 {
				return []int64{suite.anonOrder.ID, suite.otherUserOrder.ID}
			},
			want: func() []int64 { return []int64{suite.userOrder.ID} },
		},
		{
			name:       "anonymous without permission: denied",
			owner:      anonymous,
			wantDenied: true,
		},
		{
			name:  "anonymous: empty session sees nothing",
			owner: anonymous,
			perms: []domain.Permission{domain.PermViewMyOrder},
		},
		{
			name:       "anonymous: session orders",
			owner:      anonymous,
			perms:      []domain.Permission{domain.PermViewMyOrder},
			sessionIDs: func() []int64 { return []int64{suite.otherAnonOrder.ID} },
			want:       func() []int64 { return []int64{suite.otherAnonOrder.ID} },
		},
		{
			name:  "anonymous: registered orders in session are skipped",
			owner: anonymous,
			perms: []domain.Permission{domain.PermViewMyOrder},
			sessionIDs: func() []int64 {
				return []int64{suite.userOrder.ID, suite.anonOrder.ID}
			},
			want: func() []int64 { return []int64{suite.anonOrder.ID} },
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

			orders, count, err := suite.myOrders.List(ctx, nil, firstPage())
			if tt.wantDenied {
				var denied *access.DeniedError
				require.ErrorAs(t, err, &denied)
				assert.Equal(t, domain.IsAnonymous(tt.owner), denied.Anonymous)
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

func (suite *serviceSuite) TestMyOrdersListStatusFilter() {
	t := suite.T()
	ctx := suite.as(user, domain.PermViewMyOrder)

	orders, count, err := suite.myOrders.List(ctx, []domain.OrderStatus{domain.OrderStatusFinished}, firstPage())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, orders)

	_, _, err = suite.myOrders.List(ctx, []domain.OrderStatus{"XX"}, firstPage())
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")
}

func (suite *serviceSuite) TestMyOrdersRetrieve() {
	tests := []struct {
		name      string
		owner     domain.Owner
		perms     []domain.Permission
		order     func() domain.Order
		wantError error
	}{
		{
			name:      "registered without permission: denied",
			owner:     user,
			order:     func() domain.Order { return suite.userOrder },
			wantError: access.ErrDenied,
		},
		{
			name:  "registered: own order",
			owner: user,
			perms: []domain.Permission{domain.PermViewMyOrder},
			order: func() domain.Order { return suite.userOrder },
		},
		{
			name:      "registered: other user order is not found",
			owner:     user,
			perms:     []domain.Permission{domain.PermViewMyOrder},
			order:     func() domain.Order { return suite.otherUserOrder },
			wantError: domain.ErrNotFound,
		},
		{
			name:      "registered: anonymous order is not found",
			owner:     user,
			perms:     []domain.Permission{domain.PermViewMyOrder},
			order:     func() domain.Order { return suite.anonOrder },
			wantError: domain.ErrNotFound,
		},
		{
			name:  "anonymous: order outside session is retrievable",
			owner: anonymous,
			perms: []domain.Permission{domain.PermViewMyOrder},
			order: func() domain.Order { return suite.anonOrder },
		},
		{
			name:      "anonymous: registered order is not found",
			owner:     anonymous,
			perms:     []domain.Permission{domain.PermViewMyOrder},
			order:     func() domain.Order { return suite.userOrder },
			wantError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := suite.as(tt.owner, tt.perms...)
			expected := tt.order()

			actual, err := suite.myOrders.Get(ctx, expected.ID)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, expected.ID, actual.ID)
			assert.Equal(t, expected.Email, actual.Email)
			require.Len(t, actual.Purchases, 1)
			assert.Equal(t, suite.good, actual.Purchases[0].Good)
			assert.True(t, suite.offer.Price.Amount.Equal(actual.Purchases[0].Price.Amount))
		})
	}
}

func (suite *serviceSuite) TestMyOrdersCreate() {
	tests := []struct {
		name      string
		ctx       func() context.Context
		offerIDs  func() []int64
		wantField string
		wantMsg   string
		wantError error
	}{
		{
			name:      "registered without permission: denied",
			ctx:       func() context.Context { return suite.as(user, domain.PermViewMyOrder) },
			offerIDs:  func() []int64 { return []int64{suite.offer.ID} },
			wantError: access.ErrDenied,
		},
		{
			name:      "no offers: fail",
			ctx:       func() context.Context { return suite.as(user, domain.PermModerateMyOrder) },
			offerIDs:  func() []int64 { return nil },
			wantField: "offer_ids",
			wantMsg:   "This list may not be empty.",
		},
		{
			name:      "disabled offer: fail",
			ctx:       func() context.Context { return suite.as(user, domain.PermModerateMyOrder) },
			offerIDs:  func() []int64 { return []int64{suite.offer.ID, suite.disabledOffer.ID} },
			wantField: "offer_ids",
			wantMsg:   domain.MsgOffersUnavailable,
		},
		{
			name:      "unknown offer: fail",
			ctx:       func() context.Context { return suite.as(anonymous, domain.PermModerateMyOrder) },
			offerIDs:  func() []int64 { return []int64{-1} },
			wantField: "offer_ids",
			wantMsg:   domain.MsgOffersUnavailable,
		},
		{
			name:      "repeated offer: fail",
			ctx:       func() context.Context { return suite.as(user, domain.PermModerateMyOrder) },
			offerIDs:  func() []int64 { return []int64{suite.offer.ID, suite.offer.ID} },
			wantField: "offer_ids",
			wantMsg:   domain.MsgOffersUnavailable,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			_, err := suite.myOrders.Create(tt.ctx(), service.MyOrderInput{
				Email:    "new@example.com",
				OfferIDs: tt.offerIDs(),
			})
			require.Error(t, err)

			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, []string{tt.wantMsg}, verr.Fields[tt.wantField])
		})
	}
}

func (suite *serviceSuite) TestMyOrdersCreateRegistered() {
	t := suite.T()
	ctx := suite.as(user, domain.PermModerateMyOrder)

	order, err := suite.myOrders.Create(ctx, service.MyOrderInput{
		Email:    "new@example.com",
		OfferIDs: []int64{suite.offer.ID, suite.offer2.ID},
	})
	require.NoError(t, err)

	assert.Less(t, order.ID, orderid.DefaultLow)
	assert.Equal(t, user, order.Owner)
	assert.Equal(t, domain.OrderStatusDraft, order.Status)
	require.Len(t, order.Purchases, 2)
	assert.Equal(t, suite.good, order.Purchases[0].Good)
	assert.Equal(t, suite.good2, order.Purchases[1].Good)

	assert.Empty(t, session.FromContext(ctx).OrderIDs())
}

func (suite *serviceSuite) TestMyOrdersCreateAnonymous() {
	t := suite.T()
	ctx := suite.as(anonymous, domain.PermModerateMyOrder, domain.PermViewMyOrder)

	order, err := suite.myOrders.Create(ctx, service.MyOrderInput{
		Email:      "anon@example.com",
		EthAddress: "0x" + "ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12",
		OfferIDs:   []int64{suite.offer2.ID},
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, order.ID, orderid.DefaultLow)
	assert.LessOrEqual(t, order.ID, orderid.DefaultHigh)
	assert.True(t, domain.IsAnonymous(order.Owner))
	assert.Equal(t, []int64{order.ID}, session.FromContext(ctx).OrderIDs())

	// a later request from the same session lists it
	later := suite.asSession(anonymous, session.FromContext(ctx).OrderIDs(), domain.PermViewMyOrder)
	orders, _, err := suite.myOrders.List(later, nil, firstPage())
	require.NoError(t, err)
	assert.Equal(t, []int64{order.ID}, orderIDs(orders))

	// a different session does not
	other := suite.as(anonymous, domain.PermViewMyOrder)
	orders, _, err = suite.myOrders.List(other, nil, firstPage())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func (suite *serviceSuite) TestMyOrdersCreateAnonymousTwice() {
	t := suite.T()
	ctx := suite.as(anonymous, domain.PermModerateMyOrder, domain.PermViewMyOrder)

	in := service.MyOrderInput{
		Email:    "anon@example.com",
		OfferIDs: []int64{suite.offer.ID},
	}

	first, err := suite.myOrders.Create(ctx, in)
	require.NoError(t, err)

	second, err := suite.myOrders.Create(ctx, in)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []int64{first.ID, second.ID}, session.FromContext(ctx).OrderIDs())

	later := suite.asSession(anonymous, session.FromContext(ctx).OrderIDs(), domain.PermViewMyOrder)
	for _, created := range []domain.Order{first, second} {
		got, err := suite.myOrders.Get(later, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		require.Len(t, got.Purchases, 1)
		assert.Equal(t, suite.offer.Good.ID, got.Purchases[0].Good.ID)
	}

	orders, count, err := suite.myOrders.List(later, nil, firstPage())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.ElementsMatch(t, []int64{first.ID, second.ID}, orderIDs(orders))
}

func (suite *serviceSuite) TestMyOrdersCheck() {
	tests := []struct {
		name      string
		owner     domain.Owner
		perms     []domain.Permission
		order     func() domain.Order
		wantError error
	}{
		{
			name:      "without permission: denied",
			owner:     user,
			perms:     []domain.Permission{domain.PermViewMyOrder},
			order:     func() domain.Order { return suite.userOrder },
			wantError: access.ErrDenied,
		},
		{
			name:      "foreign order: not found",
			owner:     user,
			perms:     []domain.Permission{domain.PermModerateMyOrder},
			order:     func() domain.Order { return suite.otherUserOrder },
			wantError: domain.ErrNotFound,
		},
		{
			name:      "anonymous on registered order: not found",
			owner:     anonymous,
			perms:     []domain.Permission{domain.PermModerateMyOrder},
			order:     func() domain.Order { return suite.userOrder },
			wantError: domain.ErrNotFound,
		},
		{
			name:  "own order: ok",
			owner: user,
			perms: []domain.Permission{domain.PermModerateMyOrder},
			order: func() domain.Order { return suite.userOrder },
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			err := suite.myOrders.Check(suite.as(tt.owner, tt.perms...), access.ActionUpdate, tt.order().ID)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func (suite *serviceSuite) TestMyOrdersUpdate() {
	tests := []struct {
		name      string
		owner     domain.Owner
		perms     []domain.Permission
		order     func() domain.Order
		wantError error
	}{
		{
			name:      "registered without permission: denied",
			owner:     user,
			perms:     []domain.Permission{domain.PermViewMyOrder},
			order:     func() domain.Order { return suite.userOrder },
			wantError: access.ErrDenied,
		},
		{
			name:  "registered: own order",
			owner: user,
			perms: []domain.Permission{domain.PermModerateMyOrder},
			order: func() domain.Order { return suite.userOrder },
		},
		{
			name:      "registered: other user order is not found",
			owner:     user,
			perms:     []domain.Permission{domain.PermModerateMyOrder},
			order:     func() domain.Order { return suite.otherUserOrder },
			wantError: domain.ErrNotFound,
		},
		{
			name:  "anonymous: any anonymous order",
			owner: anonymous,
			perms: []domain.Permission{domain.PermModerateMyOrder},
			order: func() domain.Order { return suite.anonOrder },
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := suite.as(tt.owner, tt.perms...)
			orderID := tt.order().ID

			updated, err := suite.myOrders.Update(ctx, orderID, service.MyOrderInput{
				Email:    "new@example.com",
				OfferIDs: []int64{suite.offer2.ID},
			})
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, "new@example.com", updated.Email)
			assert.Equal(t, domain.OrderStatusDraft, updated.Status)
			require.Len(t, updated.Purchases, 1)
			assert.Equal(t, suite.good2, updated.Purchases[0].Good)
		})
	}
}

func (suite *serviceSuite) TestMyOrdersPartialUpdateKeepsPurchases() {
	t := suite.T()
	ctx := suite.as(user, domain.PermModerateMyOrder)

	email := "patched@example.com"
	updated, err := suite.myOrders.PartialUpdate(ctx, suite.userOrder.ID, service.MyOrderPatch{Email: &email})
	require.NoError(t, err)

	assert.Equal(t, email, updated.Email)
	require.Len(t, updated.Purchases, 1)
	assert.Equal(t, suite.userOrder.Purchases[0].ID, updated.Purchases[0].ID)

	// an empty offer list keeps purchases as well
	updated, err = suite.myOrders.Update(ctx, suite.userOrder.ID, service.MyOrderInput{Email: email})
	require.NoError(t, err)
	require.Len(t, updated.Purchases, 1)
	assert.Equal(t, suite.userOrder.Purchases[0].ID, updated.Purchases[0].ID)
}

func (suite *serviceSuite) TestMyOrdersDestroy() {
	t := suite.T()

	err := suite.myOrders.Destroy(suite.as(user, domain.PermViewMyOrder), suite.userOrder.ID)
	require.ErrorIs(t, err, access.ErrDenied)

	ctx := suite.as(user, domain.PermModerateMyOrder)

	err = suite.myOrders.Destroy(ctx, suite.otherUserOrder.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, suite.myOrders.Destroy(ctx, suite.userOrder.ID))

	_, err = suite.orderRepo.GetOrder(t.Context(), suite.userOrder.ID, domain.AllOrders())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
