package handlers

import (
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// prices are rendered with the full storage precision, e.g. "1.000000"
func formatPrice(m domain.Money) string {
	return m.Amount.StringFixed(domain.PriceDecimalPlaces)
}

type GoodResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type GoodRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type GoodPatchRequest struct {
	Name *string `json:"name" validate:"omitempty,max=255"`
}

func toGoodResponse(g domain.Good) GoodResponse {
	return GoodResponse{ID: g.ID, Name: g.Name}
}

type OfferResponse struct {
	ID       int64        `json:"id"`
	Good     GoodResponse `json:"good"`
	GoodID   int64        `json:"good_id"`
	Price    string       `json:"price"`
	Currency string       `json:"currency"`
	Enabled  bool         `json:"enabled"`
}

type OfferRequest struct {
	GoodID  int64            `json:"good_id" validate:"required"`
	Price   *decimal.Decimal `json:"price" validate:"required"`
	Enabled *bool            `json:"enabled"`
}

type OfferPatchRequest struct {
	GoodID  *int64           `json:"good_id"`
	Price   *decimal.Decimal `json:"price"`
	Enabled *bool            `json:"enabled"`
}

func toOfferResponse(o domain.Offer) OfferResponse {
	return OfferResponse{
		ID:       o.ID,
		Good:     toGoodResponse(o.Good),
		GoodID:   o.Good.ID,
		Price:    formatPrice(o.Price),
		Currency: o.Price.Currency.String(),
		Enabled:  o.Enabled,
	}
}

type PurchaseResponse struct {
	ID     int64        `json:"id"`
	Good   GoodResponse `json:"good"`
	GoodID int64        `json:"good_id"`
	Price  string       `json:"price"`
	Order  int64        `json:"order"`
}

type PurchaseRequest struct {
	GoodID int64            `json:"good_id" validate:"required"`
	Price  *decimal.Decimal `json:"price" validate:"required"`
}

func toPurchaseResponse(p domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:     p.ID,
		Good:   toGoodResponse(p.Good),
		GoodID: p.Good.ID,
		Price:  formatPrice(p.Price),
		Order:  p.OrderID,
	}
}

func toPurchaseResponses(purchases []domain.Purchase) []PurchaseResponse {
	return mapAll(purchases, toPurchaseResponse)
}

// mapAll never returns nil, so empty collections render as [].
func mapAll[T, R any](in []T, f func(T) R) []R {
	if len(in) == 0 {
		return []R{}
	}
	return lo.Map(in, func(v T, _ int) R { return f(v) })
}

type OrderResponse struct {
	ID         int64              `json:"id"`
	Purchases  []PurchaseResponse `json:"purchases"`
	User       *int64             `json:"user"`
	Email      string             `json:"email"`
	EthAddress string             `json:"eth_address"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type OrderRequest struct {
	Email      string            `json:"email" validate:"required,email"`
	EthAddress string            `json:"eth_address" validate:"omitempty,eth_addr"`
	Status     string            `json:"status" validate:"required,oneof=DR PR CA FI"`
	Purchases  []PurchaseRequest `json:"purchases" validate:"required,dive"`
}

type OrderPatchRequest struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	EthAddress *string `json:"eth_address" validate:"omitempty,eth_addr"`
	Status     *string `json:"status" validate:"omitempty,oneof=DR PR CA FI"`
}

func toOrderResponse(o domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:         o.ID,
		Purchases:  toPurchaseResponses(o.Purchases),
		Email:      o.Email,
		EthAddress: o.EthAddress,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	if id, ok := domain.UserID(o.Owner); ok {
		resp.User = &id
	}
	return resp
}

type StatusChangeResponse struct {
	Status    string    `json:"status"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

func toStatusChangeResponse(c domain.OrderStatusChange) StatusChangeResponse {
	return StatusChangeResponse{
		Status:    string(c.Status),
		Label:     c.Status.Label(),
		CreatedAt: c.CreatedAt,
	}
}

type MyOrderResponse struct {
	ID         int64              `json:"id"`
	Email      string             `json:"email"`
	EthAddress string             `json:"eth_address"`
	Purchases  []PurchaseResponse `json:"purchases"`
	Status     string             `json:"status"`
}

// MyOrderRequest serves create and update. Status is read-only for buyers.
type MyOrderRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	EthAddress string  `json:"eth_address" validate:"omitempty,eth_addr"`
	OfferIDs   []int64 `json:"offer_ids" validate:"required,min=1"`
}

type MyOrderPatchRequest struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	EthAddress *string `json:"eth_address" validate:"omitempty,eth_addr"`
	OfferIDs   []int64 `json:"offer_ids" validate:"omitempty,min=1"`
}

func toMyOrderResponse(o domain.Order) MyOrderResponse {
	return MyOrderResponse{
		ID:         o.ID,
		Email:      o.Email,
		EthAddress: o.EthAddress,
		Purchases:  toPurchaseResponses(o.Purchases),
		Status:     string(o.Status),
	}
}

type SettingResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type SettingRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Value string `json:"value"`
}

type SettingPatchRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=255"`
	Value *string `json:"value"`
}

func toSettingResponse(s domain.Setting) SettingResponse {
	return SettingResponse(s)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
