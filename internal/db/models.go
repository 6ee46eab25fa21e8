package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Good struct {
	ID   int64
	Name string
}

type Offer struct {
	ID            int64
	GoodID        int64
	GoodName      string
	PriceAmount   decimal.Decimal
	PriceCurrency string
	Enabled       bool
}

type Order struct {
	ID         int64
	UserID     *int64
	Email      string
	EthAddress string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Purchase struct {
	ID            int64
	OrderID       int64
	GoodID        int64
	GoodName      string
	PriceAmount   decimal.Decimal
	PriceCurrency string
	CreatedAt     time.Time
}

type OrderStatus struct {
	OrderID   int64
	Status    string
	CreatedAt time.Time
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	EthAddress   string
	IsActive     bool
	CreatedAt    time.Time
}

type Session struct {
	ID        uuid.UUID
	Data      []byte
	ExpiresAt time.Time
}

type Setting struct {
	Name  string
	Value string
}

// OrderScope mirrors domain.OrderScope as query parameters.
// A nil UserID and false AnonymousOnly leave ownership unrestricted.
type OrderScope struct {
	AnonymousOnly bool
	UserID        *int64
	RestrictIDs   bool
	IDs           []int64
}
