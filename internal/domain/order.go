package domain

import (
	"time"
)

type Order struct {
	ID         int64
	Owner      Owner
	Email      string
	EthAddress string
	Status     OrderStatus
	Purchases  []Purchase

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Purchase is a price snapshot of a good taken when the order was placed.
// Later offer price changes do not affect it.
type Purchase struct {
	ID      int64
	OrderID int64
	Good    Good
	Price   Money

	CreatedAt time.Time
}

func PurchaseFromOffer(offer Offer) Purchase {
	return Purchase{
		Good:  offer.Good,
		Price: offer.Price,
	}
}

type OrderStatusChange struct {
	Status    OrderStatus
	CreatedAt time.Time
}
