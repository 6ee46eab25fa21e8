package domain

import "errors"

type OrderStatus string

// remember to add new statuses to the validOrderStatuses map
const (
	OrderStatusDraft      OrderStatus = "DR"
	OrderStatusProcessing OrderStatus = "PR"
	OrderStatusCanceled   OrderStatus = "CA"
	OrderStatusFinished   OrderStatus = "FI"
)

var validOrderStatuses = map[OrderStatus]string{
	OrderStatusDraft:      "Draft",
	OrderStatusProcessing: "Processing",
	OrderStatusCanceled:   "Canceled",
	OrderStatusFinished:   "Finished",
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid order status")
}

func (s OrderStatus) Label() string {
	return validOrderStatuses[s]
}

func OrderStatuses() []OrderStatus {
	result := make([]OrderStatus, 0, len(validOrderStatuses))
	for status := range validOrderStatuses {
		result = append(result, status)
	}
	return result
}
