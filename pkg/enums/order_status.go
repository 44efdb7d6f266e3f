package enums

import "fmt"

// OrderStatus represents the terminal state an order is created with.
// Orders placed through the simulated payment path land in placed; orders
// created against the payment gateway land in pending. Neither state
// transitions afterwards.
type OrderStatus string

const (
	OrderStatusPlaced  OrderStatus = "placed"
	OrderStatusPending OrderStatus = "pending"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusPending,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts a raw string into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
