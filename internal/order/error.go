package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrNoItems       = errors.New("order has no items")

	// ErrTotalMismatch is returned when the submitted total does not equal
	// the sum of price x quantity over the order items.
	ErrTotalMismatch = errors.New("order total does not match items")
)
