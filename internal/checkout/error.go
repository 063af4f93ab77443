package checkout

import "errors"

var (
	// ErrSubmitInFlight is returned when a submission is attempted while an
	// earlier one for the same session has not finished.
	ErrSubmitInFlight = errors.New("order submission already in progress")

	ErrEmptyCart = errors.New("cannot submit an empty cart")
)
