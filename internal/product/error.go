package product

import "errors"

var (
	// -- Validation & Input --
	ErrEmptyName       = errors.New("product name cannot be empty")
	ErrInvalidPrice    = errors.New("product price must be positive")
	ErrInvalidDiscount = errors.New("product discount must be between 0 and 100")

	// -- Resource State --
	ErrProductNotFound  = errors.New("product not found")
	ErrNoFeaturedItem   = errors.New("no featured product configured")
	ErrNoFieldsToUpdate = errors.New("no product fields to update")
)
