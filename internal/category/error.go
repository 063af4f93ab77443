package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrEmptyName        = errors.New("category name cannot be empty")

	// Postgres unique_violation, raised when a slug already exists.
	PgUniqueViolation = "23505"
)
