package settings

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const settingsColumns = `
	id, cafe_name, phone, address, working_hours, description,
	is_delivery_active, min_order_amount, delivery_fee, updated_at
`

type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, input UpdateSettingsInput) (*Settings, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Get returns the single settings row.
func (r *repository) Get(ctx context.Context) (*Settings, error) {
	query := `SELECT ` + settingsColumns + ` FROM cafe_settings LIMIT 1`

	var s Settings
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.ID,
		&s.CafeName,
		&s.Phone,
		&s.Address,
		&s.WorkingHours,
		&s.Description,
		&s.IsDeliveryActive,
		&s.MinOrderAmount,
		&s.DeliveryFee,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) Update(ctx context.Context, input UpdateSettingsInput) (*Settings, error) {
	set := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if input.CafeName != nil {
		addSet("cafe_name", *input.CafeName)
	}
	if input.Phone != nil {
		addSet("phone", *input.Phone)
	}
	if input.Address != nil {
		addSet("address", *input.Address)
	}
	if input.WorkingHours != nil {
		addSet("working_hours", *input.WorkingHours)
	}
	if input.Description != nil {
		addSet("description", *input.Description)
	}
	if input.IsDeliveryActive != nil {
		addSet("is_delivery_active", *input.IsDeliveryActive)
	}
	if input.MinOrderAmount != nil {
		addSet("min_order_amount", *input.MinOrderAmount)
	}
	if input.DeliveryFee != nil {
		addSet("delivery_fee", *input.DeliveryFee)
	}

	if len(set) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	set = append(set, "updated_at = NOW()")

	query := `
	UPDATE cafe_settings
	SET ` + strings.Join(set, ", ") + `
	RETURNING ` + settingsColumns

	var s Settings
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.CafeName,
		&s.Phone,
		&s.Address,
		&s.WorkingHours,
		&s.Description,
		&s.IsDeliveryActive,
		&s.MinOrderAmount,
		&s.DeliveryFee,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}
