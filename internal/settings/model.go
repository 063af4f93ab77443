package settings

import "time"

// Settings is the single-row café profile shown on the storefront and
// edited from the admin back-office.
type Settings struct {
	ID               string    `json:"id"`
	CafeName         string    `json:"cafe_name"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	WorkingHours     string    `json:"working_hours"`
	Description      string    `json:"description"`
	IsDeliveryActive bool      `json:"is_delivery_active"`
	MinOrderAmount   int64     `json:"min_order_amount"`
	DeliveryFee      int64     `json:"delivery_fee"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type UpdateSettingsInput struct {
	CafeName         *string `json:"cafe_name"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	WorkingHours     *string `json:"working_hours"`
	Description      *string `json:"description"`
	IsDeliveryActive *bool   `json:"is_delivery_active"`
	MinOrderAmount   *int64  `json:"min_order_amount"`
	DeliveryFee      *int64  `json:"delivery_fee"`
}
