package product

import "time"

// Product is a sellable menu entry. Price is in the smallest currency unit.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Image       *string   `json:"image,omitempty"`
	CategoryID  *string   `json:"category_id,omitempty"`
	IsHot       bool      `json:"is_hot"`
	IsNew       bool      `json:"is_new"`
	IsFeatured  bool      `json:"is_featured"`
	Discount    int32     `json:"discount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	CategoryName *string `json:"category_name,omitempty"`
	CategorySlug *string `json:"category_slug,omitempty"`
}

// EffectivePrice is the price the storefront displays and charges:
// floor(price * (100 - discount) / 100) when a discount is set.
func (p *Product) EffectivePrice() int64 {
	if p.Discount <= 0 || p.Discount > 100 {
		return p.Price
	}
	return p.Price * int64(100-p.Discount) / 100
}

type NewProductInput struct {
	Name        string
	Description *string
	Price       int64
	Image       *string
	CategoryID  *string
	IsHot       bool
	IsNew       bool
	IsFeatured  bool
	Discount    int32
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *int64
	Image       *string
	CategoryID  *string
	IsHot       *bool
	IsNew       *bool
	IsFeatured  *bool
	Discount    *int32
}

type ProductQueryOptions struct {
	CategorySlug *string
	Limit        *int32
	Page         *int32
}
