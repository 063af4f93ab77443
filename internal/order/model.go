package order

import "time"

// Status is the order workflow position. Orders enter as StatusNew and move
// forward through the kitchen and delivery steps.
type Status string

const (
	StatusNew        Status = "new"
	StatusPreparing  Status = "preparing"
	StatusDelivering Status = "delivering"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusPreparing, StatusDelivering, StatusCompleted:
		return true
	}
	return false
}

// OrderItem is one line of a placed order, frozen at submission time.
type OrderItem struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
	Price       int64  `json:"price"`
}

// Order is immutable once created except for its status, which the admin
// workflow advances.
type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customer_name"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	Total        int64       `json:"total"`
	Status       Status      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	Items        []OrderItem `json:"items,omitempty"`
}

type NewOrderItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
	Price       int64  `json:"price"`
}

type NewOrderInput struct {
	CustomerName string         `json:"customer_name"`
	Phone        string         `json:"phone"`
	Address      string         `json:"address"`
	Total        int64          `json:"total"`
	Items        []NewOrderItem `json:"items"`
}

type OrderQueryOptions struct {
	Status *Status
	Search *string
	Limit  *int32
	Page   *int32
}
