package notify

import (
	"fmt"
	"time"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/order"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/utils"
)

// OrderCreatedEvent is the payload published for every accepted order and
// consumed by admin notification clients.
type OrderCreatedEvent struct {
	OrderID      string    `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	Total        int64     `json:"total"`
	ItemCount    int32     `json:"item_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func EventFromOrder(o *order.Order) OrderCreatedEvent {
	var count int32
	for _, item := range o.Items {
		count += item.Quantity
	}

	return OrderCreatedEvent{
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		Total:        o.Total,
		ItemCount:    count,
		CreatedAt:    o.CreatedAt,
	}
}

// AlertText renders the toast line shown to admin viewers.
func (e OrderCreatedEvent) AlertText() string {
	return fmt.Sprintf("Yangi buyurtma! %s - %s", e.CustomerName, utils.FormatPrice(e.Total))
}

// Tone is one step of the audible alert.
type Tone struct {
	FrequencyHz int `json:"frequency_hz"`
	DurationMs  int `json:"duration_ms"`
}

// AlertTones is the two-tone chime played when a new order arrives.
func AlertTones() []Tone {
	return []Tone{
		{FrequencyHz: 800, DurationMs: 200},
		{FrequencyHz: 1000, DurationMs: 200},
	}
}
