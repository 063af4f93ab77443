package api

import (
	"context"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/cart"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/checkout"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/order"
)

// orderSubmitter adapts the order service to the checkout flow's Submitter:
// the validated form plus the cart snapshot become an order submission.
type orderSubmitter struct {
	orders order.Service
}

func (s *orderSubmitter) Submit(ctx context.Context, form checkout.Form, lines []cart.Line, total int64) (string, error) {
	items := make([]order.NewOrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, order.NewOrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    int32(line.Quantity),
			Price:       line.Price,
		})
	}

	o, err := s.orders.SubmitOrder(ctx, order.NewOrderInput{
		CustomerName: form.Name,
		Phone:        form.Phone,
		Address:      form.Address,
		Total:        total,
		Items:        items,
	})
	if err != nil {
		return "", err
	}

	return o.ID, nil
}
