package order

import (
	"context"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/logger"

	"go.uber.org/zap"
)

// Publisher announces newly created orders to the notification channel.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, o *Order) error
}

// Service defines the business logic for order submission and the admin
// order workflow.
type Service interface {
	SubmitOrder(ctx context.Context, input NewOrderInput) (*Order, error)
	GetOrders(ctx context.Context, opts OrderQueryOptions) ([]*Order, error)
	GetOrderDetail(ctx context.Context, id string) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status Status) error
}

// service implements the Service interface
type service struct {
	repo      Repository
	publisher Publisher
}

// NewService creates a new order service. publisher may be nil when no
// notification channel is configured.
func NewService(repo Repository, publisher Publisher) Service {
	return &service{repo: repo, publisher: publisher}
}

// SubmitOrder verifies the submitted total against the item lines, persists
// the order, and announces it. The announcement is best-effort: a publish
// failure is logged but never fails an already persisted order.
func (s *service) SubmitOrder(ctx context.Context, input NewOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SubmitOrder"),
		zap.String("customer", input.CustomerName),
	)
	log.Info("SubmitOrder started")

	if len(input.Items) == 0 {
		return nil, ErrNoItems
	}

	var sum int64
	for _, item := range input.Items {
		if item.Quantity < 1 || item.Price < 0 {
			return nil, ErrTotalMismatch
		}
		sum += item.Price * int64(item.Quantity)
	}
	if sum != input.Total {
		log.Warn("total mismatch",
			zap.Int64("submitted", input.Total),
			zap.Int64("computed", sum),
		)
		return nil, ErrTotalMismatch
	}

	o, err := s.repo.CreateOrderTx(ctx, input)
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, o); err != nil {
			log.Warn("order created but notification publish failed",
				zap.String("order_id", o.ID),
				zap.Error(err),
			)
		}
	}

	log.Info("SubmitOrder success",
		zap.String("order_id", o.ID),
		zap.Int64("total", o.Total),
	)
	return o, nil
}

func (s *service) GetOrders(ctx context.Context, opts OrderQueryOptions) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetOrders"),
	)

	if opts.Status != nil && !opts.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	orders, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to list orders", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

func (s *service) GetOrderDetail(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, id string, status Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", id),
		zap.String("status", string(status)),
	)
	log.Info("UpdateOrderStatus started")

	if !status.Valid() {
		return ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return err
	}

	return nil
}
