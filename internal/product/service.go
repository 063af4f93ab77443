package product

import (
	"context"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for the menu catalog.
type Service interface {
	GetList(ctx context.Context, opts ProductQueryOptions) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetFeatured(ctx context.Context) (*Product, error)
	Create(ctx context.Context, input NewProductInput) (*Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetList(ctx context.Context, opts ProductQueryOptions) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetList"),
	)
	log.Info("GetList started")

	products, err := s.repo.GetList(ctx, opts)
	if err != nil {
		log.Error("failed to get products", zap.Error(err))
		return nil, err
	}

	log.Info("GetList success", zap.Int("count", len(products)))
	return products, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// GetFeatured returns the homepage promotion item, or ErrNoFeaturedItem
// when the admin has not flagged one.
func (s *service) GetFeatured(ctx context.Context) (*Product, error) {
	p, err := s.repo.GetFeatured(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoFeaturedItem
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, input NewProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("product_name", input.Name),
	)
	log.Info("Create started")

	if err := validateProductInput(input.Name, input.Price, input.Discount); err != nil {
		log.Warn("product validation failed", zap.Error(err))
		return nil, err
	}

	p, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("Create success", zap.String("product_id", p.ID))
	return p, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("product_id", id),
	)
	log.Info("Update started")

	if input.Name != nil && *input.Name == "" {
		return nil, ErrEmptyName
	}
	if input.Price != nil && *input.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.Discount != nil && (*input.Discount < 0 || *input.Discount > 100) {
		return nil, ErrInvalidDiscount
	}

	p, err := s.repo.Update(ctx, id, input)
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.String("product_id", id),
	)
	log.Info("Delete started")

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return err
	}

	return nil
}

func validateProductInput(name string, price int64, discount int32) error {
	if name == "" {
		return ErrEmptyName
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	if discount < 0 || discount > 100 {
		return ErrInvalidDiscount
	}
	return nil
}
