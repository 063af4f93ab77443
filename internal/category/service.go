package category

import (
	"context"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/logger"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/utils"

	"go.uber.org/zap"
)

// Service defines the business logic for menu categories.
type Service interface {
	GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	AddCategory(ctx context.Context, name string) (*Category, error)
	UpdateCategory(ctx context.Context, id, name string) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// service implements the Service interface
type service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetCategories retrieves all categories
func (s *service) GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)
	log.Info("GetCategories started")

	categories, err := s.repo.GetCategories(ctx, filter, limit, page)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	log.Info("GetCategories success", zap.Int("count", len(categories)))
	return categories, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	cat, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}
	return cat, nil
}

func (s *service) AddCategory(ctx context.Context, name string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
		zap.String("name", name),
	)
	log.Info("AddCategory started")

	if name == "" {
		return nil, ErrEmptyName
	}

	category, err := s.repo.AddCategory(ctx, name, utils.Slugify(name))
	if err != nil {
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}

	log.Info("AddCategory success", zap.String("category_id", category.ID))
	return category, nil
}

func (s *service) UpdateCategory(ctx context.Context, id, name string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateCategory"),
		zap.String("category_id", id),
	)
	log.Info("UpdateCategory started")

	if name == "" {
		return nil, ErrEmptyName
	}

	category, err := s.repo.UpdateCategory(ctx, id, name, utils.Slugify(name))
	if err != nil {
		log.Error("failed to update category", zap.Error(err))
		return nil, err
	}

	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteCategory"),
		zap.String("category_id", id),
	)
	log.Info("DeleteCategory started")

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		log.Error("failed to delete category", zap.Error(err))
		return err
	}

	return nil
}
