package settings

import (
	"context"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetSettings(ctx context.Context) (*Settings, error)
	UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*Settings, error)
}

// service implements the Service interface
type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetSettings(ctx context.Context) (*Settings, error) {
	return s.repo.Get(ctx)
}

func (s *service) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*Settings, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateSettings"),
	)
	log.Info("UpdateSettings started")

	if input.MinOrderAmount != nil && *input.MinOrderAmount < 0 {
		return nil, ErrNegativeAmount
	}
	if input.DeliveryFee != nil && *input.DeliveryFee < 0 {
		return nil, ErrNegativeAmount
	}

	updated, err := s.repo.Update(ctx, input)
	if err != nil {
		log.Error("failed to update settings", zap.Error(err))
		return nil, err
	}

	log.Info("UpdateSettings success")
	return updated, nil
}
