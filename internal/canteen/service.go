package canteen

import (
	"context"

	"campuseats-be/internal/apperr"
	"campuseats-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ListOpen(ctx context.Context) ([]*Canteen, error)
	GetByID(ctx context.Context, id string) (*Canteen, error)
	Create(ctx context.Context, params CreateParams) (*Canteen, error)
	UpdateSettings(ctx context.Context, canteenID string, params UpdateSettingsParams) (*Canteen, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListOpen(ctx context.Context) ([]*Canteen, error) {
	return s.repo.ListOpen(ctx)
}

func (s *service) GetByID(ctx context.Context, id string) (*Canteen, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Canteen, error) {
	if params.Name == "" || params.Location == "" {
		return nil, apperr.Validation("canteen name and location are required")
	}

	c, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("canteen created",
		zap.String("canteen_id", c.ID),
		zap.String("name", c.Name),
	)

	return c, nil
}

func (s *service) UpdateSettings(ctx context.Context, canteenID string, params UpdateSettingsParams) (*Canteen, error) {
	return s.repo.UpdateSettings(ctx, canteenID, params)
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
