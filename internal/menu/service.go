package menu

import (
	"context"

	"campuseats-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	AvailableMenu(ctx context.Context, canteenID string) ([]*MenuItem, error)
	ManagerMenu(ctx context.Context, canteenID string) ([]*MenuItem, error)
	Create(ctx context.Context, params CreateParams) (*MenuItem, error)
	Update(ctx context.Context, canteenID, itemID string, params UpdateParams) (*MenuItem, error)
	Delete(ctx context.Context, canteenID, itemID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AvailableMenu is the public menu view: available items only.
func (s *service) AvailableMenu(ctx context.Context, canteenID string) ([]*MenuItem, error) {
	return s.repo.ListAvailableByCanteen(ctx, canteenID)
}

// ManagerMenu includes unavailable items so managers can toggle them back.
func (s *service) ManagerMenu(ctx context.Context, canteenID string) ([]*MenuItem, error) {
	return s.repo.ListByCanteen(ctx, canteenID)
}

func (s *service) Create(ctx context.Context, params CreateParams) (*MenuItem, error) {
	if params.Price < 0 {
		return nil, ErrInvalidPrice
	}

	m, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("menu item created",
		zap.String("item_id", m.ID),
		zap.String("canteen_id", m.CanteenID),
	)

	return m, nil
}

// Update enforces that the item belongs to the acting manager's canteen
// before touching it.
func (s *service) Update(ctx context.Context, canteenID, itemID string, params UpdateParams) (*MenuItem, error) {
	existing, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if existing.CanteenID != canteenID {
		return nil, ErrNotCanteenItem
	}

	if params.Price != nil && *params.Price < 0 {
		return nil, ErrInvalidPrice
	}

	return s.repo.Update(ctx, itemID, params)
}

func (s *service) Delete(ctx context.Context, canteenID, itemID string) error {
	existing, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if existing.CanteenID != canteenID {
		return ErrNotCanteenItem
	}

	return s.repo.Delete(ctx, itemID)
}
