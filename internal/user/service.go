package user

import (
	"context"
	"errors"

	"campuseats-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, name, email, password string) (string, *User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	CreateManager(ctx context.Context, name, email, password, canteenID string) (*User, error)
	CountStudents(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register creates a student account. Manager accounts are only created
// through the admin flow.
func (s *service) Register(ctx context.Context, name, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u, err := s.repo.Create(ctx, &User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     RoleStudent,
	})
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return "", nil, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.CanteenID)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("register service completed",
		zap.String("user_id", u.ID),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPasswordHash(password, u.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.CanteenID)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateManager creates a manager account bound to a canteen. The caller
// is responsible for verifying the canteen exists; managers never log in
// without one.
func (s *service) CreateManager(ctx context.Context, name, email, password, canteenID string) (*User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, &User{
		Name:      name,
		Email:     email,
		Password:  hashed,
		Role:      RoleManager,
		CanteenID: &canteenID,
	})
	if err != nil {
		log.Error("failed to create manager", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	log.Info("manager created",
		zap.String("user_id", u.ID),
		zap.String("canteen_id", canteenID),
	)

	return u, nil
}

func (s *service) CountStudents(ctx context.Context) (int64, error) {
	return s.repo.CountByRole(ctx, RoleStudent)
}
