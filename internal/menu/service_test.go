package menu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListAvailableByCanteen(ctx context.Context, canteenID string) ([]*MenuItem, error) {
	args := m.Called(ctx, canteenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*MenuItem), args.Error(1)
}

func (m *MockRepository) ListByCanteen(ctx context.Context, canteenID string) ([]*MenuItem, error) {
	args := m.Called(ctx, canteenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*MenuItem), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MenuItem), args.Error(1)
}

func (m *MockRepository) GetByIDs(ctx context.Context, ids []string) ([]*MenuItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*MenuItem), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*MenuItem, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MenuItem), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id string, params UpdateParams) (*MenuItem, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MenuItem), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Update_OwnershipEnforced(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, "item-1").
		Return(&MenuItem{ID: "item-1", CanteenID: "cant-other"}, nil)

	_, err := svc.Update(context.Background(), "cant-1", "item-1", UpdateParams{})
	assert.ErrorIs(t, err, ErrNotCanteenItem)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	name := "Masala Dosa"
	repo.On("GetByID", mock.Anything, "item-1").
		Return(&MenuItem{ID: "item-1", CanteenID: "cant-1"}, nil)
	repo.On("Update", mock.Anything, "item-1", UpdateParams{Name: &name}).
		Return(&MenuItem{ID: "item-1", CanteenID: "cant-1", Name: name}, nil)

	m, err := svc.Update(context.Background(), "cant-1", "item-1", UpdateParams{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Masala Dosa", m.Name)
}

func TestService_Update_NegativePrice(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	price := -2.5
	repo.On("GetByID", mock.Anything, "item-1").
		Return(&MenuItem{ID: "item-1", CanteenID: "cant-1"}, nil)

	_, err := svc.Update(context.Background(), "cant-1", "item-1", UpdateParams{Price: &price})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestService_Delete_OwnershipEnforced(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, "item-1").
		Return(&MenuItem{ID: "item-1", CanteenID: "cant-other"}, nil)

	err := svc.Delete(context.Background(), "cant-1", "item-1")
	assert.ErrorIs(t, err, ErrNotCanteenItem)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_Create_NegativePrice(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateParams{CanteenID: "cant-1", Name: "Tea", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}
