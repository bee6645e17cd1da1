package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/masterchef/backend/internal/model"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// SaveRecipe mocks the SaveRecipe method
func (m *MockRecipeService) SaveRecipe(ctx context.Context, collectionID string, recipe *model.Recipe) (*model.Recipe, bool, error) {
	args := m.Called(ctx, collectionID, recipe)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Recipe), args.Bool(1), args.Error(2)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, collectionID string) ([]*model.Recipe, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

// SearchRecipes mocks the SearchRecipes method
func (m *MockRecipeService) SearchRecipes(ctx context.Context, collectionID, query string) ([]*model.Recipe, error) {
	args := m.Called(ctx, collectionID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, collectionID, id string) (*model.Recipe, error) {
	args := m.Called(ctx, collectionID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, collectionID, id string) (bool, error) {
	args := m.Called(ctx, collectionID, id)
	return args.Bool(0), args.Error(1)
}
