package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/masterchef/backend/internal/model"
	"github.com/pageza/masterchef/backend/internal/service"
)

// MockContentGenerator is a mock implementation of the AI content generator
type MockContentGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockContentGenerator) Generate(ctx context.Context, prompt string) (*service.GenerationResult, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerationResult), args.Error(1)
}

// MockExtractorService is a mock implementation of the extractor service
type MockExtractorService struct {
	mock.Mock
}

// Extract mocks the Extract method
func (m *MockExtractorService) Extract(ctx context.Context, collectionID, input string) (*model.Recipe, error) {
	args := m.Called(ctx, collectionID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// MockExportService is a mock implementation of the export service
type MockExportService struct {
	mock.Mock
}

// Export mocks the Export method
func (m *MockExportService) Export(ctx context.Context, collectionID string) (*service.ExportResult, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

var (
	_ service.ContentGenerator  = (*MockContentGenerator)(nil)
	_ service.IExtractorService = (*MockExtractorService)(nil)
	_ service.IExportService    = (*MockExportService)(nil)
	_ service.IRecipeService    = (*MockRecipeService)(nil)
)
