package service

import (
	"context"

	"github.com/pageza/masterchef/backend/internal/model"
	"github.com/pageza/masterchef/backend/internal/types"
)

// IExtractorService defines the interface for recipe extraction
type IExtractorService interface {
	Extract(ctx context.Context, collectionID, input string) (*model.Recipe, error)
}

// IRecipeService defines the interface for saved recipe operations
type IRecipeService interface {
	SaveRecipe(ctx context.Context, collectionID string, recipe *model.Recipe) (*model.Recipe, bool, error)
	ListRecipes(ctx context.Context, collectionID string) ([]*model.Recipe, error)
	SearchRecipes(ctx context.Context, collectionID, query string) ([]*model.Recipe, error)
	GetRecipe(ctx context.Context, collectionID, id string) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, collectionID, id string) (bool, error)
}

// ISessionService defines the interface for collection sessions
type ISessionService interface {
	NewSession() (*types.Session, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IExportService defines the interface for collection exports
type IExportService interface {
	Export(ctx context.Context, collectionID string) (*ExportResult, error)
}

var (
	_ IExtractorService = (*ExtractorService)(nil)
	_ IRecipeService    = (*RecipeService)(nil)
	_ ISessionService   = (*SessionService)(nil)
	_ IExportService    = (*ExportService)(nil)
	_ DraftStore        = (*RedisDraftStore)(nil)
	_ DraftStore        = (*MemoryDraftStore)(nil)
)
