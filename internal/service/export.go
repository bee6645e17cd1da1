package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pageza/masterchef/backend/internal/model"
)

// ExportURLExpiry is how long an export download link stays valid
const ExportURLExpiry = 15 * time.Minute

// ObjectStore is the subset of S3 the export needs
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	PresignGet(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// ExportResult locates an uploaded export
type ExportResult struct {
	Key     string `json:"key"`
	URL     string `json:"url"`
	Recipes int    `json:"recipes"`
}

type exportDocument struct {
	CollectionID string          `json:"collection_id"`
	ExportedAt   time.Time       `json:"exported_at"`
	Recipes      []*model.Recipe `json:"recipes"`
}

// ExportService uploads a collection as a JSON document
type ExportService struct {
	recipes *RecipeService
	store   ObjectStore
	now     func() time.Time
}

// NewExportService creates a new ExportService instance
func NewExportService(recipes *RecipeService, store ObjectStore) *ExportService {
	return &ExportService{recipes: recipes, store: store, now: time.Now}
}

// Export uploads the collection and returns a presigned download link
func (s *ExportService) Export(ctx context.Context, collectionID string) (*ExportResult, error) {
	recipes, err := s.recipes.ListRecipes(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	body, err := json.MarshalIndent(exportDocument{
		CollectionID: collectionID,
		ExportedAt:   now,
		Recipes:      recipes,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%d.json", collectionID, now.Unix())
	if err := s.store.PutObject(ctx, key, body, "application/json"); err != nil {
		return nil, err
	}

	url, err := s.store.PresignGet(ctx, key, ExportURLExpiry)
	if err != nil {
		return nil, err
	}

	return &ExportResult{Key: key, URL: url, Recipes: len(recipes)}, nil
}
