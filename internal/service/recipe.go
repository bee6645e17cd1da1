package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/masterchef/backend/internal/logger"
	"github.com/pageza/masterchef/backend/internal/model"
)

// RecipeService handles saved recipe operations, always scoped to one collection
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// SaveRecipe stores recipe in the collection unless a recipe with the same name is
// already there. It returns the stored recipe and whether it was newly created.
func (s *RecipeService) SaveRecipe(ctx context.Context, collectionID string, recipe *model.Recipe) (*model.Recipe, bool, error) {
	extracted := ExtractedRecipe{
		Name:         recipe.Name,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
	}
	if err := ValidateRecipe(&extracted); err != nil {
		return nil, false, err
	}

	var existing model.Recipe
	err := s.db.WithContext(ctx).
		Where("collection_id = ? AND name = ?", collectionID, extracted.Name).
		First(&existing).Error
	if err == nil {
		logger.Debug("recipe already saved",
			zap.String("collection_id", collectionID),
			zap.String("name", existing.Name))
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up recipe: %w", err)
	}

	now := time.Now()
	saved := model.Recipe{
		ID:           recipe.ID,
		CollectionID: collectionID,
		Name:         extracted.Name,
		Ingredients:  model.StringArray(extracted.Ingredients),
		Instructions: model.StringArray(extracted.Instructions),
		Sources:      NormalizeSources(recipe.Sources),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if saved.ID == "" {
		saved.ID = model.NewRecipeID()
	}

	err = s.db.WithContext(ctx).Create(&saved).Error
	if err != nil && s.idTaken(ctx, collectionID, saved.ID) {
		// Another process handed out the same timestamp id in this collection
		saved.ID = model.NewRecipeID()
		err = s.db.WithContext(ctx).Create(&saved).Error
	}
	if err != nil {
		// A concurrent save of the same name wins the unique index
		lookupErr := s.db.WithContext(ctx).
			Where("collection_id = ? AND name = ?", collectionID, extracted.Name).
			First(&existing).Error
		if lookupErr == nil {
			return &existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to save recipe: %w", err)
	}
	return &saved, true, nil
}

func (s *RecipeService) idTaken(ctx context.Context, collectionID, id string) bool {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("collection_id = ? AND id = ?", collectionID, id).
		Count(&count).Error
	return err == nil && count > 0
}

// ListRecipes returns the collection, newest first
func (s *RecipeService) ListRecipes(ctx context.Context, collectionID string) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	err := s.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("created_at DESC, id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// SearchRecipes matches query against names and ingredients, case-insensitively
func (s *RecipeService) SearchRecipes(ctx context.Context, collectionID, query string) ([]*model.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListRecipes(ctx, collectionID)
	}

	ingredients := "ingredients"
	if s.db.Dialector.Name() == "postgres" {
		ingredients = "ingredients::text"
	}
	like := "%" + strings.ToLower(query) + "%"

	var recipes []*model.Recipe
	err := s.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Where("LOWER(name) LIKE ? OR LOWER("+ingredients+") LIKE ?", like, like).
		Order("created_at DESC, id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, collectionID, id string) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).
		Where("collection_id = ? AND id = ?", collectionID, id).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe. Deleting an unknown id is not an error; the
// returned bool reports whether anything was removed.
func (s *RecipeService) DeleteRecipe(ctx context.Context, collectionID, id string) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("collection_id = ? AND id = ?", collectionID, id).
		Delete(&model.Recipe{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete recipe: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
