package types

import "github.com/pageza/masterchef/backend/internal/model"

// ExtractRequest asks for a recipe from a URL or a free-text ingredient query
type ExtractRequest struct {
	URL   string `json:"url"`
	Query string `json:"query"`
}

// Input returns whichever of URL and Query was supplied, preferring URL
func (r ExtractRequest) Input() string {
	if r.URL != "" {
		return r.URL
	}
	return r.Query
}

// SaveRecipeRequest is the body of a direct save. The server assigns the id.
type SaveRecipeRequest struct {
	Name         string                  `json:"name" binding:"required"`
	Ingredients  []string                `json:"ingredients" binding:"required"`
	Instructions []string                `json:"instructions" binding:"required"`
	Sources      []model.GroundingSource `json:"sources"`
}

// Recipe converts the request into a model
func (r SaveRecipeRequest) Recipe() *model.Recipe {
	return &model.Recipe{
		Name:         r.Name,
		Ingredients:  model.StringArray(r.Ingredients),
		Instructions: model.StringArray(r.Instructions),
		Sources:      model.Sources(r.Sources),
	}
}
