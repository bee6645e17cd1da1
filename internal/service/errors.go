package service

import "errors"

var (
	// ErrEmptyInput is returned when no URL or query was submitted
	ErrEmptyInput = errors.New("Please enter a valid URL.")
	// ErrInvalidFormat is returned when the AI response holds no decodable JSON object
	ErrInvalidFormat = errors.New("The AI returned an invalid format. Please try again.")
	// ErrNoRecipe is returned when the decoded response lacks a name, ingredients or instructions
	ErrNoRecipe = errors.New("Could not find a valid recipe at the provided URL. The page might not contain a recipe, or it's in a format that could not be understood.")
	// ErrExtractionInProgress is returned while another extraction for the same collection is running
	ErrExtractionInProgress = errors.New("an extraction is already in progress")
	// ErrRecipeNotFound is returned when a saved recipe does not exist in the collection
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrDraftNotFound is returned when a draft is unknown or expired
	ErrDraftNotFound = errors.New("draft not found")
	// ErrInvalidToken is returned for malformed, expired or foreign session tokens
	ErrInvalidToken = errors.New("invalid session token")
)
