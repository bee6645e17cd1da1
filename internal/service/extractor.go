package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/masterchef/backend/internal/logger"
	"github.com/pageza/masterchef/backend/internal/model"
)

// InputKind tells a recipe URL apart from a free-text ingredient query
type InputKind int

const (
	InputURL InputKind = iota
	InputQuery
)

func (k InputKind) String() string {
	if k == InputURL {
		return "url"
	}
	return "query"
}

const outputContract = `You MUST format your response as a single, valid JSON object with the following keys:
- "name": The name of the recipe (string).
- "ingredients": An array of strings, where each string is a single ingredient with its quantity.
- "instructions": An array of strings, where each string is a single step in the cooking instructions.

IMPORTANT: Do not add any text, explanations, or markdown formatting (like ` + "```json" + `) around the JSON output. Your entire response must be only the raw JSON object.
`

// ClassifyInput decides whether input is a recipe URL or an ingredient query
func ClassifyInput(input string) (InputKind, string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, "", ErrEmptyInput
	}
	if u, err := url.ParseRequestURI(input); err == nil && u.Host != "" &&
		(u.Scheme == "http" || u.Scheme == "https") {
		return InputURL, input, nil
	}
	return InputQuery, input, nil
}

// BuildPrompt returns the instructions sent to the AI for the given input
func BuildPrompt(kind InputKind, input string) string {
	if kind == InputURL {
		return "You are an expert recipe extractor. Using Google Search to access the provided URL, find and extract the recipe details. The URL is: " +
			input + ".\n" + outputContract +
			`If you cannot find a clear recipe on the page, return a JSON object with an empty string for "name", and empty arrays for "ingredients" and "instructions".`
	}
	return "You are an expert chef. Using Google Search, find a well-reviewed recipe that matches this request: " +
		input + ".\nPrefer recipes that use the ingredients mentioned.\n" + outputContract +
		`If you cannot find a suitable recipe, return a JSON object with an empty string for "name", and empty arrays for "ingredients" and "instructions".`
}

// ExtractorService turns a URL or query into a structured recipe using a generative AI service
type ExtractorService struct {
	generator ContentGenerator
	drafts    DraftStore
	guard     *InFlightGuard
	timeout   time.Duration
}

// NewExtractorService creates a new ExtractorService. drafts may be nil when the
// caller keeps the result itself.
func NewExtractorService(generator ContentGenerator, drafts DraftStore, timeout time.Duration) *ExtractorService {
	return &ExtractorService{
		generator: generator,
		drafts:    drafts,
		guard:     NewInFlightGuard(),
		timeout:   timeout,
	}
}

// Busy reports whether an extraction for the collection is running
func (s *ExtractorService) Busy(collectionID string) bool {
	return s.guard.Busy(collectionID)
}

// Extract runs one extraction for the collection and stores the result as its draft
func (s *ExtractorService) Extract(ctx context.Context, collectionID, input string) (*model.Recipe, error) {
	kind, input, err := ClassifyInput(input)
	if err != nil {
		return nil, err
	}

	release, ok := s.guard.TryAcquire(collectionID)
	if !ok {
		return nil, ErrExtractionInProgress
	}
	defer release()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	result, err := s.generator.Generate(ctx, BuildPrompt(kind, input))
	if err != nil {
		return nil, fmt.Errorf("failed to generate recipe: %w", err)
	}

	parsed, err := ParseRecipeResponse(result.Text)
	if err != nil {
		logger.Warn("unusable AI response",
			zap.String("kind", kind.String()),
			zap.String("response", result.Text),
			zap.Error(err))
		return nil, err
	}

	now := time.Now()
	recipe := &model.Recipe{
		ID:           model.NewRecipeID(),
		CollectionID: collectionID,
		Name:         parsed.Name,
		Ingredients:  model.StringArray(parsed.Ingredients),
		Instructions: model.StringArray(parsed.Instructions),
		Sources:      CollectSources(result.Chunks),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if s.drafts != nil {
		if err := s.drafts.SaveDraft(ctx, recipe); err != nil {
			return nil, fmt.Errorf("failed to store draft: %w", err)
		}
	}

	logger.Info("recipe extracted",
		zap.String("collection_id", collectionID),
		zap.String("kind", kind.String()),
		zap.String("name", recipe.Name),
		zap.Int("sources", len(recipe.Sources)),
		zap.Duration("elapsed", time.Since(started)))

	return recipe, nil
}
