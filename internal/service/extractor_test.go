package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockGenerator is a testify mock of ContentGenerator
type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (*GenerationResult, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GenerationResult), args.Error(1)
}

const pancakeResponse = "```json\n{\"name\":\"Pancakes\",\"ingredients\":[\"2 eggs\",\"1 cup flour\"],\"instructions\":[\"Mix.\",\"Fry.\"]}\n```"

func TestClassifyInput(t *testing.T) {
	tests := []struct {
		input string
		kind  InputKind
	}{
		{input: "https://example.com/recipes/pancakes", kind: InputURL},
		{input: "  http://example.com/x  ", kind: InputURL},
		{input: "eggs, flour, milk", kind: InputQuery},
		{input: "example.com/recipe", kind: InputQuery},
		{input: "ftp://example.com/recipe", kind: InputQuery},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, cleaned, err := ClassifyInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, strings.TrimSpace(tt.input), cleaned)
		})
	}

	_, _, err := ClassifyInput("   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestBuildPrompt(t *testing.T) {
	urlPrompt := BuildPrompt(InputURL, "https://example.com/r")
	assert.Contains(t, urlPrompt, "The URL is: https://example.com/r.")
	assert.Contains(t, urlPrompt, `"ingredients"`)
	assert.Contains(t, urlPrompt, "empty string for \"name\"")

	queryPrompt := BuildPrompt(InputQuery, "chicken and rice")
	assert.Contains(t, queryPrompt, "chicken and rice")
	assert.NotContains(t, queryPrompt, "The URL is")
}

func TestExtractorService_Extract(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a parsed draft with sources", func(t *testing.T) {
		gen := new(mockGenerator)
		drafts := NewMemoryDraftStore()
		svc := NewExtractorService(gen, drafts, time.Minute)

		gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
			return strings.Contains(p, "https://example.com/pancakes")
		})).Return(&GenerationResult{
			Text: pancakeResponse,
			Chunks: []WebChunk{
				{URI: "https://example.com/pancakes", Title: "Pancakes"},
				{URI: "https://example.com/pancakes", Title: "Best Pancakes"},
			},
		}, nil).Once()

		recipe, err := svc.Extract(ctx, "c1", "https://example.com/pancakes")
		require.NoError(t, err)
		assert.NotEmpty(t, recipe.ID)
		assert.Equal(t, "c1", recipe.CollectionID)
		assert.Equal(t, "Pancakes", recipe.Name)
		assert.Len(t, recipe.Ingredients, 2)
		require.Len(t, recipe.Sources, 1)
		assert.Equal(t, "Best Pancakes", recipe.Sources[0].Title)

		stored, err := drafts.GetDraft(ctx, "c1", recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, recipe.Name, stored.Name)
		gen.AssertExpectations(t)
	})

	t.Run("empty input never reaches the generator", func(t *testing.T) {
		gen := new(mockGenerator)
		svc := NewExtractorService(gen, nil, 0)

		_, err := svc.Extract(ctx, "c1", "")
		assert.ErrorIs(t, err, ErrEmptyInput)
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("generator failure is wrapped", func(t *testing.T) {
		gen := new(mockGenerator)
		svc := NewExtractorService(gen, nil, 0)
		upstream := errors.New("quota exceeded")
		gen.On("Generate", mock.Anything, mock.Anything).Return(nil, upstream)

		_, err := svc.Extract(ctx, "c1", "eggs")
		assert.ErrorIs(t, err, upstream)
		assert.False(t, svc.Busy("c1"), "slot must be released after a failure")
	})

	t.Run("invalid response", func(t *testing.T) {
		gen := new(mockGenerator)
		svc := NewExtractorService(gen, nil, 0)
		gen.On("Generate", mock.Anything, mock.Anything).Return(&GenerationResult{Text: "no recipe here"}, nil)

		_, err := svc.Extract(ctx, "c1", "eggs")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("page without a recipe", func(t *testing.T) {
		gen := new(mockGenerator)
		svc := NewExtractorService(gen, nil, 0)
		gen.On("Generate", mock.Anything, mock.Anything).
			Return(&GenerationResult{Text: `{"name":"","ingredients":[],"instructions":[]}`}, nil)

		_, err := svc.Extract(ctx, "c1", "https://example.com/about")
		assert.ErrorIs(t, err, ErrNoRecipe)
	})

	t.Run("second extraction while one is running is rejected", func(t *testing.T) {
		gen := new(mockGenerator)
		svc := NewExtractorService(gen, nil, 0)

		started := make(chan struct{})
		unblock := make(chan struct{})
		gen.On("Generate", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				close(started)
				<-unblock
			}).
			Return(&GenerationResult{Text: pancakeResponse}, nil).Once()

		done := make(chan error, 1)
		go func() {
			_, err := svc.Extract(ctx, "c1", "pancakes")
			done <- err
		}()
		<-started

		_, err := svc.Extract(ctx, "c1", "waffles")
		assert.ErrorIs(t, err, ErrExtractionInProgress)
		assert.True(t, svc.Busy("c1"))
		assert.False(t, svc.Busy("c2"))

		close(unblock)
		assert.NoError(t, <-done)
		assert.False(t, svc.Busy("c1"))
	})

	t.Run("timeout is applied to the generator context", func(t *testing.T) {
		gen := new(mockGenerator)
		svc := NewExtractorService(gen, nil, 50*time.Millisecond)
		gen.On("Generate", mock.MatchedBy(func(c context.Context) bool {
			_, ok := c.Deadline()
			return ok
		}), mock.Anything).Return(&GenerationResult{Text: pancakeResponse}, nil)

		_, err := svc.Extract(ctx, "c1", "pancakes")
		assert.NoError(t, err)
		gen.AssertExpectations(t)
	})
}
