package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/masterchef/backend/internal/model"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: `  {"name":"x"}  `, expected: `{"name":"x"}`},
		{name: "json fence", input: "```json\n{\"name\":\"x\"}\n```", expected: `{"name":"x"}`},
		{name: "bare fence", input: "```\n{\"name\":\"x\"}\n```\n", expected: `{"name":"x"}`},
		{name: "upper case tag", input: "```JSON {\"name\":\"x\"}```", expected: `{"name":"x"}`},
		{name: "byte order mark", input: "\uFEFF ```json\n{}\n```", expected: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanResponse(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	t.Run("surrounded by prose", func(t *testing.T) {
		out, err := ExtractJSONObject(`Here is the recipe: {"name":"Soup","ingredients":["{water}"]} Enjoy!`)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"Soup","ingredients":["{water}"]}`, out)
	})

	t.Run("no object", func(t *testing.T) {
		_, err := ExtractJSONObject("I could not find a recipe.")
		assert.Error(t, err)
	})

	t.Run("missing closing brace", func(t *testing.T) {
		_, err := ExtractJSONObject(`{"name":"Soup"`)
		assert.Error(t, err)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := ExtractJSONObject(`} nothing {`)
		assert.Error(t, err)
	})
}

func TestParseRecipeResponse(t *testing.T) {
	t.Run("valid fenced response", func(t *testing.T) {
		raw := "```json\n{\"name\":\" Pancakes \",\"ingredients\":[\"2 eggs\",\" \",\"1 cup milk\"],\"instructions\":[\"Whisk.\",\"Fry.\"]}\n```"
		recipe, err := ParseRecipeResponse(raw)
		require.NoError(t, err)
		assert.Equal(t, "Pancakes", recipe.Name)
		assert.Equal(t, []string{"2 eggs", "1 cup milk"}, recipe.Ingredients)
		assert.Equal(t, []string{"Whisk.", "Fry."}, recipe.Instructions)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := ParseRecipeResponse(`{"name": "Pancakes", "ingredients": [}`)
		assert.True(t, errors.Is(err, ErrInvalidFormat))
	})

	t.Run("wrong field types", func(t *testing.T) {
		_, err := ParseRecipeResponse(`{"name":"Pancakes","ingredients":"eggs","instructions":["Fry."]}`)
		assert.True(t, errors.Is(err, ErrInvalidFormat))
	})

	t.Run("plain prose", func(t *testing.T) {
		_, err := ParseRecipeResponse("Sorry, that page has no recipe.")
		assert.True(t, errors.Is(err, ErrInvalidFormat))
	})

	t.Run("empty sentinel", func(t *testing.T) {
		_, err := ParseRecipeResponse(`{"name":"","ingredients":[],"instructions":[]}`)
		assert.ErrorIs(t, err, ErrNoRecipe)
	})

	t.Run("missing instructions", func(t *testing.T) {
		_, err := ParseRecipeResponse(`{"name":"Toast","ingredients":["bread"]}`)
		assert.ErrorIs(t, err, ErrNoRecipe)
	})

	t.Run("only blank ingredients", func(t *testing.T) {
		_, err := ParseRecipeResponse(`{"name":"Toast","ingredients":["  "],"instructions":["Toast it."]}`)
		assert.ErrorIs(t, err, ErrNoRecipe)
	})
}

func TestCollectSources(t *testing.T) {
	chunks := []WebChunk{
		{URI: "https://a.example/r", Title: "First title"},
		{URI: "   ", Title: "blank"},
		{URI: "https://b.example", Title: ""},
		{URI: "https://a.example/r", Title: "Second title"},
	}

	sources := CollectSources(chunks)

	assert.Equal(t, model.Sources{
		{URI: "https://a.example/r", Title: "Second title"},
		{URI: "https://b.example", Title: "https://b.example"},
	}, sources)
}

func TestCollectSourcesEmpty(t *testing.T) {
	assert.Empty(t, CollectSources(nil))
}

func TestNormalizeSources(t *testing.T) {
	assert.Equal(t, model.Sources{}, NormalizeSources(nil))
	assert.Equal(t,
		model.Sources{{URI: "https://x.example", Title: "X"}},
		NormalizeSources(model.Sources{{URI: " https://x.example ", Title: " X "}, {URI: ""}}),
	)
}
