package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/masterchef/backend/internal/service"
)

func TestExtract(t *testing.T) {
	t.Run("returns the draft with sources", func(t *testing.T) {
		env := setupTestEnv(t)
		token, collectionID := env.newToken(t)
		env.Generator.On("Generate", mock.Anything, mock.Anything).Return(&service.GenerationResult{
			Text:   pancakeResponse,
			Chunks: []service.WebChunk{{URI: "https://example.com/pancakes", Title: "Pancakes"}},
		}, nil).Once()

		w := env.do(t, http.MethodPost, "/api/v1/extract", token, map[string]string{"url": "https://example.com/pancakes"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		recipe := decode(t, w)["recipe"].(map[string]interface{})
		assert.Equal(t, "Pancakes", recipe["name"])
		assert.Len(t, recipe["sources"], 1)

		draft, err := env.Drafts.GetDraft(context.Background(), collectionID, recipe["id"].(string))
		require.NoError(t, err)
		assert.Equal(t, "Pancakes", draft.Name)
	})

	t.Run("query input", func(t *testing.T) {
		env := setupTestEnv(t)
		token, _ := env.newToken(t)
		env.Generator.On("Generate", mock.Anything, service.BuildPrompt(service.InputQuery, "eggs and flour")).
			Return(&service.GenerationResult{Text: pancakeResponse}, nil).Once()

		w := env.do(t, http.MethodPost, "/api/v1/extract", token, map[string]string{"query": "eggs and flour"})
		assert.Equal(t, http.StatusOK, w.Code)
		env.Generator.AssertExpectations(t)
	})

	t.Run("empty input", func(t *testing.T) {
		env := setupTestEnv(t)
		token, _ := env.newToken(t)

		w := env.do(t, http.MethodPost, "/api/v1/extract", token, map[string]string{"url": "  "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Please enter a valid URL.", decode(t, w)["error"])
		env.Generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("failures share one message", func(t *testing.T) {
		responses := map[string]*service.GenerationResult{
			"prose":    {Text: "I could not open that page."},
			"sentinel": {Text: `{"name":"","ingredients":[],"instructions":[]}`},
		}
		for name, result := range responses {
			t.Run(name, func(t *testing.T) {
				env := setupTestEnv(t)
				token, _ := env.newToken(t)
				env.Generator.On("Generate", mock.Anything, mock.Anything).Return(result, nil).Once()

				w := env.do(t, http.MethodPost, "/api/v1/extract", token, map[string]string{"url": "https://example.com"})
				assert.Equal(t, http.StatusBadGateway, w.Code)
				assert.Equal(t, ExtractFailedMessage, decode(t, w)["error"])
			})
		}

		t.Run("upstream error", func(t *testing.T) {
			env := setupTestEnv(t)
			token, _ := env.newToken(t)
			env.Generator.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded")).Once()

			w := env.do(t, http.MethodPost, "/api/v1/extract", token, map[string]string{"url": "https://example.com"})
			assert.Equal(t, http.StatusBadGateway, w.Code)
			assert.Equal(t, ExtractFailedMessage, decode(t, w)["error"])
		})
	})

	t.Run("concurrent extraction in the same collection", func(t *testing.T) {
		env := setupTestEnv(t)
		token, _ := env.newToken(t)
		otherToken, _ := env.newToken(t)

		started := make(chan struct{})
		unblock := make(chan struct{})
		env.Generator.On("Generate", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				close(started)
				<-unblock
			}).
			Return(&service.GenerationResult{Text: pancakeResponse}, nil).Once()
		env.Generator.On("Generate", mock.Anything, mock.Anything).
			Return(&service.GenerationResult{Text: pancakeResponse}, nil)

		first := make(chan *httptest.ResponseRecorder, 1)
		go func() {
			first <- env.do(t, http.MethodPost, "/api/v1/extract", token, map[string]string{"query": "pancakes"})
		}()
		<-started

		w := env.do(t, http.MethodPost, "/api/v1/extract", token, map[string]string{"query": "waffles"})
		assert.Equal(t, http.StatusConflict, w.Code)

		w = env.do(t, http.MethodPost, "/api/v1/extract", otherToken, map[string]string{"query": "waffles"})
		assert.Equal(t, http.StatusOK, w.Code, "other collections are not blocked")

		close(unblock)
		assert.Equal(t, http.StatusOK, (<-first).Code)
	})
}

func TestDrafts(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.newToken(t)
	env.Generator.On("Generate", mock.Anything, mock.Anything).
		Return(&service.GenerationResult{Text: pancakeResponse}, nil)

	extract := func() string {
		w := env.do(t, http.MethodPost, "/api/v1/extract", token, map[string]string{"query": "pancakes"})
		require.Equal(t, http.StatusOK, w.Code)
		return decode(t, w)["recipe"].(map[string]interface{})["id"].(string)
	}

	t.Run("get", func(t *testing.T) {
		id := extract()
		w := env.do(t, http.MethodGet, "/api/v1/drafts/"+id, token, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		otherToken, _ := env.newToken(t)
		w = env.do(t, http.MethodGet, "/api/v1/drafts/"+id, otherToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("save then save again", func(t *testing.T) {
		id := extract()
		w := env.do(t, http.MethodPost, "/api/v1/drafts/"+id+"/save", token, nil)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, true, decode(t, w)["created"])

		w = env.do(t, http.MethodGet, "/api/v1/drafts/"+id, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, "saving discards the draft")

		second := extract()
		w = env.do(t, http.MethodPost, "/api/v1/drafts/"+second+"/save", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["created"])
		assert.Equal(t, id, body["recipe"].(map[string]interface{})["id"])

		w = env.do(t, http.MethodGet, "/api/v1/recipes", token, nil)
		assert.Len(t, decode(t, w)["recipes"], 1)
	})

	t.Run("discard", func(t *testing.T) {
		id := extract()
		w := env.do(t, http.MethodDelete, "/api/v1/drafts/"+id, token, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodPost, "/api/v1/drafts/"+id+"/save", token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
