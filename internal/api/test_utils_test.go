package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pageza/masterchef/backend/internal/middleware"
	"github.com/pageza/masterchef/backend/internal/mocks"
	"github.com/pageza/masterchef/backend/internal/service"
	"github.com/pageza/masterchef/backend/internal/testhelpers"
)

const pancakeResponse = `{"name":"Pancakes","ingredients":["2 eggs","1 cup flour"],"instructions":["Mix.","Fry."]}`

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv bundles a router wired to real services over in-memory sqlite
type testEnv struct {
	Router    *gin.Engine
	Generator *mocks.MockContentGenerator
	Exporter  *mocks.MockExportService
	Drafts    *service.MemoryDraftStore
	Recipes   *service.RecipeService
	Sessions  *service.SessionService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testhelpers.SetupSQLiteDB(t)

	env := &testEnv{
		Generator: new(mocks.MockContentGenerator),
		Exporter:  new(mocks.MockExportService),
		Drafts:    service.NewMemoryDraftStore(),
		Recipes:   service.NewRecipeService(db),
		Sessions:  service.NewSessionService("test-secret"),
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	RegisterRoutes(router, Dependencies{
		Sessions:  env.Sessions,
		Extractor: service.NewExtractorService(env.Generator, env.Drafts, time.Minute),
		Recipes:   env.Recipes,
		Drafts:    env.Drafts,
		Exporter:  env.Exporter,
	})
	env.Router = router
	return env
}

// newToken starts a collection and returns its bearer token
func (e *testEnv) newToken(t *testing.T) (token, collectionID string) {
	t.Helper()
	session, err := e.Sessions.NewSession()
	require.NoError(t, err)
	return session.Token, session.CollectionID
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
