package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/masterchef/backend/internal/model"
	"github.com/pageza/masterchef/backend/internal/testhelpers"
)

func testDraft() *model.Recipe {
	return &model.Recipe{
		ID:           model.NewRecipeID(),
		CollectionID: "collection-1",
		Name:         "Test Recipe",
		Ingredients:  model.StringArray{"ingredient1", "ingredient2"},
		Instructions: model.StringArray{"step1", "step2"},
		Sources:      model.Sources{{URI: "https://a.example", Title: "A"}},
	}
}

func TestMemoryDraftStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()
	draft := testDraft()

	require.NoError(t, store.SaveDraft(ctx, draft))

	got, err := store.GetDraft(ctx, draft.CollectionID, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.Name, got.Name)
	assert.Equal(t, draft.Sources, got.Sources)

	_, err = store.GetDraft(ctx, "someone-else", draft.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	require.NoError(t, store.DeleteDraft(ctx, draft.CollectionID, draft.ID))
	_, err = store.GetDraft(ctx, draft.CollectionID, draft.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestMemoryDraftStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	draft := testDraft()
	require.NoError(t, store.SaveDraft(ctx, draft))

	now = now.Add(DraftTTL)
	_, err := store.GetDraft(ctx, draft.CollectionID, draft.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestMemoryDraftStoreSweepsExpiredDrafts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		d := testDraft()
		d.CollectionID = "abandoned"
		require.NoError(t, store.SaveDraft(ctx, d))
	}
	assert.Equal(t, 5, store.Len())

	now = now.Add(DraftTTL + time.Minute)
	fresh := testDraft()
	require.NoError(t, store.SaveDraft(ctx, fresh))
	assert.Equal(t, 1, store.Len())

	_, err := store.GetDraft(ctx, fresh.CollectionID, fresh.ID)
	assert.NoError(t, err)
}

func TestRedisDraftStore(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := NewRedisDraftStore(client)
	draft := testDraft()

	t.Run("should save and retrieve draft", func(t *testing.T) {
		require.NoError(t, store.SaveDraft(ctx, draft))

		got, err := store.GetDraft(ctx, draft.CollectionID, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, draft.Name, got.Name)
		assert.Equal(t, draft.Ingredients, got.Ingredients)
		assert.Equal(t, draft.Instructions, got.Instructions)

		ttl, err := client.TTL(ctx, draftKey(draft.CollectionID, draft.ID)).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Hour)
	})

	t.Run("should delete draft", func(t *testing.T) {
		require.NoError(t, store.DeleteDraft(ctx, draft.CollectionID, draft.ID))
		_, err := store.GetDraft(ctx, draft.CollectionID, draft.ID)
		assert.ErrorIs(t, err, ErrDraftNotFound)
	})
}
