package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/masterchef/backend/internal/model"
)

// DraftTTL is how long an unsaved extraction is kept
const DraftTTL = 24 * time.Hour

// DraftStore keeps the current, not yet saved, recipe of a collection
type DraftStore interface {
	SaveDraft(ctx context.Context, draft *model.Recipe) error
	GetDraft(ctx context.Context, collectionID, id string) (*model.Recipe, error)
	DeleteDraft(ctx context.Context, collectionID, id string) error
}

func draftKey(collectionID, id string) string {
	return fmt.Sprintf("recipe:draft:%s:%s", collectionID, id)
}

// RedisDraftStore stores drafts as JSON values with a TTL
type RedisDraftStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisDraftStore creates a new RedisDraftStore
func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{redis: client, ttl: DraftTTL}
}

// SaveDraft saves a recipe draft to Redis
func (s *RedisDraftStore) SaveDraft(ctx context.Context, draft *model.Recipe) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(draft.CollectionID, draft.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}
	return nil
}

// GetDraft retrieves a recipe draft from Redis
func (s *RedisDraftStore) GetDraft(ctx context.Context, collectionID, id string) (*model.Recipe, error) {
	data, err := s.redis.Get(ctx, draftKey(collectionID, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft model.Recipe
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

// DeleteDraft removes a recipe draft from Redis
func (s *RedisDraftStore) DeleteDraft(ctx context.Context, collectionID, id string) error {
	if err := s.redis.Del(ctx, draftKey(collectionID, id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}

type memoryDraft struct {
	recipe    model.Recipe
	expiresAt time.Time
}

// MemoryDraftStore is the process-local DraftStore used when Redis is unavailable
type MemoryDraftStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	drafts map[string]memoryDraft
}

// NewMemoryDraftStore creates an empty MemoryDraftStore
func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{
		ttl:    DraftTTL,
		now:    time.Now,
		drafts: make(map[string]memoryDraft),
	}
}

// SaveDraft stores a copy of draft and drops every expired draft
func (s *MemoryDraftStore) SaveDraft(_ context.Context, draft *model.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, d := range s.drafts {
		if !now.Before(d.expiresAt) {
			delete(s.drafts, key)
		}
	}

	s.drafts[draftKey(draft.CollectionID, draft.ID)] = memoryDraft{
		recipe:    *draft,
		expiresAt: now.Add(s.ttl),
	}
	return nil
}

// Len returns the number of stored drafts, expired ones included
func (s *MemoryDraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// GetDraft returns a copy of the draft, dropping it first if it has expired
func (s *MemoryDraftStore) GetDraft(_ context.Context, collectionID, id string) (*model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := draftKey(collectionID, id)
	d, ok := s.drafts[key]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if !s.now().Before(d.expiresAt) {
		delete(s.drafts, key)
		return nil, ErrDraftNotFound
	}
	r := d.recipe
	return &r, nil
}

// DeleteDraft removes the draft if present
func (s *MemoryDraftStore) DeleteDraft(_ context.Context, collectionID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, draftKey(collectionID, id))
	return nil
}
