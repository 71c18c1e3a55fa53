package redis

import (
	"context"
	"sync"
	"time"

	"foto-orders-service/internal/app"

	"github.com/redis/go-redis/v9"
)

// DraftStore is a Redis-aware implementation of DraftRepository.
// Notes:
//   - It still keeps a local in-memory map of drafts to reuse the existing
//     in-process quote broadcast logic.
//   - Redis is used to mark draft liveness (and could be extended to share
//     draft state or route cross-instance pub/sub).
//   - For true distribution you'd pair this with a pub/sub projector that fans out quote updates.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	drafts map[string]*app.Draft
}

func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{
		client: client,
		ttl:    ttl,
		drafts: make(map[string]*app.Draft),
	}
}

func (s *DraftStore) GetOrCreate(draftID string) *app.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	if draft, ok := s.drafts[draftID]; ok {
		return draft
	}
	draft := app.NewDraft(draftID)
	s.drafts[draftID] = draft
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(draftID), "1", s.ttl).Err()
	return draft
}

func (s *DraftStore) Get(draftID string) (*app.Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[draftID]
	return draft, ok
}

func (s *DraftStore) DeleteIfIdle(draftID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[draftID]
	if !ok {
		return
	}
	if draft.IsIdle() {
		delete(s.drafts, draftID)
		_ = s.client.Del(context.Background(), s.key(draftID)).Err()
	}
}

func (s *DraftStore) key(draftID string) string {
	return "order:draft:" + draftID
}
