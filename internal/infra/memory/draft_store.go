package memory

import (
	"sync"

	"foto-orders-service/internal/app"
)

// DraftStore is an in-memory implementation of app.DraftRepository.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*app.Draft
}

func NewDraftStore() *DraftStore {
	return &DraftStore{
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
	}
}
