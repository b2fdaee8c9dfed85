package service

import (
	"sync"
	"time"

	"github.com/portcullis-bot/Portcullis/model"
)

// VerificationStore keeps at most one pending verification per user.
type VerificationStore interface {
	// Issue inserts or replaces the pending record for the user. A replaced
	// challenge can no longer be completed.
	Issue(userID string, v model.PendingVerification) error
	Get(userID string) (model.PendingVerification, bool)
	// Resolve removes the record unconditionally. Challenges are single-use,
	// so this runs after success and failure alike.
	Resolve(userID string) error
	// SweepExpired removes every record older than
	// model.VerificationExpiration and returns the removed user IDs.
	SweepExpired(now time.Time) []string
	// Len reports how many verifications are pending.
	Len() int
}

// MemoryStore is the default VerificationStore. State lives for the duration
// of the process only.
type MemoryStore struct {
	mu      sync.RWMutex
	pending map[string]model.PendingVerification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pending: make(map[string]model.PendingVerification)}
}

func (s *MemoryStore) Issue(userID string, v model.PendingVerification) error {
	s.mu.Lock()
	s.pending[userID] = v
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(userID string) (model.PendingVerification, bool) {
	s.mu.RLock()
	v, ok := s.pending[userID]
	s.mu.RUnlock()
	return v, ok
}

func (s *MemoryStore) Resolve(userID string) error {
	s.mu.Lock()
	delete(s.pending, userID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) SweepExpired(now time.Time) (removed []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, v := range s.pending {
		if v.Expired(now) {
			delete(s.pending, userID)
			removed = append(removed, userID)
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pending)
}
