package token

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memEntry struct {
	claims    Claims
	expiresAt time.Time
}

// MemoryStore is a process-local Store with lazy TTL eviction. It backs
// tests and single-node deployments without redis.
type MemoryStore struct {
	mu  sync.Mutex
	m   map[string]memEntry
	ttl time.Duration
	now func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{m: make(map[string]memEntry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Issue(_ context.Context, c Claims) (string, error) {
	tok := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[tok] = memEntry{claims: c, expiresAt: s.now().Add(s.ttl)}
	return tok, nil
}

func (s *MemoryStore) Validate(_ context.Context, tok string) (*Claims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[tok]
	if !ok {
		return nil, ErrInvalidToken
	}
	if s.now().After(e.expiresAt) {
		delete(s.m, tok)
		return nil, ErrInvalidToken
	}
	c := e.claims
	return &c, nil
}

func (s *MemoryStore) Revoke(_ context.Context, tok string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, tok)
	return nil
}

var _ Store = (*MemoryStore)(nil)
