package remito

import (
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
)

// Sessions tracks one composer per open order. Each clerk session works on
// exactly one order in flight at a time; sessions are independent and share
// only the injected counter.
type Sessions struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Composer
	factory func() *Composer
}

func NewSessions(factory func() *Composer) *Sessions {
	return &Sessions{
		byID:    make(map[uuid.UUID]*Composer),
		factory: factory,
	}
}

func (s *Sessions) Create() (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, fmt.Errorf("remito: failed to generate session id: %w", err)
	}

	s.mu.Lock()
	s.byID[id] = s.factory()
	s.mu.Unlock()
	return id, nil
}

func (s *Sessions) Get(id uuid.UUID) (*Composer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	return c, ok
}
