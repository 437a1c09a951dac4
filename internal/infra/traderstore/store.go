package traderstore

import (
	"strings"
	"sync"

	"escrow-market/internal/domain/trader"
	"escrow-market/internal/infra"

	"github.com/google/uuid"
)

// Store keeps registered traders in memory, keyed by id with a unique email
// index.
type Store struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*trader.Trader
	byEmail map[string]uuid.UUID
}

func NewStore() *Store {
	return &Store{
		byID:    make(map[uuid.UUID]*trader.Trader),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *Store) Create(t *trader.Trader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(t.Email().Value())
	if _, exists := s.byEmail[key]; exists {
		return infra.NewRepoErr(infra.KindDuplicateKey, "email already registered")
	}
	s.byID[t.ID()] = t
	s.byEmail[key] = t.ID()
	return nil
}

func (s *Store) FindByID(id uuid.UUID) (*trader.Trader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byID[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "trader not found")
	}
	return t, nil
}

func (s *Store) FindByEmail(email string) (*trader.Trader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "trader not found")
	}
	return s.byID[id], nil
}
