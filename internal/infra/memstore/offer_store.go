package memstore

import (
	"fmt"
	"sync"

	"escrow-market/internal/domain/offer"
	"escrow-market/internal/infra"
)

// OfferStore holds the two append-only offer collections. Each collection has
// its own id sequence starting at 0; ids are never reused and records are
// never deleted. The store is pure storage plus id issuance; all business
// rules live in the marketplace engine.
type OfferStore struct {
	mu      sync.RWMutex
	records map[offer.Kind]map[uint64]offer.Offer
	next    map[offer.Kind]uint64
}

func NewOfferStore() *OfferStore {
	return &OfferStore{
		records: map[offer.Kind]map[uint64]offer.Offer{
			offer.KindSell: {},
			offer.KindBuy:  {},
		},
		next: map[offer.Kind]uint64{
			offer.KindSell: 0,
			offer.KindBuy:  0,
		},
	}
}

// Allocate returns the next unused id for the kind and advances its counter.
func (s *OfferStore) Allocate(kind offer.Kind) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next[kind]
	s.next[kind] = id + 1
	return id
}

// Get returns a copy of the stored offer. An id that was never allocated is a
// distinct NOT_FOUND condition; an ended offer is returned like any other so
// the collections stay permanently queryable as an audit trail.
func (s *OfferStore) Get(kind offer.Kind, id uint64) (*offer.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[kind][id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, fmt.Sprintf("%s offer %d does not exist", kind, id))
	}
	c := rec
	return &c, nil
}

// Put stores or overwrites the slot. Callers own the locking discipline that
// makes read-modify-write sequences atomic.
func (s *OfferStore) Put(kind offer.Kind, id uint64, o *offer.Offer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[kind][id] = *o
}

// Counters reports how many ids each collection has issued.
func (s *OfferStore) Counters() (sell, buy uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.next[offer.KindSell], s.next[offer.KindBuy]
}
