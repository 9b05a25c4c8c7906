package data

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

// StorageConfig holds configuration for the local offer store.
type StorageConfig struct {
	MaxOffers int
}

// DefaultStorageConfig returns sensible default configuration.
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		MaxOffers: 1000,
	}
}

// InMemoryOfferStorage keeps the offers the user created on this client.
// Insertion order is preserved so listings come back oldest-first.
type InMemoryOfferStorage struct {
	offers map[string]model.LocalOffer
	order  []string
	config StorageConfig
	mu     sync.RWMutex
}

// NewInMemoryOfferStorage creates an offer store with default config.
func NewInMemoryOfferStorage() *InMemoryOfferStorage {
	return NewInMemoryOfferStorageWithConfig(DefaultStorageConfig())
}

// NewInMemoryOfferStorageWithConfig creates an offer store with custom config.
func NewInMemoryOfferStorageWithConfig(config StorageConfig) *InMemoryOfferStorage {
	return &InMemoryOfferStorage{
		offers: make(map[string]model.LocalOffer),
		config: config,
	}
}

// SaveOffer inserts or replaces an offer. When the store is full the oldest
// offer is evicted first.
func (s *InMemoryOfferStorage) SaveOffer(offer model.LocalOffer) error {
	if offer.ID == "" {
		return fmt.Errorf("offer id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.offers[offer.ID]; ok {
		offer.CreatedAt = existing.CreatedAt
		offer.UpdatedAt = nowUTC()
		s.offers[offer.ID] = offer
		return nil
	}

	if offer.CreatedAt == "" {
		offer.CreatedAt = nowUTC()
	}
	s.offers[offer.ID] = offer
	s.order = append(s.order, offer.ID)

	if len(s.order) > s.config.MaxOffers {
		evicted := s.order[0]
		s.order = s.order[1:]
		delete(s.offers, evicted)
	}
	return nil
}

// GetOffer returns one offer by id.
func (s *InMemoryOfferStorage) GetOffer(ctx context.Context, id string) (model.LocalOffer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	offer, ok := s.offers[id]
	return offer, ok
}

// ListOffers returns all stored offers in insertion order.
func (s *InMemoryOfferStorage) ListOffers(ctx context.Context) ([]model.LocalOffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.LocalOffer, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.offers[id])
	}
	return result, nil
}

// UpdateStatus sets the lifecycle status of a stored offer.
func (s *InMemoryOfferStorage) UpdateStatus(id string, status int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, ok := s.offers[id]
	if !ok {
		return fmt.Errorf("offer %s not found", id)
	}
	offer.Status = status
	offer.UpdatedAt = nowUTC()
	s.offers[id] = offer
	return nil
}

// DeleteOffer removes an offer. Deleting a missing offer is not an error.
func (s *InMemoryOfferStorage) DeleteOffer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.offers[id]; !ok {
		return nil
	}
	delete(s.offers, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
