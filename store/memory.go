package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	contractx "github.com/storewise/recommender/agent/contract"
)

var ErrRecommendationNotFound = errors.New("recommendation not found")

// MemoryStore is an in-process store for tests and zero-config runs. The
// recommendation log is append-only; MarkConverted is the only mutation.
type MemoryStore struct {
	mu        sync.RWMutex
	customers map[string]contractx.Customer
	products  []contractx.Product
	configs   []contractx.AgentConfig
	records   []contractx.RecommendationRecord
}

var (
	_ contractx.DataStore           = (*MemoryStore)(nil)
	_ contractx.RecommendationStore = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers: make(map[string]contractx.Customer),
		configs:   DefaultAgentConfigs(),
	}
}

func (s *MemoryStore) AddCustomer(customer contractx.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customer.ID] = customer
}

func (s *MemoryStore) AddProducts(products ...contractx.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, products...)
}

func (s *MemoryStore) SetAgentConfigs(configs []contractx.AgentConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs = append([]contractx.AgentConfig(nil), configs...)
}

func (s *MemoryStore) GetCustomerByID(ctx context.Context, id string) (contractx.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customer, ok := s.customers[id]
	if !ok {
		return contractx.Customer{}, fmt.Errorf("%w: %s", contractx.ErrCustomerNotFound, id)
	}
	return customer, nil
}

func (s *MemoryStore) GetAllProducts(ctx context.Context) ([]contractx.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]contractx.Product(nil), s.products...), nil
}

func (s *MemoryStore) GetAgentConfigs(ctx context.Context) ([]contractx.AgentConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]contractx.AgentConfig(nil), s.configs...), nil
}

func (s *MemoryStore) AppendRecommendation(ctx context.Context, rec contractx.RecommendationRecord) (string, error) {
	if rec.ID == "" {
		return "", fmt.Errorf("%w: recommendation id is empty", contractx.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return rec.ID, nil
}

func (s *MemoryStore) MarkConverted(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Converted = true
			converted := at.UTC()
			s.records[i].ConversionTimestamp = &converted
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrRecommendationNotFound, id)
}

// Recommendations returns a copy of the append-only record log.
func (s *MemoryStore) Recommendations() []contractx.RecommendationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]contractx.RecommendationRecord(nil), s.records...)
}
