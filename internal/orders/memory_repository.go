package orders

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Order
}

// NewMemoryRepository constructs an in-memory repository for tests and dev
// runs without a database.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Order)}
}

func (r *memoryRepository) Create(_ context.Context, order Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[order.ID]; exists {
		return errors.New("order exists")
	}
	r.storage[order.ID] = order
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.storage[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return order, nil
}

func (r *memoryRepository) ListRecent(_ context.Context, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 20
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Order, 0, len(r.storage))
	for _, order := range r.storage {
		result = append(result, order)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
