package inventory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
)

// MemoryStock is an in-process StockRepository. It backs unit tests of the
// document services and is safe for concurrent use.
type MemoryStock struct {
	mu     sync.Mutex
	stock  map[uuid.UUID]inventory.Stock
	writes int
	// Err, when set, is returned by every Adjust call
	Err error
}

// NewMemoryStock creates an empty MemoryStock
func NewMemoryStock() *MemoryStock {
	return &MemoryStock{stock: make(map[uuid.UUID]inventory.Stock)}
}

// Set seeds a product's counters
func (m *MemoryStock) Set(id uuid.UUID, s inventory.Stock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[id] = s
}

// Get returns a product's counters
func (m *MemoryStock) Get(id uuid.UUID) (inventory.Stock, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stock[id]
	return s, ok
}

// Writes returns the number of Adjust calls that changed an existing product
func (m *MemoryStock) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Adjust implements inventory.StockRepository
func (m *MemoryStock) Adjust(_ context.Context, d inventory.Delta) (inventory.StockChange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return inventory.StockChange{}, m.Err
	}
	before, ok := m.stock[d.ProductID]
	if !ok {
		return inventory.StockChange{}, nil
	}
	after, clamped := inventory.ApplyFloor(before, d)
	m.stock[d.ProductID] = after
	m.writes++
	return inventory.StockChange{Found: true, Before: before, After: after, Clamped: clamped}, nil
}

var _ inventory.StockRepository = (*MemoryStock)(nil)
