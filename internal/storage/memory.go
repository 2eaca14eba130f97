package storage

import (
	"context"
	"sync"

	"price-resolution-api/internal/pricing"
)

// MemoryStore keeps price records in process memory. It satisfies the
// same candidate contract as the PostgreSQL store and backs tests and
// storage-free operation.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records []pricing.PriceRecord
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Add stores a record, assigning its id, and returns the stored copy.
func (m *MemoryStore) Add(record pricing.PriceRecord) pricing.PriceRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	record.ID = m.nextID
	m.nextID++
	m.records = append(m.records, record)
	return record
}

// FindCandidates returns copies of every record held for the pair, in
// insertion order.
func (m *MemoryStore) FindCandidates(_ context.Context, productID, brandID int64) ([]pricing.PriceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]pricing.PriceRecord, 0)
	for _, record := range m.records {
		if record.ProductID == productID && record.BrandID == brandID {
			out = append(out, record)
		}
	}
	return out, nil
}

// Len reports the number of stored records.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
