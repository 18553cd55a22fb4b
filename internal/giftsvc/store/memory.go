package store

import (
	"context"
	"sort"
	"sync"

	"github.com/avvvet/giftcard-services/internal/giftsvc/models"
)

// MemoryStore keeps records and the admin in process memory. It backs
// STORE_DRIVER=memory for local runs and the handler tests.
type MemoryStore struct {
	mu      sync.Mutex
	records []models.GiftCardRecord
	admin   *models.Admin
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) InsertRecord(ctx context.Context, rec *models.GiftCardRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *rec)
	return nil
}

func (m *MemoryStore) ListRecords(ctx context.Context) ([]models.GiftCardRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.GiftCardRecord, len(m.records))
	copy(out, m.records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CheckDate > out[j].CheckDate
	})
	return out, nil
}

func (m *MemoryStore) DeleteRecord(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, rec := range m.records {
		if rec.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) CountRecords(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.records)), nil
}

func (m *MemoryStore) FindAdmin(ctx context.Context) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.admin == nil {
		return nil, nil
	}
	a := *m.admin
	return &a, nil
}

func (m *MemoryStore) InsertAdmin(ctx context.Context, admin *models.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.admin != nil {
		return ErrDuplicate
	}
	a := *admin
	m.admin = &a
	return nil
}
