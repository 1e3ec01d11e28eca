package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/tebele-dev/tailor-made-couture/models"
	"gorm.io/gorm"
)

// MemoryOrderRepository keeps orders in process when postgres is not configured.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

func (m *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, *order)
	return nil
}

func (m *MemoryOrderRepository) FindByAccount(_ context.Context, accountKey string, page, limit int) ([]models.Order, int64, error) {
	m.mu.RLock()
	var matched []models.Order
	for _, o := range m.orders {
		if o.AccountKey == accountKey {
			matched = append(matched, o)
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return []models.Order{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *MemoryOrderRepository) FindByOrderNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.orders {
		if o.OrderNumber == orderNumber {
			found := o
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
