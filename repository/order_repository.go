package repository

import (
	"context"

	"github.com/tebele-dev/tailor-made-couture/models"
	"gorm.io/gorm"
)

// OrderRepository defines data-access operations for placed orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByAccount(ctx context.Context, accountKey string, page, limit int) ([]models.Order, int64, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByAccount returns one page of an account's orders, newest first, with the total count.
func (r *GormOrderRepository) FindByAccount(ctx context.Context, accountKey string, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("account_key = ?", accountKey).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("account_key = ?", accountKey).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}
