package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the persisted record of a placed order.
type Order struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber string          `gorm:"uniqueIndex;not null" json:"order_number"`
	AccountKey  string          `gorm:"index;not null" json:"-"`
	UserID      string          `gorm:"not null" json:"user_id"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Shipping    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"shipping"`
	Tax         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"tax"`
	Total       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	ShipTo      string          `gorm:"not null" json:"ship_to"`
	PaymentCard string          `gorm:"type:varchar(32)" json:"payment_card"`
	Status      string          `gorm:"type:varchar(20);not null" json:"status"`
	Items       []OrderLine     `gorm:"serializer:json" json:"items"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type OrderLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

const OrderStatusPlaced = "placed"

// OrderPlacedEvent is published once an order has been accepted.
type OrderPlacedEvent struct {
	Event       string      `json:"event"`
	OrderNumber string      `json:"order_number"`
	UserID      string      `json:"user_id"`
	Email       string      `json:"email"`
	Items       []OrderLine `json:"items"`
	Total       string      `json:"total"`
	Timestamp   time.Time   `json:"timestamp"`
}
