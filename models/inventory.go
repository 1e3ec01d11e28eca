package models

import "github.com/shopspring/decimal"

type InventoryItem struct {
	ProductDetail
	Stock       int    `json:"stock"`
	Supplier    string `json:"supplier"`
	LastUpdated string `json:"last_updated"`
}

func (i InventoryItem) StockValue() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Stock)))
}

type InventoryRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Rating      float64         `json:"rating"`
	IsCustom    bool            `json:"is_custom"`
	Stock       int             `json:"stock"`
	Supplier    string          `json:"supplier"`
}

type InventorySummary struct {
	Items          []InventoryItem `json:"items"`
	TotalStock     int             `json:"total_stock"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStock       []string        `json:"low_stock"`
}
