package models

import "github.com/shopspring/decimal"

// DesignDraft holds uncommitted admin edits to one product's customization schema.
type DesignDraft struct {
	ProductID        string           `json:"product_id"`
	Measurements     []string         `json:"measurements"`
	CustomProperties []CustomProperty `json:"custom_properties"`
	FabricOptions    []FabricOption   `json:"fabric_options"`
}

type MeasurementRequest struct {
	Name string `json:"name"`
}

type CustomPropertyRequest struct {
	Name         string           `json:"name"`
	Type         PropertyType     `json:"type"`
	Required     bool             `json:"required"`
	Category     PropertyCategory `json:"category"`
	Options      []string         `json:"options"`
	DefaultValue any              `json:"default_value"`
}

type PropertyOptionRequest struct {
	Option string `json:"option"`
}

type FabricOptionRequest struct {
	Name          string          `json:"name"`
	Category      FabricCategory  `json:"category"`
	Image         string          `json:"image"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	Description   string          `json:"description"`
	SwatchColor   string          `json:"swatch_color"`
}

// DesignRequest is a complete custom-design configuration submitted for pricing.
type DesignRequest struct {
	Properties   map[string]any            `json:"properties"`
	Measurements map[string]float64        `json:"measurements"`
	Fabrics      map[FabricCategory]string `json:"fabrics"`
}

type DesignQuote struct {
	ProductID    string                    `json:"product_id"`
	ProductName  string                    `json:"product_name"`
	BasePrice    decimal.Decimal           `json:"base_price"`
	Price        decimal.Decimal           `json:"price"`
	Properties   map[string]any            `json:"properties"`
	Measurements map[string]float64        `json:"measurements"`
	Fabrics      map[FabricCategory]string `json:"fabrics"`
}
