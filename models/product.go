package models

import "github.com/shopspring/decimal"

type FabricCategory string

const (
	FabricPrimary   FabricCategory = "primary"
	FabricSecondary FabricCategory = "secondary"
	FabricTertiary  FabricCategory = "tertiary"
)

// Valid reports whether c is one of the known fabric slots.
func (c FabricCategory) Valid() bool {
	switch c {
	case FabricPrimary, FabricSecondary, FabricTertiary:
		return true
	}
	return false
}

type PropertyType string

const (
	PropertyText      PropertyType = "text"
	PropertyNumber    PropertyType = "number"
	PropertyBoolean   PropertyType = "boolean"
	PropertySelection PropertyType = "selection"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyText, PropertyNumber, PropertyBoolean, PropertySelection:
		return true
	}
	return false
}

type PropertyCategory string

const (
	CategoryMeasurements PropertyCategory = "measurements"
	CategoryDesign       PropertyCategory = "design"
	CategoryFabric       PropertyCategory = "fabric"
	CategoryOther        PropertyCategory = "other"
)

func (c PropertyCategory) Valid() bool {
	switch c {
	case CategoryMeasurements, CategoryDesign, CategoryFabric, CategoryOther:
		return true
	}
	return false
}

type FabricOption struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      FabricCategory  `json:"category"`
	Image         string          `json:"image,omitempty"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	Description   string          `json:"description,omitempty"`
	SwatchColor   string          `json:"swatch_color,omitempty"`
}

type CustomProperty struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Type         PropertyType     `json:"type"`
	Required     bool             `json:"required"`
	Options      []string         `json:"options,omitempty"`
	DefaultValue any              `json:"default_value,omitempty"`
	Category     PropertyCategory `json:"category"`
}

type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
	Rating   float64         `json:"rating"`
	IsCustom bool            `json:"is_custom"`
}

type ProductDetails struct {
	Material string `json:"material"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Care     string `json:"care"`
}

type ProductDetail struct {
	Product
	Description      string           `json:"description"`
	Images           []string         `json:"images"`
	Details          ProductDetails   `json:"details"`
	Measurements     []string         `json:"measurements,omitempty"`
	CustomProperties []CustomProperty `json:"custom_properties,omitempty"`
	FabricOptions    []FabricOption   `json:"fabric_options,omitempty"`
}

// Clone returns a deep copy so callers can never alias catalog state.
func (p ProductDetail) Clone() ProductDetail {
	out := p
	out.Images = append([]string(nil), p.Images...)
	out.Measurements = append([]string(nil), p.Measurements...)
	out.FabricOptions = append([]FabricOption(nil), p.FabricOptions...)
	out.CustomProperties = CloneProperties(p.CustomProperties)
	return out
}

// FabricCategories lists the distinct fabric slots the product declares, in declaration order.
func (p ProductDetail) FabricCategories() []FabricCategory {
	var out []FabricCategory
	seen := make(map[FabricCategory]bool)
	for _, f := range p.FabricOptions {
		if !seen[f.Category] {
			seen[f.Category] = true
			out = append(out, f.Category)
		}
	}
	return out
}

func (p ProductDetail) FabricByID(id string) (FabricOption, bool) {
	for _, f := range p.FabricOptions {
		if f.ID == id {
			return f, true
		}
	}
	return FabricOption{}, false
}

func CloneProperties(props []CustomProperty) []CustomProperty {
	if props == nil {
		return nil
	}
	out := make([]CustomProperty, len(props))
	for i, p := range props {
		p.Options = append([]string(nil), p.Options...)
		out[i] = p
	}
	return out
}
