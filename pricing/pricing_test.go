package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tebele-dev/tailor-made-couture/models"
)

func item(id string, price string, qty int) models.CartItem {
	return models.CartItem{
		Product:  models.Product{ID: id, Price: decimal.RequireFromString(price)},
		Quantity: qty,
	}
}

func TestCheckoutTotals_Example(t *testing.T) {
	items := []models.CartItem{item("a", "100", 2), item("b", "50", 1)}

	totals := CheckoutTotals(items, decimal.RequireFromString("15.00"), decimal.RequireFromString("0.08"))

	assert.Equal(t, "250.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "15.00", totals.Shipping.StringFixed(2))
	assert.Equal(t, "21.20", totals.Tax.StringFixed(2))
	assert.Equal(t, "286.20", totals.Total.StringFixed(2))
}

func TestCheckoutTotals_EmptyCart(t *testing.T) {
	totals := CheckoutTotals(nil, decimal.RequireFromString("15.00"), decimal.RequireFromString("0.08"))

	assert.True(t, totals.Subtotal.IsZero())
	assert.Equal(t, "15.00", totals.Shipping.StringFixed(2))
	assert.Equal(t, "1.20", totals.Tax.StringFixed(2))
	assert.Equal(t, "16.20", totals.Total.StringFixed(2))
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count(nil))
	assert.Equal(t, 3, Count([]models.CartItem{item("a", "1", 2), item("b", "1", 1)}))
}

func TestFabricPrice(t *testing.T) {
	base := decimal.RequireFromString("899.99")
	fabrics := []models.FabricOption{
		{ID: "cashmere", Category: models.FabricPrimary, PriceModifier: decimal.NewFromInt(25)},
		{ID: "silk", Category: models.FabricSecondary, PriceModifier: decimal.NewFromInt(15)},
		{ID: "linen", Category: models.FabricTertiary, PriceModifier: decimal.NewFromInt(-10)},
	}

	// 899.99 + 224.9975 + 134.9985 - 89.999 = 1169.987
	assert.Equal(t, "1169.99", FabricPrice(base, fabrics).StringFixed(2))
	assert.Equal(t, "899.99", FabricPrice(base, nil).StringFixed(2))
}

func TestFabricPrice_NegativeModifierReducesPrice(t *testing.T) {
	price := FabricPrice(decimal.NewFromInt(100), []models.FabricOption{{PriceModifier: decimal.NewFromInt(-10)}})
	assert.Equal(t, "90.00", price.StringFixed(2))
}
