// Package pricing holds the money arithmetic shared by the cart, checkout and
// custom design flows. All amounts are decimals; rounding to cents happens only
// on the values handed back to callers.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/tebele-dev/tailor-made-couture/models"
)

var hundred = decimal.NewFromInt(100)

// Subtotal is the sum of price times quantity over items.
func Subtotal(items []models.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// Count is the total number of units across items.
func Count(items []models.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// CheckoutTotals derives subtotal, shipping, tax and total for items.
// Shipping is the flat rate regardless of the cart contents.
func CheckoutTotals(items []models.CartItem, flatShipping, taxRate decimal.Decimal) models.Totals {
	subtotal := Subtotal(items)
	shipping := flatShipping
	tax := subtotal.Add(shipping).Mul(taxRate)
	total := subtotal.Add(shipping).Add(tax)

	return models.Totals{
		Subtotal: subtotal.Round(2),
		Shipping: shipping.Round(2),
		Tax:      tax.Round(2),
		Total:    total.Round(2),
	}
}

// FabricPrice applies each selected fabric's percentage modifier to base.
// Modifiers are signed and are all taken against the base price, not compounded.
func FabricPrice(base decimal.Decimal, selected []models.FabricOption) decimal.Decimal {
	price := base
	for _, f := range selected {
		price = price.Add(base.Mul(f.PriceModifier).Div(hundred))
	}
	return price.Round(2)
}
