package domain

import "github.com/shopspring/decimal"

// Totals holds the derived monetary figures of an invoice. The values are
// exact decimals; rounding to two places happens only in the presentation
// helpers so that recomputation never accumulates rounding error.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// Totals recomputes all derived amounts from the invoice:
//
//	subtotal = Σ quantity×price
//	discount = subtotal × discountRate/100
//	tax      = (subtotal − discount) × taxRate/100
//	total    = subtotal − discount + tax
//
// Tax is applied to the post-discount base, not the raw subtotal. Nothing
// here is cached; callers recompute on every render.
func (inv Invoice) Totals() Totals {
	subtotal := decimal.Zero
	for _, item := range inv.LineItems {
		qty := decimal.NewFromFloat(item.Quantity)
		price := decimal.NewFromFloat(item.Price)
		subtotal = subtotal.Add(qty.Mul(price))
	}

	discount := subtotal.Mul(decimal.NewFromFloat(inv.DiscountRate)).Div(oneHundred)
	taxBase := subtotal.Sub(discount)
	tax := taxBase.Mul(decimal.NewFromFloat(inv.TaxRate)).Div(oneHundred)
	total := taxBase.Add(tax)

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    total,
	}
}

// LineTotal returns quantity×price for a single row.
func (item LineItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.Price))
}

// Display formats a derived amount for rendering, rounded to two decimal
// places. Only the displayed string is rounded, never the stored values.
func Display(d decimal.Decimal) string {
	return d.StringFixed(2)
}
