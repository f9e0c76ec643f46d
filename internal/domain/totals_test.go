package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotals(t *testing.T) {
	inv := Invoice{
		LineItems: []LineItem{
			{ID: "1", Quantity: 3, Price: 50},
			{ID: "2", Quantity: 2, Price: 50},
			{ID: "3", Quantity: 5, Price: 5},
		},
		DiscountRate: 10,
		TaxRate:      8,
	}

	totals := inv.Totals()

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromFloat(275)), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.Discount.Equal(decimal.NewFromFloat(27.5)), "discount = %s", totals.Discount)
	assert.True(t, totals.Tax.Equal(decimal.NewFromFloat(19.8)), "tax = %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.NewFromFloat(267.3)), "total = %s", totals.Total)
}

// Tax must be computed on the post-discount base, not the raw subtotal.
func TestTotalsTaxAppliesAfterDiscount(t *testing.T) {
	inv := Invoice{
		LineItems:    []LineItem{{ID: "1", Quantity: 1, Price: 100}},
		DiscountRate: 50,
		TaxRate:      10,
	}

	totals := inv.Totals()

	// (100 - 50) × 10% = 5, not 100 × 10% = 10.
	assert.True(t, totals.Tax.Equal(decimal.NewFromFloat(5)), "tax = %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.NewFromFloat(55)), "total = %s", totals.Total)
}

func TestTotalsIdentity(t *testing.T) {
	inv := Default()
	inv.DiscountRate = 12.5
	inv.TaxRate = 7.25

	totals := inv.Totals()
	want := totals.Subtotal.Sub(totals.Discount).Add(totals.Tax)

	assert.True(t, totals.Total.Equal(want), "total must equal subtotal - discount + tax")
}

func TestTotalsEmptyInvoice(t *testing.T) {
	totals := Invoice{}.Totals()

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

// Recomputing totals repeatedly must never drift: rounding happens only in
// Display, never in the underlying values.
func TestTotalsNoRoundingAccumulation(t *testing.T) {
	inv := Invoice{
		LineItems:    []LineItem{{ID: "1", Quantity: 3, Price: 0.1}},
		DiscountRate: 33.333,
		TaxRate:      7.777,
	}

	first := inv.Totals()
	for i := 0; i < 1000; i++ {
		again := inv.Totals()
		assert.True(t, first.Total.Equal(again.Total))
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "267.30", Display(decimal.NewFromFloat(267.3)))
	assert.Equal(t, "0.00", Display(decimal.Zero))
	assert.Equal(t, "12.50", Display(decimal.NewFromFloat(12.5)))
}

func TestLineTotal(t *testing.T) {
	item := LineItem{Quantity: 5, Price: 5}
	assert.True(t, item.LineTotal().Equal(decimal.NewFromInt(25)))
}
