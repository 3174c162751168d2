// Package calculator computes bill line and bill totals with exact decimal arithmetic.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/bistro/pkg/models"
)

// Totals holds the derived amounts of a bill.
type Totals struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// LineTotal returns price × quantity.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// CalculateTotals computes subtotal, tax and grand total over lines.
// subtotal = Σ quantity × price, tax = subtotal × taxRate, grand = subtotal + tax.
// Line totals are recomputed from price and quantity rather than trusted.
func CalculateTotals(lines []models.BillLine, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(LineTotal(line.Price, line.Quantity))
	}

	tax := subtotal.Mul(taxRate)
	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal.Add(tax),
	}
}

// Apply recomputes every line total and the bill totals in place.
func Apply(bill *models.Bill, taxRate decimal.Decimal) {
	for i := range bill.Items {
		bill.Items[i].TotalPrice = LineTotal(bill.Items[i].Price, bill.Items[i].Quantity)
	}

	totals := CalculateTotals(bill.Items, taxRate)
	bill.Subtotal = totals.Subtotal
	bill.TaxAmount = totals.Tax
	bill.GrandTotal = totals.GrandTotal
}

// Round rounds an amount to cents for display. Stored amounts stay exact.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Format renders an amount with two decimals and the currency symbol.
func Format(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}
