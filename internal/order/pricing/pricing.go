// Package pricing computes per-line and aggregate order totals.
//
// Price is the tax-exclusive unit price: discount applies on the gross line
// amount, CGST and SGST apply on the discounted amount. All functions are
// pure; intermediate sums stay unrounded and callers round once with Round2
// when persisting, to avoid accumulating float drift.
package pricing

import (
	"math"
)

type LineInput struct {
	Price           float64
	Quantity        int
	DiscountPercent float64
	CGSTPercent     float64
	SGSTPercent     float64
}

type LineTotals struct {
	Gross          float64
	DiscountAmount float64
	AfterDiscount  float64
	CGSTAmount     float64
	SGSTAmount     float64
	Total          float64
}

type OrderTotals struct {
	Subtotal float64
	Discount float64
	Tax      float64
	Total    float64
}

func ComputeLine(in LineInput) LineTotals {
	gross := in.Price * float64(in.Quantity)
	discountAmount := gross * in.DiscountPercent / 100
	afterDiscount := gross - discountAmount
	cgstAmount := afterDiscount * in.CGSTPercent / 100
	sgstAmount := afterDiscount * in.SGSTPercent / 100

	return LineTotals{
		Gross:          gross,
		DiscountAmount: discountAmount,
		AfterDiscount:  afterDiscount,
		CGSTAmount:     cgstAmount,
		SGSTAmount:     sgstAmount,
		Total:          afterDiscount + cgstAmount + sgstAmount,
	}
}

func ComputeOrderTotals(lines []LineInput) (OrderTotals, []LineTotals) {
	var totals OrderTotals
	lineTotals := make([]LineTotals, len(lines))
	for i, line := range lines {
		lt := ComputeLine(line)
		lineTotals[i] = lt
		totals.Subtotal += lt.Gross
		totals.Discount += lt.DiscountAmount
		totals.Tax += lt.CGSTAmount + lt.SGSTAmount
	}
	totals.Total = totals.Subtotal - totals.Discount + totals.Tax
	return totals, lineTotals
}

// Round2 rounds a monetary value to 2 decimal places. Applied once at the
// point of persistence, never on intermediate sums.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BaseUnitPrice back-derives a tax-exclusive price from a GST-inclusive MRP.
// Display-only: invoice rendering uses it for MRP-labelled lines. Settlement
// never does, since order capture already carries tax-exclusive prices.
func BaseUnitPrice(mrp, cgstPercent, sgstPercent float64) float64 {
	return mrp / (1 + (cgstPercent+sgstPercent)/100)
}
