package domain

import (
	"time"
)

// ReportFilter scopes every report to one shop and an optional time range.
type ReportFilter struct {
	ShopID string
	From   *time.Time
	To     *time.Time
}

type SalesSummary struct {
	OrderCount int     `json:"order_count"`
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	Tax        float64 `json:"tax"`
	Revenue    float64 `json:"revenue"`
}

// TopProduct aggregates order_items rows. ProductName is the snapshotted name
// from the sale, so rankings stay stable after product edits or deletion.
type TopProduct struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

type CashierSales struct {
	CashierID  string  `json:"cashier_id"`
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

type DailySales struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}
