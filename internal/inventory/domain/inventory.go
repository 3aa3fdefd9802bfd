package domain

import (
	"time"
)

// Reason classifies a stock movement in the ledger.
type Reason string

const (
	ReasonSale             Reason = "sale"
	ReasonManualAdjustment Reason = "manual_adjustment"
	ReasonSupplierReceipt  Reason = "supplier_receipt"
	ReasonProduction       Reason = "production"
	ReasonStockCorrection  Reason = "stock_correction"
	ReasonReturn           Reason = "return"
	ReasonDamage           Reason = "damage"
	ReasonOther            Reason = "other"
)

func (r Reason) Valid() bool {
	switch r {
	case ReasonSale, ReasonManualAdjustment, ReasonSupplierReceipt, ReasonProduction,
		ReasonStockCorrection, ReasonReturn, ReasonDamage, ReasonOther:
		return true
	}
	return false
}

// LogEntry is one append-only ledger row. Entries are never updated or
// deleted; CreatedAt with the insertion sequence as tie-break defines the
// canonical stock timeline.
type LogEntry struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	Delta          int       `json:"delta"`
	ResultingStock int       `json:"resulting_stock"`
	Reason         Reason    `json:"reason"`
	UserID         *string   `json:"user_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Delta carries no required tag: binding would treat a literal 0 as absent,
// and the service owns the zero-delta rejection.
type AdjustStockRequest struct {
	Delta  int     `json:"delta"`
	Reason Reason  `json:"reason" binding:"required"`
	UserID *string `json:"user_id,omitempty" binding:"omitempty,uuid"`
}

type AdjustStockResult struct {
	ProductID string   `json:"product_id"`
	Stock     int      `json:"stock"`
	Entry     LogEntry `json:"entry"`
}

// HistoryPoint is one point of the stock timeline as served to reporting
// consumers, possibly downsampled to one point per day.
type HistoryPoint struct {
	Date   time.Time `json:"date"`
	Stock  int       `json:"stock"`
	Delta  int       `json:"delta"`
	Reason Reason    `json:"reason,omitempty"`
}

// StockDrift reports a product whose stock column disagrees with the latest
// ledger entry. Any occurrence means a write bypassed the ledger.
type StockDrift struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Stock          int    `json:"stock"`
	ResultingStock int    `json:"resulting_stock"`
}
