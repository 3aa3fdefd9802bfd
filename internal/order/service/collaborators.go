package service

import (
	"context"

	catalogDomain "github.com/shopledger/pos-backend/internal/catalog/domain"
	invDomain "github.com/shopledger/pos-backend/internal/inventory/domain"
	invRepo "github.com/shopledger/pos-backend/internal/inventory/repository"
)

// ProductReader supplies live product state for the advisory stock guard.
// Satisfied by the catalog repository.
type ProductReader interface {
	GetProductByID(ctx context.Context, id string) (*catalogDomain.Product, error)
}

// StockLedger applies a stock movement and its ledger entry inside an open
// transaction. Satisfied by the inventory repository, so order commits share
// the single stock write path.
type StockLedger interface {
	ApplyStockDelta(ctx context.Context, dbops invRepo.DBTX, productID string, delta int, reason invDomain.Reason, userID *string) (*invDomain.LogEntry, error)
}
