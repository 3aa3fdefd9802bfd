package mocks

import (
	"context"

	catalogDomain "github.com/shopledger/pos-backend/internal/catalog/domain"
	invDomain "github.com/shopledger/pos-backend/internal/inventory/domain"
	invRepo "github.com/shopledger/pos-backend/internal/inventory/repository"
	"github.com/stretchr/testify/mock"
)

type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) GetProductByID(ctx context.Context, id string) (*catalogDomain.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*catalogDomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockStockLedger struct {
	mock.Mock
}

func (m *MockStockLedger) ApplyStockDelta(ctx context.Context, dbops invRepo.DBTX, productID string, delta int, reason invDomain.Reason, userID *string) (*invDomain.LogEntry, error) {
	args := m.Called(ctx, dbops, productID, delta, reason, userID)
	if entry := args.Get(0); entry != nil {
		return entry.(*invDomain.LogEntry), args.Error(1)
	}
	return nil, args.Error(1)
}
