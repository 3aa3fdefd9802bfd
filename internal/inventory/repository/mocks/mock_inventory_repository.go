package mocks

import (
	"context"
	"time"

	"github.com/shopledger/pos-backend/internal/inventory/domain"
	invRepo "github.com/shopledger/pos-backend/internal/inventory/repository"
	"github.com/stretchr/testify/mock"
)

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) BeginTx(ctx context.Context) (invRepo.DBTX, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(invRepo.DBTX), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryRepository) ApplyStockDelta(ctx context.Context, dbops invRepo.DBTX, productID string, delta int, reason domain.Reason, userID *string) (*domain.LogEntry, error) {
	args := m.Called(ctx, dbops, productID, delta, reason, userID)
	if entry := args.Get(0); entry != nil {
		return entry.(*domain.LogEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryRepository) ListLogEntries(ctx context.Context, productID string, from, to *time.Time) ([]domain.LogEntry, error) {
	args := m.Called(ctx, productID, from, to)
	if entries := args.Get(0); entries != nil {
		return entries.([]domain.LogEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryRepository) HasLogEntries(ctx context.Context, productID string) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryRepository) GetProductStock(ctx context.Context, productID string) (string, int, error) {
	args := m.Called(ctx, productID)
	return args.String(0), args.Int(1), args.Error(2)
}

func (m *MockInventoryRepository) ListStockDrift(ctx context.Context) ([]domain.StockDrift, error) {
	args := m.Called(ctx)
	if drifts := args.Get(0); drifts != nil {
		return drifts.([]domain.StockDrift), args.Error(1)
	}
	return nil, args.Error(1)
}
