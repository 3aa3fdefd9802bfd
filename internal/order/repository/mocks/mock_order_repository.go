package mocks

import (
	"context"

	"github.com/shopledger/pos-backend/internal/order/domain"
	ordRepo "github.com/shopledger/pos-backend/internal/order/repository"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (ordRepo.DBTX, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(ordRepo.DBTX), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) InsertOrderWithItems(ctx context.Context, dbops ordRepo.DBTX, order *domain.Order) error {
	args := m.Called(ctx, dbops, order)
	if order != nil && args.Error(0) == nil {
		order.ID = "mock-order-id"
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
	}
	return args.Error(0)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, filter domain.ListOrdersFilter) ([]domain.Order, error) {
	args := m.Called(ctx, filter)
	if orders := args.Get(0); orders != nil {
		return orders.([]domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}
