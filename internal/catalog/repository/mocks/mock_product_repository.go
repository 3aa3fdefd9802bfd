package mocks

import (
	"context"

	"github.com/shopledger/pos-backend/internal/catalog/domain"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	if product != nil && args.Error(0) == nil {
		product.ID = "mock-product-id"
	}
	return args.Error(0)
}

func (m *MockProductRepository) ListProductsByShop(ctx context.Context, shopID string) ([]domain.Product, error) {
	args := m.Called(ctx, shopID)
	if products := args.Get(0); products != nil {
		return products.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, id, req)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
