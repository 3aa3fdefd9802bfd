package mocks

import (
	"context"

	"github.com/shopledger/pos-backend/internal/reporting/domain"
	"github.com/stretchr/testify/mock"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) GetSalesSummary(ctx context.Context, filter domain.ReportFilter) (*domain.SalesSummary, error) {
	args := m.Called(ctx, filter)
	if s := args.Get(0); s != nil {
		return s.(*domain.SalesSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepository) ListTopProducts(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.TopProduct, error) {
	args := m.Called(ctx, filter, limit)
	if p := args.Get(0); p != nil {
		return p.([]domain.TopProduct), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepository) ListCashierSales(ctx context.Context, filter domain.ReportFilter) ([]domain.CashierSales, error) {
	args := m.Called(ctx, filter)
	if cs := args.Get(0); cs != nil {
		return cs.([]domain.CashierSales), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepository) ListDailySales(ctx context.Context, filter domain.ReportFilter) ([]domain.DailySales, error) {
	args := m.Called(ctx, filter)
	if d := args.Get(0); d != nil {
		return d.([]domain.DailySales), args.Error(1)
	}
	return nil, args.Error(1)
}
