package service

import (
	"context"
	"errors"

	"github.com/shopledger/pos-backend/internal/reporting/domain"
	"github.com/shopledger/pos-backend/internal/reporting/repository"
)

var ErrShopIDRequired = errors.New("shop_id is required")

const (
	defaultTopProductsLimit = 10
	maxTopProductsLimit     = 100
)

type ReportService interface {
	SalesSummary(ctx context.Context, filter domain.ReportFilter) (*domain.SalesSummary, error)
	TopProducts(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.TopProduct, error)
	CashierSales(ctx context.Context, filter domain.ReportFilter) ([]domain.CashierSales, error)
	DailySales(ctx context.Context, filter domain.ReportFilter) ([]domain.DailySales, error)
}

type reportServiceImpl struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportServiceImpl{repo: repo}
}

func (s *reportServiceImpl) SalesSummary(ctx context.Context, filter domain.ReportFilter) (*domain.SalesSummary, error) {
	if filter.ShopID == "" {
		return nil, ErrShopIDRequired
	}
	return s.repo.GetSalesSummary(ctx, filter)
}

func (s *reportServiceImpl) TopProducts(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.TopProduct, error) {
	if filter.ShopID == "" {
		return nil, ErrShopIDRequired
	}
	if limit <= 0 {
		limit = defaultTopProductsLimit
	}
	if limit > maxTopProductsLimit {
		limit = maxTopProductsLimit
	}
	return s.repo.ListTopProducts(ctx, filter, limit)
}

func (s *reportServiceImpl) CashierSales(ctx context.Context, filter domain.ReportFilter) ([]domain.CashierSales, error) {
	if filter.ShopID == "" {
		return nil, ErrShopIDRequired
	}
	return s.repo.ListCashierSales(ctx, filter)
}

func (s *reportServiceImpl) DailySales(ctx context.Context, filter domain.ReportFilter) ([]domain.DailySales, error) {
	if filter.ShopID == "" {
		return nil, ErrShopIDRequired
	}
	return s.repo.ListDailySales(ctx, filter)
}
