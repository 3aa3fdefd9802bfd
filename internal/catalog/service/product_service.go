package service

import (
	"context"

	"github.com/shopledger/pos-backend/internal/catalog/domain"
	"github.com/shopledger/pos-backend/internal/catalog/repository"
	"github.com/shopledger/pos-backend/internal/order/pricing"
	"github.com/shopledger/pos-backend/internal/platform/logger"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	ListProducts(ctx context.Context, shopID string) ([]domain.Product, error)
	GetProductDetails(ctx context.Context, productID string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type productServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productServiceImpl{repo: repo}
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	p := &domain.Product{
		ShopID:      req.ShopID,
		ProductName: req.ProductName,
		Price:       pricing.Round2(req.Price),
		Discount:    req.Discount,
		CGST:        req.CGST,
		SGST:        req.SGST,
		Stock:       req.Stock,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		logger.Error("Svc.CreateProduct: repo error", err)
		return nil, err
	}
	return p, nil
}

func (s *productServiceImpl) ListProducts(ctx context.Context, shopID string) ([]domain.Product, error) {
	return s.repo.ListProductsByShop(ctx, shopID)
}

func (s *productServiceImpl) GetProductDetails(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, productID)
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	req.Price = pricing.Round2(req.Price)
	p, err := s.repo.UpdateProduct(ctx, productID, req)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productServiceImpl) DeleteProduct(ctx context.Context, productID string) error {
	return s.repo.DeleteProduct(ctx, productID)
}
