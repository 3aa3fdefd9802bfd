package service

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/shopledger/pos-backend/internal/catalog/repository"
	invDomain "github.com/shopledger/pos-backend/internal/inventory/domain"
	invRepo "github.com/shopledger/pos-backend/internal/inventory/repository"
	"github.com/shopledger/pos-backend/internal/order/domain"
	"github.com/shopledger/pos-backend/internal/order/pricing"
	"github.com/shopledger/pos-backend/internal/order/repository"
	"github.com/shopledger/pos-backend/internal/platform/logger"
)

var (
	ErrOrderCreationFailed = errors.New("order creation failed")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
)

type OrderService interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.ListOrdersFilter) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
}

type orderServiceImpl struct {
	orderRepo     repository.OrderRepository
	productReader ProductReader
	stockLedger   StockLedger
}

func NewOrderService(or repository.OrderRepository, pr ProductReader, sl StockLedger) OrderService {
	return &orderServiceImpl{
		orderRepo:     or,
		productReader: pr,
		stockLedger:   sl,
	}
}

// CreateOrder settles a cart: advisory stock guard, pricing, then one
// all-or-nothing transaction covering the order rows, the stock decrements
// and the ledger entries.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	// 1. Advisory stock guard. Fails fast with an actionable message, but the
	// commit below re-validates: this read is stale the moment it returns.
	if err := s.checkStockAvailability(ctx, req.Items); err != nil {
		return nil, err
	}

	// 2. Compute totals from the snapshotted line attributes.
	lines := make([]pricing.LineInput, len(req.Items))
	for i, item := range req.Items {
		lines[i] = pricing.LineInput{
			Price:           item.Price,
			Quantity:        item.Quantity,
			DiscountPercent: item.Discount,
			CGSTPercent:     item.CGST,
			SGSTPercent:     item.SGST,
		}
	}
	totals, lineTotals := pricing.ComputeOrderTotals(lines)

	order := &domain.Order{
		ShopID:         req.ShopID,
		CashierID:      req.CashierID,
		CustomerName:   req.CustomerName,
		CustomerMobile: req.CustomerMobile,
		PaymentMethod:  req.PaymentMethod,
		Subtotal:       pricing.Round2(totals.Subtotal),
		Discount:       pricing.Round2(totals.Discount),
		Tax:            pricing.Round2(totals.Tax),
		Total:          pricing.Round2(totals.Total),
		Items:          make([]domain.OrderItem, len(req.Items)),
	}
	for i, item := range req.Items {
		order.Items[i] = domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Discount:    item.Discount,
			CGST:        item.CGST,
			SGST:        item.SGST,
			Total:       pricing.Round2(lineTotals[i].Total),
		}
	}

	// 3. Atomic commit: order + items + stock decrements + ledger entries
	// succeed or fail as one unit.
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("Svc.CreateOrder: begin tx failed", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}
	defer tx.Rollback()

	if err := s.orderRepo.InsertOrderWithItems(ctx, tx, order); err != nil {
		logger.Error("Svc.CreateOrder: failed to insert order", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	for _, item := range req.Items {
		// The conditional update inside ApplyStockDelta is the authoritative
		// stock check; it closes the race the advisory guard leaves open.
		_, err := s.stockLedger.ApplyStockDelta(ctx, tx, item.ProductID, -item.Quantity,
			invDomain.ReasonSale, &req.CashierID)
		if err != nil {
			if errors.Is(err, invRepo.ErrInsufficientStock) || errors.Is(err, invRepo.ErrProductNotFound) {
				return nil, err
			}
			logger.Error("Svc.CreateOrder: stock decrement failed", err,
				map[string]interface{}{"product_id": item.ProductID})
			return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Svc.CreateOrder: commit failed", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	return order, nil
}

func (s *orderServiceImpl) checkStockAvailability(ctx context.Context, items []domain.CreateOrderItemRequest) error {
	for _, item := range items {
		product, err := s.productReader.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrProductNotFound) {
				return fmt.Errorf("%w: %s", invRepo.ErrProductNotFound, item.ProductID)
			}
			return fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
		}
		if product.Stock < item.Quantity {
			return &invRepo.StockShortfallError{
				ProductID:   product.ID,
				ProductName: product.ProductName,
				Available:   product.Stock,
				Requested:   item.Quantity,
			}
		}
	}
	return nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, filter domain.ListOrdersFilter) ([]domain.Order, error) {
	if filter.ShopID == "" {
		return nil, errors.New("shop_id is required")
	}
	return s.orderRepo.ListOrders(ctx, filter)
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orderRepo.GetOrderByID(ctx, id)
}
