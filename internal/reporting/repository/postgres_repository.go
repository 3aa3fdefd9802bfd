package repository

import (
	"context"
	"database/sql"

	"github.com/shopledger/pos-backend/internal/reporting/domain"
)

type ReportRepository interface {
	GetSalesSummary(ctx context.Context, filter domain.ReportFilter) (*domain.SalesSummary, error)
	ListTopProducts(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.TopProduct, error)
	ListCashierSales(ctx context.Context, filter domain.ReportFilter) ([]domain.CashierSales, error)
	ListDailySales(ctx context.Context, filter domain.ReportFilter) ([]domain.DailySales, error)
}

type postgresReportRepository struct {
	db *sql.DB
}

func NewPostgresReportRepository(db *sql.DB) ReportRepository {
	return &postgresReportRepository{db: db}
}

func (r *postgresReportRepository) GetSalesSummary(ctx context.Context, filter domain.ReportFilter) (*domain.SalesSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(subtotal), 0),
		       COALESCE(SUM(discount), 0),
		       COALESCE(SUM(tax), 0),
		       COALESCE(SUM(total), 0)
		FROM orders
		WHERE shop_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)`

	var s domain.SalesSummary
	err := r.db.QueryRowContext(ctx, query, filter.ShopID, filter.From, filter.To).
		Scan(&s.OrderCount, &s.Subtotal, &s.Discount, &s.Tax, &s.Revenue)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresReportRepository) ListTopProducts(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.TopProduct, error) {
	// Groups by the snapshotted product_name as well as product_id, so renamed
	// products show one row per name they sold under.
	query := `
		SELECT oi.product_id, oi.product_name,
		       COALESCE(SUM(oi.quantity), 0),
		       COALESCE(SUM(oi.total), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.shop_id = $1
		  AND ($2::timestamptz IS NULL OR o.created_at >= $2)
		  AND ($3::timestamptz IS NULL OR o.created_at <= $3)
		GROUP BY oi.product_id, oi.product_name
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $4`

	rows, err := r.db.QueryContext(ctx, query, filter.ShopID, filter.From, filter.To, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.TopProduct{}
	for rows.Next() {
		var p domain.TopProduct
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.Quantity, &p.Revenue); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresReportRepository) ListCashierSales(ctx context.Context, filter domain.ReportFilter) ([]domain.CashierSales, error) {
	query := `
		SELECT cashier_id, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE shop_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		GROUP BY cashier_id
		ORDER BY SUM(total) DESC`

	rows, err := r.db.QueryContext(ctx, query, filter.ShopID, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []domain.CashierSales{}
	for rows.Next() {
		var cs domain.CashierSales
		if err := rows.Scan(&cs.CashierID, &cs.OrderCount, &cs.Revenue); err != nil {
			return nil, err
		}
		sales = append(sales, cs)
	}
	return sales, rows.Err()
}

func (r *postgresReportRepository) ListDailySales(ctx context.Context, filter domain.ReportFilter) ([]domain.DailySales, error) {
	query := `
		SELECT TO_CHAR(DATE(created_at), 'YYYY-MM-DD'), COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE shop_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at) ASC`

	rows, err := r.db.QueryContext(ctx, query, filter.ShopID, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := []domain.DailySales{}
	for rows.Next() {
		var d domain.DailySales
		if err := rows.Scan(&d.Date, &d.OrderCount, &d.Revenue); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
