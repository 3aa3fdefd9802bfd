package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopledger/pos-backend/internal/catalog/domain"
	"github.com/shopledger/pos-backend/internal/platform/logger"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	ListProductsByShop(ctx context.Context, shopID string) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (shop_id, product_name, price, discount, cgst, sgst, stock)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		product.ShopID, product.ProductName, product.Price,
		product.Discount, product.CGST, product.SGST, product.Stock,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		logger.Error("CreateProduct: failed to insert product", err)
		return err
	}
	return nil
}

func (r *postgresProductRepository) ListProductsByShop(ctx context.Context, shopID string) ([]domain.Product, error) {
	query := `SELECT id, shop_id, product_name, price, discount, cgst, sgst, stock, created_at, updated_at
              FROM products WHERE shop_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, shopID)
	if err != nil {
		logger.Error("ListProductsByShop: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.ShopID, &p.ProductName, &p.Price, &p.Discount,
			&p.CGST, &p.SGST, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			logger.Error("ListProductsByShop: scan failed", err)
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT id, shop_id, product_name, price, discount, cgst, sgst, stock, created_at, updated_at
              FROM products WHERE id = $1`
	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.ShopID, &p.ProductName, &p.Price, &p.Discount,
		&p.CGST, &p.SGST, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (*domain.Product, error) {
	query := `UPDATE products
              SET product_name = $1, price = $2, discount = $3, cgst = $4, sgst = $5, updated_at = NOW()
              WHERE id = $6
              RETURNING id, shop_id, product_name, price, discount, cgst, sgst, stock, created_at, updated_at`
	var p domain.Product
	err := r.db.QueryRowContext(ctx, query,
		req.ProductName, req.Price, req.Discount, req.CGST, req.SGST, id,
	).Scan(&p.ID, &p.ShopID, &p.ProductName, &p.Price, &p.Discount,
		&p.CGST, &p.SGST, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("UpdateProduct: exec failed", err, map[string]interface{}{"product_id": id})
		return nil, err
	}
	return &p, nil
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id string) error {
	// inventory_logs rows cascade with the product; order_items keep their
	// snapshots since they carry no foreign key to products.
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		logger.Error("DeleteProduct: exec failed", err, map[string]interface{}{"product_id": id})
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
