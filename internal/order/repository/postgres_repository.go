package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopledger/pos-backend/internal/order/domain"
	"github.com/shopledger/pos-backend/internal/platform/logger"
)

var ErrOrderNotFound = errors.New("order not found")

// DBTX can be *sql.DB or *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
	Commit() error
	Rollback() error
}

type OrderRepository interface {
	BeginTx(ctx context.Context) (DBTX, error)

	// InsertOrderWithItems writes the order header and its items inside the
	// caller's transaction. Item position preserves cart order.
	InsertOrderWithItems(ctx context.Context, dbops DBTX, order *domain.Order) error

	ListOrders(ctx context.Context, filter domain.ListOrdersFilter) ([]domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
}

type postgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) OrderRepository {
	return &postgresOrderRepository{db: db}
}

func (r *postgresOrderRepository) BeginTx(ctx context.Context) (DBTX, error) {
	return r.db.BeginTx(ctx, nil)
}

func (r *postgresOrderRepository) InsertOrderWithItems(ctx context.Context, dbops DBTX, order *domain.Order) error {
	orderQuery := `INSERT INTO orders (shop_id, cashier_id, customer_name, customer_mobile,
                                       payment_method, subtotal, discount, tax, total)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING id, created_at`
	err := dbops.QueryRowContext(ctx, orderQuery,
		order.ShopID, order.CashierID, order.CustomerName, order.CustomerMobile,
		order.PaymentMethod, order.Subtotal, order.Discount, order.Tax, order.Total,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		logger.Error("InsertOrderWithItems: failed to insert order", err)
		return err
	}

	itemStmt, err := dbops.PrepareContext(ctx, `INSERT INTO order_items
        (order_id, product_id, product_name, quantity, price, discount, cgst, sgst, total, position)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id`)
	if err != nil {
		logger.Error("InsertOrderWithItems: failed to prepare item statement", err)
		return err
	}
	defer itemStmt.Close()

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = itemStmt.QueryRowContext(ctx,
			item.OrderID, item.ProductID, item.ProductName, item.Quantity,
			item.Price, item.Discount, item.CGST, item.SGST, item.Total, i,
		).Scan(&item.ID)
		if err != nil {
			logger.Error("InsertOrderWithItems: failed to insert order item", err,
				map[string]interface{}{"product_id": item.ProductID})
			return err
		}
	}
	return nil
}

func (r *postgresOrderRepository) ListOrders(ctx context.Context, filter domain.ListOrdersFilter) ([]domain.Order, error) {
	query := `SELECT id, shop_id, cashier_id, customer_name, customer_mobile,
                     payment_method, subtotal, discount, tax, total, created_at
              FROM orders
              WHERE shop_id = $1
                AND ($2::uuid IS NULL OR cashier_id = $2)
                AND ($3::text IS NULL OR payment_method = $3)
                AND ($4::timestamptz IS NULL OR created_at >= $4)
                AND ($5::timestamptz IS NULL OR created_at <= $5)
              ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query,
		filter.ShopID,
		nullString(filter.CashierID),
		nullString(filter.PaymentMethod),
		nullTime(filter.From),
		nullTime(filter.To),
	)
	if err != nil {
		logger.Error("ListOrders: query failed", err, map[string]interface{}{"shop_id": filter.ShopID})
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	orderIndex := map[string]int{}
	orderIDs := []string{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.ShopID, &o.CashierID, &o.CustomerName, &o.CustomerMobile,
			&o.PaymentMethod, &o.Subtotal, &o.Discount, &o.Tax, &o.Total, &o.CreatedAt); err != nil {
			logger.Error("ListOrders: scan failed", err)
			return nil, err
		}
		o.Items = []domain.OrderItem{}
		orderIndex[o.ID] = len(orders)
		orderIDs = append(orderIDs, o.ID)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.listItemsForOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		idx := orderIndex[item.OrderID]
		orders[idx].Items = append(orders[idx].Items, item)
	}
	return orders, nil
}

func (r *postgresOrderRepository) listItemsForOrders(ctx context.Context, orderIDs []string) ([]domain.OrderItem, error) {
	query := `SELECT id, order_id, product_id, product_name, quantity, price, discount, cgst, sgst, total
              FROM order_items
              WHERE order_id = ANY($1)
              ORDER BY order_id, position ASC`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(orderIDs))
	if err != nil {
		logger.Error("listItemsForOrders: query failed", err)
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.Price, &it.Discount, &it.CGST, &it.SGST, &it.Total); err != nil {
			logger.Error("listItemsForOrders: scan failed", err)
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT id, shop_id, cashier_id, customer_name, customer_mobile,
                     payment_method, subtotal, discount, tax, total, created_at
              FROM orders WHERE id = $1`
	var o domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.ShopID, &o.CashierID, &o.CustomerName, &o.CustomerMobile,
		&o.PaymentMethod, &o.Subtotal, &o.Discount, &o.Tax, &o.Total, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		logger.Error("GetOrderByID: query failed", err, map[string]interface{}{"order_id": id})
		return nil, err
	}

	items, err := r.listItemsForOrders(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
