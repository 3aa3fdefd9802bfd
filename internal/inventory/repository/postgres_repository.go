package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq" // for pq.Error code classification
	"github.com/shopledger/pos-backend/internal/inventory/domain"
	"github.com/shopledger/pos-backend/internal/platform/logger"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockShortfallError names the offending product so callers can render an
// actionable rejection. Unwraps to ErrInsufficientStock.
type StockShortfallError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *StockShortfallError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *StockShortfallError) Unwrap() error { return ErrInsufficientStock }

// DBTX can be *sql.DB or *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
	Commit() error
	Rollback() error
}

type InventoryRepository interface {
	BeginTx(ctx context.Context) (DBTX, error)

	// ApplyStockDelta is the single write path for product stock: it moves the
	// stock column and appends the matching ledger entry in one statement pair,
	// inside the caller's transaction.
	ApplyStockDelta(ctx context.Context, dbops DBTX, productID string, delta int, reason domain.Reason, userID *string) (*domain.LogEntry, error)

	ListLogEntries(ctx context.Context, productID string, from, to *time.Time) ([]domain.LogEntry, error)
	HasLogEntries(ctx context.Context, productID string) (bool, error)
	GetProductStock(ctx context.Context, productID string) (string, int, error)
	ListStockDrift(ctx context.Context) ([]domain.StockDrift, error)
}

type postgresInventoryRepository struct {
	db *sql.DB
}

func NewPostgresInventoryRepository(db *sql.DB) InventoryRepository {
	return &postgresInventoryRepository{db: db}
}

func (r *postgresInventoryRepository) BeginTx(ctx context.Context) (DBTX, error) {
	return r.db.BeginTx(ctx, nil)
}

func (r *postgresInventoryRepository) ApplyStockDelta(ctx context.Context, dbops DBTX, productID string, delta int, reason domain.Reason, userID *string) (*domain.LogEntry, error) {
	// Conditional update, not read-modify-write: the WHERE clause is what keeps
	// stock from going negative under concurrent writers.
	updateQuery := `UPDATE products SET stock = stock + $1, updated_at = NOW()
                    WHERE id = $2 AND stock + $1 >= 0
                    RETURNING stock`
	var resultingStock int
	err := dbops.QueryRowContext(ctx, updateQuery, delta, productID).Scan(&resultingStock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.classifyRejection(ctx, dbops, productID, delta)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" { // check_violation
			return nil, r.classifyRejection(ctx, dbops, productID, delta)
		}
		logger.Error("ApplyStockDelta: update failed", err, map[string]interface{}{"product_id": productID})
		return nil, err
	}

	entry := &domain.LogEntry{
		ProductID:      productID,
		Delta:          delta,
		ResultingStock: resultingStock,
		Reason:         reason,
		UserID:         userID,
	}
	insertQuery := `INSERT INTO inventory_logs (product_id, delta, resulting_stock, reason, user_id)
                    VALUES ($1, $2, $3, $4, $5)
                    RETURNING id, created_at`
	var userIDArg interface{}
	if userID != nil {
		userIDArg = *userID
	}
	err = dbops.QueryRowContext(ctx, insertQuery,
		productID, delta, resultingStock, string(reason), userIDArg,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		logger.Error("ApplyStockDelta: log insert failed", err, map[string]interface{}{"product_id": productID})
		return nil, err
	}
	return entry, nil
}

// classifyRejection runs inside the same transaction so the reported availability
// matches the state the update actually saw.
func (r *postgresInventoryRepository) classifyRejection(ctx context.Context, dbops DBTX, productID string, delta int) error {
	var name string
	var stock int
	err := dbops.QueryRowContext(ctx, `SELECT product_name, stock FROM products WHERE id = $1`, productID).
		Scan(&name, &stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		logger.Error("classifyRejection: lookup failed", err, map[string]interface{}{"product_id": productID})
		return err
	}
	return &StockShortfallError{
		ProductID:   productID,
		ProductName: name,
		Available:   stock,
		Requested:   -delta,
	}
}

func (r *postgresInventoryRepository) ListLogEntries(ctx context.Context, productID string, from, to *time.Time) ([]domain.LogEntry, error) {
	query := `SELECT id, product_id, delta, resulting_stock, reason, user_id, created_at
              FROM inventory_logs
              WHERE product_id = $1
                AND ($2::timestamptz IS NULL OR created_at >= $2)
                AND ($3::timestamptz IS NULL OR created_at <= $3)
              ORDER BY created_at ASC, seq ASC`
	rows, err := r.db.QueryContext(ctx, query, productID, from, to)
	if err != nil {
		logger.Error("ListLogEntries: query failed", err, map[string]interface{}{"product_id": productID})
		return nil, err
	}
	defer rows.Close()

	entries := []domain.LogEntry{}
	for rows.Next() {
		var e domain.LogEntry
		var userID sql.NullString
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Delta, &e.ResultingStock, &e.Reason, &userID, &e.CreatedAt); err != nil {
			logger.Error("ListLogEntries: scan failed", err)
			return nil, err
		}
		if userID.Valid {
			e.UserID = &userID.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *postgresInventoryRepository) HasLogEntries(ctx context.Context, productID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM inventory_logs WHERE product_id = $1)`, productID,
	).Scan(&exists)
	if err != nil {
		logger.Error("HasLogEntries: query failed", err, map[string]interface{}{"product_id": productID})
		return false, err
	}
	return exists, nil
}

func (r *postgresInventoryRepository) GetProductStock(ctx context.Context, productID string) (string, int, error) {
	var name string
	var stock int
	err := r.db.QueryRowContext(ctx, `SELECT product_name, stock FROM products WHERE id = $1`, productID).
		Scan(&name, &stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", 0, ErrProductNotFound
		}
		logger.Error("GetProductStock: query failed", err, map[string]interface{}{"product_id": productID})
		return "", 0, err
	}
	return name, stock, nil
}

func (r *postgresInventoryRepository) ListStockDrift(ctx context.Context) ([]domain.StockDrift, error) {
	query := `SELECT p.id, p.product_name, p.stock, l.resulting_stock
              FROM products p
              JOIN LATERAL (
                  SELECT resulting_stock FROM inventory_logs
                  WHERE product_id = p.id
                  ORDER BY created_at DESC, seq DESC
                  LIMIT 1
              ) l ON TRUE
              WHERE p.stock <> l.resulting_stock`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListStockDrift: query failed", err)
		return nil, err
	}
	defer rows.Close()

	drifts := []domain.StockDrift{}
	for rows.Next() {
		var d domain.StockDrift
		if err := rows.Scan(&d.ProductID, &d.ProductName, &d.Stock, &d.ResultingStock); err != nil {
			logger.Error("ListStockDrift: scan failed", err)
			return nil, err
		}
		drifts = append(drifts, d)
	}
	return drifts, rows.Err()
}
