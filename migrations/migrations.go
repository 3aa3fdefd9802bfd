package migrations

import (
	"database/sql"
)

// AutoMigrate creates the POS tables if they do not exist. Run once at startup;
// production deployments should prefer a dedicated migration tool.
func AutoMigrate(db *sql.DB) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			shop_id UUID NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			discount DOUBLE PRECISION NOT NULL DEFAULT 0,
			cgst DOUBLE PRECISION NOT NULL DEFAULT 0,
			sgst DOUBLE PRECISION NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_shop_id ON products (shop_id)`,

		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			shop_id UUID NOT NULL,
			cashier_id UUID NOT NULL,
			customer_name VARCHAR(255) NOT NULL,
			customer_mobile VARCHAR(20) NOT NULL,
			payment_method VARCHAR(10) NOT NULL CHECK (payment_method IN ('cash', 'card', 'upi')),
			subtotal DOUBLE PRECISION NOT NULL,
			discount DOUBLE PRECISION NOT NULL,
			tax DOUBLE PRECISION NOT NULL,
			total DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_shop_created ON orders (shop_id, created_at DESC)`,

		// product_id carries no foreign key: order items are point-in-time
		// snapshots and must survive product deletion.
		`CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id UUID NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			quantity INT NOT NULL CHECK (quantity > 0),
			price DOUBLE PRECISION NOT NULL,
			discount DOUBLE PRECISION NOT NULL,
			cgst DOUBLE PRECISION NOT NULL,
			sgst DOUBLE PRECISION NOT NULL,
			total DOUBLE PRECISION NOT NULL,
			position INT NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id)`,

		// Append-only: rows are never updated or deleted while the product exists.
		// seq orders entries committed in the same transaction, which share
		// one NOW() timestamp.
		`CREATE TABLE IF NOT EXISTS inventory_logs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			seq BIGSERIAL NOT NULL,
			product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			delta INT NOT NULL CHECK (delta <> 0),
			resulting_stock INT NOT NULL CHECK (resulting_stock >= 0),
			reason VARCHAR(30) NOT NULL,
			user_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_logs_product_created ON inventory_logs (product_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
