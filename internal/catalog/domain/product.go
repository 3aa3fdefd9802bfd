package domain

import (
	"time"
)

type Product struct {
	ID          string    `json:"id"`
	ShopID      string    `json:"shop_id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`    // tax-exclusive unit price
	Discount    float64   `json:"discount"` // percent
	CGST        float64   `json:"cgst"`     // percent
	SGST        float64   `json:"sgst"`     // percent
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	ShopID      string  `json:"shop_id" binding:"required,uuid"`
	ProductName string  `json:"product_name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Discount    float64 `json:"discount" binding:"gte=0,lte=100"`
	CGST        float64 `json:"cgst" binding:"gte=0,lte=100"`
	SGST        float64 `json:"sgst" binding:"gte=0,lte=100"`
	Stock       int     `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest intentionally has no stock field: stock changes must go
// through the inventory ledger so the movement history stays complete.
type UpdateProductRequest struct {
	ProductName string  `json:"product_name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Discount    float64 `json:"discount" binding:"gte=0,lte=100"`
	CGST        float64 `json:"cgst" binding:"gte=0,lte=100"`
	SGST        float64 `json:"sgst" binding:"gte=0,lte=100"`
}
