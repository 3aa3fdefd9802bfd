package domain

import (
	"time"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

// Order is immutable once created; there is no edit or cancel flow.
type Order struct {
	ID             string        `json:"id"`
	ShopID         string        `json:"shop_id"`
	CashierID      string        `json:"cashier_id"`
	CustomerName   string        `json:"customer_name"`
	CustomerMobile string        `json:"customer_mobile"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	Subtotal       float64       `json:"subtotal"`
	Discount       float64       `json:"discount"`
	Tax            float64       `json:"tax"`
	Total          float64       `json:"total"`
	Items          []OrderItem   `json:"items"`
	CreatedAt      time.Time     `json:"created_at"`
}

// OrderItem snapshots the product's name, price, discount and tax at sale
// time, so historic orders stay correct after product edits or deletion.
type OrderItem struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"-"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	CGST        float64 `json:"cgst"`
	SGST        float64 `json:"sgst"`
	Total       float64 `json:"total"`
}

type CreateOrderItemRequest struct {
	ProductID   string  `json:"product_id" binding:"required,uuid"`
	ProductName string  `json:"product_name" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Discount    float64 `json:"discount" binding:"gte=0,lte=100"`
	CGST        float64 `json:"cgst" binding:"gte=0,lte=100"`
	SGST        float64 `json:"sgst" binding:"gte=0,lte=100"`
}

type CreateOrderRequest struct {
	ShopID         string                   `json:"shop_id" binding:"required,uuid"`
	CashierID      string                   `json:"cashier_id" binding:"required,uuid"`
	CustomerName   string                   `json:"customer_name" binding:"required"`
	CustomerMobile string                   `json:"customer_mobile" binding:"required"`
	PaymentMethod  PaymentMethod            `json:"payment_method" binding:"required,oneof=cash card upi"`
	Items          []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ListOrdersFilter narrows the order listing; only ShopID is mandatory.
type ListOrdersFilter struct {
	ShopID        string
	CashierID     string
	PaymentMethod string
	From          *time.Time
	To            *time.Time
}
