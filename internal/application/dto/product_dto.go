package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
// El stock inicial se registra como movimiento "in" del ledger, no como asignación directa.
type CreateProductRequest struct {
	SKU           string          `json:"sku"`
	Barcode       string          `json:"barcode,omitempty"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Price         decimal.Decimal `json:"price"`
	InitialStock  int             `json:"initial_stock,omitempty"`
	MinStockLevel int             `json:"min_stock_level,omitempty"`
	MaxStockLevel int             `json:"max_stock_level,omitempty"`
}

// ProductResponse snapshot canónico de un producto (usado también por el
// contrato entre servicios GET /api/products/:id).
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Barcode       string          `json:"barcode,omitempty"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	MaxStockLevel int             `json:"max_stock_level"`
	IsActive      bool            `json:"is_active"`
}
