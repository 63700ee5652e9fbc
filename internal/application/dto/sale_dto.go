package dto

import "github.com/shopspring/decimal"

// CreateSaleRequest body para POST /api/sales.
// price, quantity, discount y tax_amount son tolerantes: cualquier valor
// no numérico se trata como 0 antes de la aritmética de totales.
type CreateSaleRequest struct {
	Date                    string      `json:"date"`
	ProductName             string      `json:"productName"`
	Price                   FlexDecimal `json:"price"`
	Quantity                FlexInt     `json:"quantity"`
	Category                string      `json:"category"`
	ProductID               string      `json:"product_id,omitempty"`
	Discount                FlexDecimal `json:"discount,omitempty"`
	TaxAmount               FlexDecimal `json:"tax_amount,omitempty"`
	PaymentMethod           string      `json:"payment_method,omitempty"`
	CustomerID              string      `json:"customer_id,omitempty"`
	Notes                   string      `json:"notes,omitempty"`
	UseInventoryIntegration bool        `json:"use_inventory_integration,omitempty"`
}

// InventoryIntegrationInfo snapshot del stock tras un descuento exitoso.
type InventoryIntegrationInfo struct {
	PreviousStock int `json:"previous_stock"`
	NewStock      int `json:"new_stock"`
}

// SaleResponse venta creada. Exactamente uno de inventory_integration o
// integration_warning está presente cuando se solicitó integración: el caller
// siempre sabe si el inventario se ajustó o no.
type SaleResponse struct {
	ID                   string                    `json:"id"`
	SaleNumber           string                    `json:"sale_number"`
	ProductID            *string                   `json:"product_id,omitempty"`
	ProductName          string                    `json:"product_name"`
	Category             string                    `json:"category,omitempty"`
	Price                decimal.Decimal           `json:"price"`
	Quantity             int                       `json:"quantity"`
	Discount             decimal.Decimal           `json:"discount"`
	TaxAmount            decimal.Decimal           `json:"tax_amount"`
	TotalPrice           decimal.Decimal           `json:"total_price"`
	PaymentMethod        string                    `json:"payment_method,omitempty"`
	CustomerID           *string                   `json:"customer_id,omitempty"`
	Notes                string                    `json:"notes,omitempty"`
	SaleDate             string                    `json:"sale_date"`
	IntegrationStatus    string                    `json:"integration_status"`
	InventoryIntegration *InventoryIntegrationInfo `json:"inventory_integration,omitempty"`
	IntegrationWarning   string                    `json:"integration_warning,omitempty"`
}
