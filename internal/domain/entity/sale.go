package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de integración de inventario de una venta.
// La venta nunca se rechaza ni se revierte porque el descuento de stock falle:
// la durabilidad de la venta tiene prioridad sobre la consistencia del stock.
const (
	IntegrationNone      = "none"      // no se solicitó integración
	IntegrationSucceeded = "succeeded" // el descuento de stock se aplicó
	IntegrationFailed    = "failed"    // el descuento falló; la venta queda con advertencia
)

// Sale representa una transacción de venta registrada por el servicio de ventas.
// ProductID y CustomerID son opcionales: una venta puede nombrar un producto
// que no existe en este inventario (ítem de otro catálogo).
type Sale struct {
	ID                string
	SaleNumber        string // único
	ProductID         *string
	ProductName       string
	Category          string
	Price             decimal.Decimal
	Quantity          int
	Discount          decimal.Decimal
	TaxAmount         decimal.Decimal
	TotalPrice        decimal.Decimal // Price*Quantity - Discount + TaxAmount
	PaymentMethod     string
	CustomerID        *string
	Notes             string
	SaleDate          time.Time
	IntegrationStatus string
	IntegrationError  string
	CreatedAt         time.Time
}

// CategoryWishlistConversion marca las ventas generadas por conversión de wishlist.
const CategoryWishlistConversion = "wishlist-conversion"
