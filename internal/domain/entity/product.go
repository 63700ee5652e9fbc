package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock autoritativo.
// StockQuantity solo se muta a través del Stock Ledger (movimientos);
// nunca por asignación directa desde entrada del cliente.
type Product struct {
	ID            string
	SKU           string // código único
	Barcode       string
	Name          string
	Description   string
	Category      string
	Price         decimal.Decimal
	StockQuantity int // invariante: >= 0 siempre
	MinStockLevel int
	MaxStockLevel int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el stock está en o por debajo del nivel mínimo (límite inclusivo).
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}

// IsAvailable indica si hay unidades disponibles para venta.
func (p *Product) IsAvailable() bool {
	return p.StockQuantity > 0
}
