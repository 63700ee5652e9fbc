package sales

import "context"

// StockUpdateResult snapshot del stock tras un descuento remoto exitoso.
type StockUpdateResult struct {
	PreviousStock int
	NewStock      int
}

// ProductSnapshot vista canónica de un producto del servicio de inventario.
type ProductSnapshot struct {
	ID            string
	SKU           string
	Name          string
	StockQuantity int
	MinStockLevel int
	IsActive      bool
}

// InventoryGateway puerto hacia el servicio de inventario (contrato HTTP entre
// servicios, sin transacción distribuida). Toda llamada va acotada por timeout;
// un timeout se trata igual que un fallo duro.
type InventoryGateway interface {
	SubtractStock(ctx context.Context, productID string, quantity int) (*StockUpdateResult, error)
	GetProduct(ctx context.Context, productID string) (*ProductSnapshot, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]ProductSnapshot, error)
}

// GatewayErrorKind clasifica los fallos del gateway; el caller los maneja distinto.
type GatewayErrorKind string

const (
	// GatewayUnavailable fallo de conexión o timeout: integración caída,
	// se degrada a modo advertencia.
	GatewayUnavailable GatewayErrorKind = "unavailable"
	// GatewayApplication error 4xx de aplicación (ej. stock insuficiente):
	// se expone la razón específica.
	GatewayApplication GatewayErrorKind = "application"
	// GatewayTransient error 5xx: transitorio, elegible para reconciliación posterior.
	GatewayTransient GatewayErrorKind = "transient"
)

// GatewayError error tipado del gateway de inventario.
type GatewayError struct {
	Kind    GatewayErrorKind
	Message string
}

// Error implementa error.
func (e *GatewayError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Retryable indica si el fallo es elegible para reintento por el reconciliador
// (caída de conexión o 5xx; los errores de aplicación no se reintentan a ciegas).
func (e *GatewayError) Retryable() bool {
	return e.Kind == GatewayUnavailable || e.Kind == GatewayTransient
}
