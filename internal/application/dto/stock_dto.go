package dto

// AdjustStockRequest body para PUT /api/products/:id/stock.
// Para type in/out, quantity es un delta positivo; para adjustment,
// quantity es el NUEVO valor absoluto del stock.
type AdjustStockRequest struct {
	Quantity      int    `json:"quantity"`
	MovementType  string `json:"movement_type"`
	ReferenceType string `json:"reference_type,omitempty"`
	ReferenceID   string `json:"reference_id,omitempty"`
}

// AdjustStockResponse resultado de un ajuste de stock.
type AdjustStockResponse struct {
	ProductID        string `json:"product_id"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
}

// UpdateStockRequest body del contrato entre servicios
// POST /api/products/:id/update-stock (consumido por el servicio de ventas).
type UpdateStockRequest struct {
	Quantity  int    `json:"quantity"`
	Operation string `json:"operation"` // "subtract" | "add"
}

// UpdateStockResponse respuesta del contrato entre servicios.
type UpdateStockResponse struct {
	Success       bool   `json:"success"`
	PreviousStock int    `json:"previous_stock,omitempty"`
	NewStock      int    `json:"new_stock,omitempty"`
	Error         string `json:"error,omitempty"`
}

// AvailabilityResponse disponibilidad actual de un producto (lectura comprometida,
// sin caché).
type AvailabilityResponse struct {
	ProductID    string `json:"product_id"`
	CurrentStock int    `json:"current_stock"`
	IsAvailable  bool   `json:"is_available"`
	IsLowStock   bool   `json:"is_low_stock"`
}

// StockMovementDTO un movimiento del historial (solo lectura).
type StockMovementDTO struct {
	ID               string `json:"id"`
	ProductID        string `json:"product_id"`
	Type             string `json:"type"`
	Quantity         int    `json:"quantity"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
	ReferenceType    string `json:"reference_type,omitempty"`
	ReferenceID      string `json:"reference_id,omitempty"`
	CreatedAt        string `json:"created_at"`
}
