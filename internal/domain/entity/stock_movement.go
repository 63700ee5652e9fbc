package entity

import "time"

// Tipos de movimiento de stock.
// Para in/out, Quantity es un delta positivo que se suma o resta.
// Para adjustment, Quantity es el NUEVO VALOR ABSOLUTO del stock, no un delta
// (semántica distinta a in/out, se preserva explícitamente en la API).
const (
	MovementTypeIn         = "in"         // entrada
	MovementTypeOut        = "out"        // salida
	MovementTypeAdjustment = "adjustment" // ajuste absoluto
)

// Tipos de referencia causal de un movimiento.
const (
	ReferenceSale               = "sale"
	ReferencePurchaseOrder      = "purchase-order"
	ReferenceWishlistConversion = "wishlist-conversion"
	ReferenceManual             = "manual"
)

// StockMovement es un registro inmutable del historial de stock (append-only).
// Se crea exactamente uno por mutación del ledger; nunca se actualiza ni borra.
// PreviousQuantity/NewQuantity son el snapshot antes/después de aplicar el movimiento.
type StockMovement struct {
	ID               string
	ProductID        string
	Type             string
	Quantity         int // > 0; delta para in/out, valor absoluto para adjustment
	PreviousQuantity int
	NewQuantity      int
	ReferenceType    string
	ReferenceID      string
	CreatedAt        time.Time
}

// ValidMovementType valida el tipo de movimiento.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}
