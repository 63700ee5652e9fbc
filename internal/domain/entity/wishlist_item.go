package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un ítem de wishlist. Máquina de estados:
// pending → confirmed → converted (terminal)
// pending|confirmed → cancelled (terminal)
const (
	WishlistStatusPending   = "pending"
	WishlistStatusConfirmed = "confirmed"
	WishlistStatusConverted = "converted"
	WishlistStatusCancelled = "cancelled"
)

// WishlistItem representa un deseo de compra futura de un cliente,
// convertible en bloque a registros de venta.
type WishlistItem struct {
	ID          string
	CustomerID  string
	ProductID   *string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal // derivado = Quantity * UnitPrice
	Status      string
	Priority    int
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EligibleForConversion indica si el ítem puede convertirse en venta
// (solo pending o confirmed; cancelled y converted quedan excluidos).
func (w *WishlistItem) EligibleForConversion() bool {
	return w.Status == WishlistStatusPending || w.Status == WishlistStatusConfirmed
}

// CanTransitionTo valida una transición de estado solicitada por el cliente.
func (w *WishlistItem) CanTransitionTo(status string) bool {
	switch w.Status {
	case WishlistStatusPending:
		return status == WishlistStatusConfirmed || status == WishlistStatusCancelled
	case WishlistStatusConfirmed:
		return status == WishlistStatusCancelled
	}
	// converted y cancelled son terminales
	return false
}
