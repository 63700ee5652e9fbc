package repository

import "github.com/jhoicas/retail-suite/internal/domain/entity"

// StockMovementRepository puerto de persistencia para el historial de stock.
// La tabla es append-only: no existen operaciones de update ni delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
}
