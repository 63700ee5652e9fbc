package repository

import "github.com/jhoicas/retail-suite/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
// Las mutaciones de stock (AddStock/SubtractStock/SetStock) son la ÚNICA vía
// de escritura de products.stock_quantity; ningún otro componente la escribe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Search(query string, limit int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)

	// AddStock suma quantity (delta > 0). Devuelve stock anterior y nuevo.
	AddStock(id string, quantity int) (previous, updated int, err error)
	// SubtractStock resta quantity con un UPDATE condicional atómico
	// (falla con ErrInsufficientStock si el resultado quedaría negativo;
	// nunca lee-y-escribe en dos sentencias).
	SubtractStock(id string, quantity int) (previous, updated int, err error)
	// SetStock fija el stock a un valor absoluto (semántica de adjustment).
	SetStock(id string, quantity int) (previous, updated int, err error)
}
