package repository

import "github.com/jhoicas/retail-suite/internal/domain/entity"

// WishlistRepository puerto de persistencia para la wishlist de clientes.
type WishlistRepository interface {
	Create(item *entity.WishlistItem) error
	GetByID(id string) (*entity.WishlistItem, error)
	ListByCustomer(customerID string) ([]*entity.WishlistItem, error)
	Update(item *entity.WishlistItem) error
	UpdateStatus(id, status string) error
	// LockForConversion carga y bloquea (FOR UPDATE) los ítems del cliente
	// elegibles para conversión (status pending o confirmed). Usar dentro de tx.
	LockForConversion(customerID string, ids []string) ([]*entity.WishlistItem, error)
}
