package wishlist

import (
	"context"

	"github.com/jhoicas/retail-suite/internal/domain/repository"
)

// TxRunner ejecuta la conversión dentro de una sola transacción de BD con
// semántica todo-o-nada: un fallo en cualquier inserción de venta, cambio de
// estado o ajuste de stock revierte el lote completo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		wishlistRepo repository.WishlistRepository,
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
