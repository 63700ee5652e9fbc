package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/retail-suite/internal/application/stock"
	"github.com/jhoicas/retail-suite/internal/application/wishlist"
	"github.com/jhoicas/retail-suite/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// El pool se inyecta; el runner se pasa por request, no hay estado global.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de ledger atados a la tx y
// hace Commit o Rollback. Es la unidad atómica del Stock Ledger: actualización
// de stock + inserción del movimiento confirman o revierten juntas.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// WishlistTxRunner adapta el mismo pool al puerto de conversión de wishlist
// (lote todo-o-nada: ventas + cambios de estado + ajustes de stock en una tx).
type WishlistTxRunner struct {
	pool *pgxpool.Pool
}

// NewWishlistTxRunner construye el runner de conversión.
func NewWishlistTxRunner(pool *pgxpool.Pool) *WishlistTxRunner {
	return &WishlistTxRunner{pool: pool}
}

var _ wishlist.TxRunner = (*WishlistTxRunner)(nil)

// Run inicia una transacción con los cuatro repos del lote de conversión.
func (r *WishlistTxRunner) Run(ctx context.Context, fn func(
	wishlistRepo repository.WishlistRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewWishlistRepository(tx),
		NewSaleRepository(tx),
		NewProductRepository(tx),
		NewStockMovementRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
