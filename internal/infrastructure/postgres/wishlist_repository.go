package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retail-suite/internal/domain"
	"github.com/jhoicas/retail-suite/internal/domain/entity"
	"github.com/jhoicas/retail-suite/internal/domain/repository"
)

var _ repository.WishlistRepository = (*WishlistRepo)(nil)

const wishlistColumns = `id, customer_id, product_id, product_name, quantity, unit_price,
		total_price, status, priority, notes, created_at, updated_at`

// WishlistRepo implementación de WishlistRepository sobre PostgreSQL (usable con pool o tx).
type WishlistRepo struct {
	q Querier
}

// NewWishlistRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWishlistRepository(q Querier) *WishlistRepo {
	return &WishlistRepo{q: q}
}

// Create persiste un ítem de wishlist.
func (r *WishlistRepo) Create(item *entity.WishlistItem) error {
	query := `
		INSERT INTO customer_wishlist (id, customer_id, product_id, product_name, quantity,
			unit_price, total_price, status, priority, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CustomerID, item.ProductID, item.ProductName, item.Quantity,
		item.UnitPrice, item.TotalPrice, item.Status, item.Priority, item.Notes,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wishlist item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID. Devuelve nil sin error si no existe.
func (r *WishlistRepo) GetByID(id string) (*entity.WishlistItem, error) {
	query := `SELECT ` + wishlistColumns + ` FROM customer_wishlist WHERE id = $1`
	item, err := scanWishlistItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wishlist item: %w", err)
	}
	return item, nil
}

// ListByCustomer lista la wishlist de un cliente (prioridad, luego más recientes).
func (r *WishlistRepo) ListByCustomer(customerID string) ([]*entity.WishlistItem, error) {
	query := `
		SELECT ` + wishlistColumns + `
		FROM customer_wishlist
		WHERE customer_id = $1
		ORDER BY priority DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	var list []*entity.WishlistItem
	for rows.Next() {
		item, err := scanWishlistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Update actualiza un ítem (cantidad, prioridad, estado, notas, total derivado).
func (r *WishlistRepo) Update(item *entity.WishlistItem) error {
	query := `
		UPDATE customer_wishlist
		SET quantity = $2, unit_price = $3, total_price = $4, status = $5,
			priority = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		item.ID, item.Quantity, item.UnitPrice, item.TotalPrice, item.Status,
		item.Priority, item.Notes, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update wishlist item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado de un ítem.
func (r *WishlistRepo) UpdateStatus(id, status string) error {
	query := `UPDATE customer_wishlist SET status = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update wishlist status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LockForConversion carga y bloquea (FOR UPDATE) los ítems elegibles del cliente:
// solo pending/confirmed; cancelled y converted quedan fuera. Usar dentro de tx.
func (r *WishlistRepo) LockForConversion(customerID string, ids []string) ([]*entity.WishlistItem, error) {
	query := `
		SELECT ` + wishlistColumns + `
		FROM customer_wishlist
		WHERE customer_id = $1 AND id = ANY($2) AND status = ANY($3)
		ORDER BY created_at ASC
		FOR UPDATE`
	eligible := []string{entity.WishlistStatusPending, entity.WishlistStatusConfirmed}
	rows, err := r.q.Query(context.Background(), query, customerID, ids, eligible)
	if err != nil {
		return nil, fmt.Errorf("lock wishlist items: %w", err)
	}
	defer rows.Close()

	var list []*entity.WishlistItem
	for rows.Next() {
		item, err := scanWishlistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func scanWishlistItem(row pgx.Row) (*entity.WishlistItem, error) {
	var item entity.WishlistItem
	err := row.Scan(
		&item.ID, &item.CustomerID, &item.ProductID, &item.ProductName, &item.Quantity,
		&item.UnitPrice, &item.TotalPrice, &item.Status, &item.Priority, &item.Notes,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
