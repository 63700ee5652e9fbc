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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, barcode, name, description, category, price,
		stock_quantity, min_stock_level, max_stock_level, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. SKU o barcode duplicados → ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, barcode, name, description, category, price,
			stock_quantity, min_stock_level, max_stock_level, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	barcode := (*string)(nil)
	if product.Barcode != "" {
		barcode = &product.Barcode
	}
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, barcode, product.Name, product.Description, product.Category,
		product.Price, product.StockQuantity, product.MinStockLevel, product.MaxStockLevel,
		product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil sin error si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Search busca candidatos por nombre o SKU (ILIKE); los matches de prefijo
// rankean primero. Para autocompletar en captura de ventas.
func (r *ProductRepo) Search(query string, limit int) ([]*entity.Product, error) {
	sql := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active AND (name ILIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%')
		ORDER BY (name ILIKE $1 || '%' OR sku ILIKE $1 || '%') DESC, name ASC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), sql, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListLowStock productos activos con stock_quantity <= min_stock_level (límite inclusivo).
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	sql := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active AND stock_quantity <= min_stock_level
		ORDER BY stock_quantity - min_stock_level ASC, name ASC`
	rows, err := r.q.Query(context.Background(), sql)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// AddStock suma un delta positivo en una sola sentencia y devuelve el antes/después.
func (r *ProductRepo) AddStock(id string, quantity int) (previous, updated int, err error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $2, updated_at = now()
		WHERE id = $1
		RETURNING stock_quantity`
	err = r.q.QueryRow(context.Background(), query, id, quantity).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, domain.ErrNotFound
		}
		return 0, 0, fmt.Errorf("add stock: %w", err)
	}
	return updated - quantity, updated, nil
}

// SubtractStock descuenta con un UPDATE condicional atómico: la condición
// stock_quantity >= $2 se evalúa contra la fila bajo el lock de la propia
// sentencia, nunca como lectura previa separada. De dos decrementos
// concurrentes que no caben, exactamente uno recibe ErrInsufficientStock.
func (r *ProductRepo) SubtractStock(id string, quantity int) (previous, updated int, err error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $2, updated_at = now()
		WHERE id = $1 AND stock_quantity >= $2
		RETURNING stock_quantity`
	err = r.q.QueryRow(context.Background(), query, id, quantity).Scan(&updated)
	if err == nil {
		return updated + quantity, updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if isCheckViolation(err) {
			return 0, 0, domain.ErrInsufficientStock
		}
		return 0, 0, fmt.Errorf("subtract stock: %w", err)
	}
	// Sin fila afectada: distinguir producto inexistente de stock insuficiente
	// (solo para reportar el error; la decisión atómica ya ocurrió arriba).
	var current int
	checkErr := r.q.QueryRow(context.Background(), `SELECT stock_quantity FROM products WHERE id = $1`, id).Scan(&current)
	if checkErr != nil {
		if errors.Is(checkErr, pgx.ErrNoRows) {
			return 0, 0, domain.ErrNotFound
		}
		return 0, 0, fmt.Errorf("subtract stock: %w", checkErr)
	}
	return 0, 0, domain.ErrInsufficientStock
}

// SetStock fija el stock a un valor absoluto (semántica de adjustment, no delta)
// bloqueando la fila para capturar el valor previo en la misma sentencia.
func (r *ProductRepo) SetStock(id string, quantity int) (previous, updated int, err error) {
	query := `
		UPDATE products p
		SET stock_quantity = $2, updated_at = now()
		FROM (SELECT id, stock_quantity FROM products WHERE id = $1 FOR UPDATE) prev
		WHERE p.id = prev.id
		RETURNING prev.stock_quantity, p.stock_quantity`
	err = r.q.QueryRow(context.Background(), query, id, quantity).Scan(&previous, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, domain.ErrNotFound
		}
		return 0, 0, fmt.Errorf("set stock: %w", err)
	}
	return previous, updated, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var barcode *string
	err := row.Scan(
		&p.ID, &p.SKU, &barcode, &p.Name, &p.Description, &p.Category, &p.Price,
		&p.StockQuantity, &p.MinStockLevel, &p.MaxStockLevel, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
