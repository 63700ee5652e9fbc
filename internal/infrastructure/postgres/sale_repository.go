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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, sale_number, product_id, product_name, category, price, quantity,
		discount, tax_amount, total_price, payment_method, customer_id, notes, sale_date,
		integration_status, integration_error, created_at`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta. sale_number duplicado → ErrDuplicate.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, sale_number, product_id, product_name, category, price, quantity,
			discount, tax_amount, total_price, payment_method, customer_id, notes, sale_date,
			integration_status, integration_error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	integrationErr := (*string)(nil)
	if sale.IntegrationError != "" {
		integrationErr = &sale.IntegrationError
	}
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SaleNumber, sale.ProductID, sale.ProductName, sale.Category,
		sale.Price, sale.Quantity, sale.Discount, sale.TaxAmount, sale.TotalPrice,
		sale.PaymentMethod, sale.CustomerID, sale.Notes, sale.SaleDate,
		sale.IntegrationStatus, integrationErr, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Devuelve nil sin error si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// List lista ventas (más recientes primero).
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// UpdateIntegration actualiza solo el resultado de la integración de inventario;
// el resto de la venta es inmutable tras su creación.
func (r *SaleRepo) UpdateIntegration(id, status, integrationErr string) error {
	query := `UPDATE sales SET integration_status = $2, integration_error = $3 WHERE id = $1`
	var errValue *string
	if integrationErr != "" {
		errValue = &integrationErr
	}
	cmd, err := r.q.Exec(context.Background(), query, id, status, errValue)
	if err != nil {
		return fmt.Errorf("update sale integration: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListFailedIntegration ventas con integración fallida, las más antiguas primero
// (cola de reconciliación).
func (r *SaleRepo) ListFailedIntegration(limit int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE integration_status = $1 AND product_id IS NOT NULL
		ORDER BY created_at ASC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, entity.IntegrationFailed, limit)
	if err != nil {
		return nil, fmt.Errorf("list failed integrations: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var integrationErr *string
	err := row.Scan(
		&s.ID, &s.SaleNumber, &s.ProductID, &s.ProductName, &s.Category,
		&s.Price, &s.Quantity, &s.Discount, &s.TaxAmount, &s.TotalPrice,
		&s.PaymentMethod, &s.CustomerID, &s.Notes, &s.SaleDate,
		&s.IntegrationStatus, &integrationErr, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if integrationErr != nil {
		s.IntegrationError = *integrationErr
	}
	return &s, nil
}

func collectSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
