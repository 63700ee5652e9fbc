package repository

import "github.com/jhoicas/retail-suite/internal/domain/entity"

// SaleRepository puerto de persistencia para ventas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	// UpdateIntegration actualiza solo el resultado de la integración de inventario.
	UpdateIntegration(id, status, integrationErr string) error
	// ListFailedIntegration devuelve ventas con integración fallida pendientes
	// de reconciliación (las más antiguas primero).
	ListFailedIntegration(limit int) ([]*entity.Sale, error)
}
