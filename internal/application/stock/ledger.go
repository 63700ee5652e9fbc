package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-suite/internal/application/dto"
	"github.com/jhoicas/retail-suite/internal/domain"
	"github.com/jhoicas/retail-suite/internal/domain/entity"
	"github.com/jhoicas/retail-suite/internal/domain/repository"
)

// LedgerUseCase es el dueño exclusivo de products.stock_quantity y de su
// historial append-only en stock_movements. Toda mutación de stock pasa por aquí.
type LedgerUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewLedgerUseCase construye el caso de uso. productRepo/movementRepo van
// atados al pool (solo lecturas); las escrituras corren dentro del TxRunner.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// AdjustInput entrada para un ajuste de stock.
// Para in/out, Quantity es un delta (> 0). Para adjustment, Quantity se
// interpreta como el NUEVO VALOR ABSOLUTO del stock — no un delta; la
// distinción se preserva tal cual en la API.
type AdjustInput struct {
	ProductID     string
	Quantity      int
	Type          string
	ReferenceType string
	ReferenceID   string
}

// AdjustResult stock antes y después del ajuste.
type AdjustResult struct {
	PreviousQuantity int
	NewQuantity      int
}

// Adjust aplica un movimiento de stock de forma atómica: actualiza
// products.stock_quantity y agrega la fila en stock_movements como una sola
// unidad (tx); si cualquiera de los dos pasos falla se revierte todo.
// Para out, la resta es un UPDATE condicional evaluado atómicamente contra la
// fila: de dos decrementos concurrentes que no caben, exactamente uno falla
// con ErrInsufficientStock.
func (uc *LedgerUseCase) Adjust(ctx context.Context, input AdjustInput) (*AdjustResult, error) {
	if err := validateAdjust(input); err != nil {
		return nil, err
	}
	var result *AdjustResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		r, err := uc.AdjustInTx(productRepo, movementRepo, input, time.Now())
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AdjustInTx aplica el ajuste usando repos ya atados a una transacción abierta.
// Lo usan Adjust y la conversión de wishlist (que descuenta stock en su propia tx).
func (uc *LedgerUseCase) AdjustInTx(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	input AdjustInput,
	now time.Time,
) (*AdjustResult, error) {
	if err := validateAdjust(input); err != nil {
		return nil, err
	}

	var previous, updated int
	var err error
	switch input.Type {
	case entity.MovementTypeIn:
		previous, updated, err = productRepo.AddStock(input.ProductID, input.Quantity)
	case entity.MovementTypeOut:
		previous, updated, err = productRepo.SubtractStock(input.ProductID, input.Quantity)
	case entity.MovementTypeAdjustment:
		previous, updated, err = productRepo.SetStock(input.ProductID, input.Quantity)
	}
	if err != nil {
		return nil, err
	}

	referenceType := input.ReferenceType
	if referenceType == "" {
		referenceType = entity.ReferenceManual
	}
	movement := &entity.StockMovement{
		ID:               uuid.New().String(),
		ProductID:        input.ProductID,
		Type:             input.Type,
		Quantity:         input.Quantity,
		PreviousQuantity: previous,
		NewQuantity:      updated,
		ReferenceType:    referenceType,
		ReferenceID:      input.ReferenceID,
		CreatedAt:        now,
	}
	if err := movementRepo.Create(movement); err != nil {
		return nil, err
	}
	return &AdjustResult{PreviousQuantity: previous, NewQuantity: updated}, nil
}

func validateAdjust(input AdjustInput) error {
	if input.ProductID == "" || !entity.ValidMovementType(input.Type) {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut:
		if input.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		// valor absoluto final: 0 es válido, negativo no
		if input.Quantity < 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// GetAvailability lectura pura de disponibilidad: refleja el último ajuste
// confirmado (sin caché). Límite de stock bajo inclusivo (stock == mínimo cuenta).
func (uc *LedgerUseCase) GetAvailability(productID string) (*dto.AvailabilityResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.AvailabilityResponse{
		ProductID:    product.ID,
		CurrentStock: product.StockQuantity,
		IsAvailable:  product.IsAvailable(),
		IsLowStock:   product.IsLowStock(),
	}, nil
}

// ListMovements historial de movimientos de un producto (auditoría, solo lectura).
func (uc *LedgerUseCase) ListMovements(productID string, page dto.PageRequest) ([]dto.StockMovementDTO, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	movements, err := uc.movementRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementDTO{
			ID:               m.ID,
			ProductID:        m.ProductID,
			Type:             m.Type,
			Quantity:         m.Quantity,
			PreviousQuantity: m.PreviousQuantity,
			NewQuantity:      m.NewQuantity,
			ReferenceType:    m.ReferenceType,
			ReferenceID:      m.ReferenceID,
			CreatedAt:        m.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// ListLowStock productos con stock en o por debajo del nivel mínimo (inclusivo).
func (uc *LedgerUseCase) ListLowStock() ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductToResponse(p))
	}
	return out, nil
}

// ProductToResponse mapea la entidad al snapshot canónico del contrato HTTP.
func ProductToResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Barcode:       p.Barcode,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		MaxStockLevel: p.MaxStockLevel,
		IsActive:      p.IsActive,
	}
}
