package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/retail-suite/internal/application/dto"
	"github.com/jhoicas/retail-suite/internal/application/stock"
	"github.com/jhoicas/retail-suite/internal/domain"
	"github.com/jhoicas/retail-suite/internal/domain/entity"
	"github.com/jhoicas/retail-suite/internal/domain/repository"
)

// ProductUseCase alta y consulta de productos del catálogo.
// El stock inicial no se asigna directo: se registra como movimiento "in" del
// ledger dentro de la misma transacción del alta.
type ProductUseCase struct {
	txRunner    stock.TxRunner
	productRepo repository.ProductRepository
	ledger      *stock.LedgerUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner stock.TxRunner,
	productRepo repository.ProductRepository,
	ledger *stock.LedgerUseCase,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, productRepo: productRepo, ledger: ledger}
}

// Create persiste un producto nuevo. SKU y barcode duplicados fallan con
// ErrDuplicate (conflicto 409). Stock inicial vía movimiento del ledger.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) || in.InitialStock < 0 || in.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Barcode:       in.Barcode,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Price:         in.Price,
		StockQuantity: 0,
		MinStockLevel: in.MinStockLevel,
		MaxStockLevel: in.MaxStockLevel,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if in.InitialStock > 0 {
			result, err := uc.ledger.AdjustInTx(productRepo, movementRepo, stock.AdjustInput{
				ProductID:     product.ID,
				Quantity:      in.InitialStock,
				Type:          entity.MovementTypeIn,
				ReferenceType: entity.ReferencePurchaseOrder,
			}, now)
			if err != nil {
				return err
			}
			product.StockQuantity = result.NewQuantity
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := stock.ProductToResponse(product)
	return &out, nil
}

// GetByID snapshot canónico de un producto.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := stock.ProductToResponse(product)
	return &out, nil
}

// Search lista candidatos por nombre o SKU para autocompletar en captura de ventas.
func (uc *ProductUseCase) Search(query string, limit int) ([]dto.ProductResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	products, err := uc.productRepo.Search(query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, stock.ProductToResponse(p))
	}
	return out, nil
}
