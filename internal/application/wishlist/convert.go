package wishlist

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/retail-suite/internal/application/dto"
	"github.com/jhoicas/retail-suite/internal/application/sales"
	"github.com/jhoicas/retail-suite/internal/application/stock"
	"github.com/jhoicas/retail-suite/internal/domain"
	"github.com/jhoicas/retail-suite/internal/domain/entity"
	"github.com/jhoicas/retail-suite/internal/domain/repository"
	"github.com/jhoicas/retail-suite/pkg/logger"
)

// ConvertUseCase convierte en bloque ítems de wishlist a registros de venta.
// Todo el lote corre en una transacción: o se crean N ventas y se marcan N
// ítems como converted, o no pasa nada (la conversión parcial está prohibida).
//
// adjustStock es configurable (WISHLIST_ADJUST_STOCK): si está activo, cada
// ítem con product_id también descuenta stock vía el ledger en la misma tx;
// apagado por defecto (el inventario pudo reservarse antes).
type ConvertUseCase struct {
	txRunner    TxRunner
	ledger      *stock.LedgerUseCase
	adjustStock bool
	log         *logger.Logger
}

// NewConvertUseCase construye el coordinador de conversión.
func NewConvertUseCase(txRunner TxRunner, ledger *stock.LedgerUseCase, adjustStock bool, log *logger.Logger) *ConvertUseCase {
	return &ConvertUseCase{txRunner: txRunner, ledger: ledger, adjustStock: adjustStock, log: log}
}

// Convert ejecuta la conversión atómica. Solo los ítems del cliente con estado
// pending o confirmed son elegibles; si ninguno califica falla con
// ErrNoEligibleItems y no hay efecto alguno.
func (uc *ConvertUseCase) Convert(ctx context.Context, customerID string, wishlistIDs []string) (*dto.ConvertWishlistResponse, error) {
	if customerID == "" || len(wishlistIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var result dto.ConvertWishlistResponse
	err := uc.txRunner.Run(ctx, func(
		wishlistRepo repository.WishlistRepository,
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		items, err := wishlistRepo.LockForConversion(customerID, wishlistIDs)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrNoEligibleItems
		}

		now := time.Now()
		for _, item := range items {
			sale := saleFromWishlistItem(item, now)
			if uc.adjustStock && item.ProductID != nil {
				if _, err := uc.ledger.AdjustInTx(productRepo, movementRepo, stock.AdjustInput{
					ProductID:     *item.ProductID,
					Quantity:      item.Quantity,
					Type:          entity.MovementTypeOut,
					ReferenceType: entity.ReferenceWishlistConversion,
					ReferenceID:   item.ID,
				}, now); err != nil {
					// stock insuficiente en un ítem aborta el lote completo
					return err
				}
				sale.IntegrationStatus = entity.IntegrationSucceeded
			}
			if err := saleRepo.Create(sale); err != nil {
				return err
			}
			if err := wishlistRepo.UpdateStatus(item.ID, entity.WishlistStatusConverted); err != nil {
				return err
			}
			result.SaleIDs = append(result.SaleIDs, sale.ID)
		}
		result.ConvertedItems = len(items)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("customer_id", customerID).
		Int("converted", result.ConvertedItems).
		Bool("stock_adjusted", uc.adjustStock).
		Msg("wishlist convertida a ventas")
	return &result, nil
}

func saleFromWishlistItem(item *entity.WishlistItem, now time.Time) *entity.Sale {
	customerID := item.CustomerID
	return &entity.Sale{
		ID:                uuid.New().String(),
		SaleNumber:        sales.NewSaleNumber(now),
		ProductID:         item.ProductID,
		ProductName:       item.ProductName,
		Category:          entity.CategoryWishlistConversion,
		Price:             item.UnitPrice,
		Quantity:          item.Quantity,
		Discount:          decimal.Zero,
		TaxAmount:         decimal.Zero,
		TotalPrice:        item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		PaymentMethod:     "wishlist",
		CustomerID:        &customerID,
		SaleDate:          now,
		IntegrationStatus: entity.IntegrationNone,
		CreatedAt:         now,
	}
}
