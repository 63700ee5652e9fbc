package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/retail-suite/internal/application/dto"
	"github.com/jhoicas/retail-suite/internal/domain"
	"github.com/jhoicas/retail-suite/internal/domain/entity"
	"github.com/jhoicas/retail-suite/internal/domain/repository"
	"github.com/jhoicas/retail-suite/pkg/logger"
)

// CreateSaleUseCase registra ventas y, si se solicita, descuenta el stock vía
// el gateway de inventario en modo best-effort: la venta se persiste PRIMERO y
// nunca se rechaza ni revierte porque la llamada remota falle (el fallo queda
// como advertencia y pasa al reconciliador).
type CreateSaleUseCase struct {
	saleRepo repository.SaleRepository
	gateway  InventoryGateway
	log      *logger.Logger
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(saleRepo repository.SaleRepository, gateway InventoryGateway, log *logger.Logger) *CreateSaleUseCase {
	return &CreateSaleUseCase{saleRepo: saleRepo, gateway: gateway, log: log}
}

// CreateSale valida, sanitiza los numéricos (no numérico/ausente → 0, nunca se
// persiste un no-número), computa total = price*quantity - discount + tax,
// genera el sale_number único y persiste. Con integración solicitada y
// product_id presente, intenta el descuento remoto después de persistir.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.ProductName == "" {
		return nil, domain.ErrInvalidInput
	}
	price := in.Price.Decimal
	quantity := int(in.Quantity)
	if !price.GreaterThan(decimal.Zero) || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	discount := in.Discount.Decimal
	tax := in.TaxAmount.Decimal

	saleDate := time.Now()
	if in.Date != "" {
		if parsed, err := parseSaleDate(in.Date); err == nil {
			saleDate = parsed
		} else {
			return nil, domain.ErrInvalidInput
		}
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	total := price.Mul(decimal.NewFromInt(int64(quantity))).Sub(discount).Add(tax)

	now := time.Now()
	sale := &entity.Sale{
		ID:                uuid.New().String(),
		SaleNumber:        NewSaleNumber(now),
		ProductName:       in.ProductName,
		Category:          in.Category,
		Price:             price,
		Quantity:          quantity,
		Discount:          discount,
		TaxAmount:         tax,
		TotalPrice:        total,
		PaymentMethod:     paymentMethod,
		Notes:             in.Notes,
		SaleDate:          saleDate,
		IntegrationStatus: entity.IntegrationNone,
		CreatedAt:         now,
	}
	if in.ProductID != "" {
		sale.ProductID = &in.ProductID
	}
	if in.CustomerID != "" {
		sale.CustomerID = &in.CustomerID
	}

	// La venta se persiste antes de tocar inventario: durabilidad primero.
	if err := uc.saleRepo.Create(sale); err != nil {
		return nil, err
	}

	response := saleToResponse(sale)

	if in.UseInventoryIntegration && sale.ProductID != nil {
		uc.applyIntegration(ctx, sale, response)
	}
	return response, nil
}

// applyIntegration intenta el descuento remoto y registra el resultado en la
// venta. Cualquier fallo (conexión, 4xx, 5xx, timeout) se degrada a advertencia.
func (uc *CreateSaleUseCase) applyIntegration(ctx context.Context, sale *entity.Sale, response *dto.SaleResponse) {
	result, err := uc.gateway.SubtractStock(ctx, *sale.ProductID, sale.Quantity)
	if err != nil {
		uc.log.Warn().
			Err(err).
			Str("sale_id", sale.ID).
			Str("product_id", *sale.ProductID).
			Msg("venta registrada pero el descuento de inventario falló")
		warning := fmt.Sprintf("la venta fue registrada pero el inventario no se pudo actualizar: %s", err.Error())
		if uerr := uc.saleRepo.UpdateIntegration(sale.ID, entity.IntegrationFailed, err.Error()); uerr != nil {
			uc.log.Error().Err(uerr).Str("sale_id", sale.ID).Msg("no se pudo marcar la integración fallida")
		}
		response.IntegrationStatus = entity.IntegrationFailed
		response.IntegrationWarning = warning
		return
	}

	if uerr := uc.saleRepo.UpdateIntegration(sale.ID, entity.IntegrationSucceeded, ""); uerr != nil {
		uc.log.Error().Err(uerr).Str("sale_id", sale.ID).Msg("no se pudo marcar la integración exitosa")
	}
	response.IntegrationStatus = entity.IntegrationSucceeded
	response.InventoryIntegration = &dto.InventoryIntegrationInfo{
		PreviousStock: result.PreviousStock,
		NewStock:      result.NewStock,
	}
}

// NewSaleNumber genera un consecutivo único legible: VTA-<unix>-<sufijo uuid>.
func NewSaleNumber(now time.Time) string {
	return fmt.Sprintf("VTA-%d-%s", now.Unix(), uuid.New().String()[:8])
}

func parseSaleDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func saleToResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:                s.ID,
		SaleNumber:        s.SaleNumber,
		ProductID:         s.ProductID,
		ProductName:       s.ProductName,
		Category:          s.Category,
		Price:             s.Price,
		Quantity:          s.Quantity,
		Discount:          s.Discount,
		TaxAmount:         s.TaxAmount,
		TotalPrice:        s.TotalPrice,
		PaymentMethod:     s.PaymentMethod,
		CustomerID:        s.CustomerID,
		Notes:             s.Notes,
		SaleDate:          s.SaleDate.Format("2006-01-02"),
		IntegrationStatus: s.IntegrationStatus,
	}
}
