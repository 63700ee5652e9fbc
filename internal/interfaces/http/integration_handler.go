package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-suite/internal/application/dto"
	"github.com/jhoicas/retail-suite/internal/application/stock"
	"github.com/jhoicas/retail-suite/internal/domain"
	"github.com/jhoicas/retail-suite/internal/domain/entity"
)

// IntegrationHandler implementa el lado servidor del contrato entre servicios:
// el servicio de ventas pide descuentos de stock y consulta disponibilidad por aquí.
type IntegrationHandler struct {
	ledger *stock.LedgerUseCase
}

// NewIntegrationHandler construye el handler.
func NewIntegrationHandler(ledger *stock.LedgerUseCase) *IntegrationHandler {
	return &IntegrationHandler{ledger: ledger}
}

// UpdateStock godoc
// @Summary      Contrato entre servicios: ajustar stock
// @Description  operation subtract descuenta (rechaza si quedaría negativo),
//
//	add repone. Respuesta con forma fija {success, new_stock} | {success:false, error}.
//
// @Tags         integration
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.UpdateStockRequest  true  "quantity, operation"
// @Success      200   {object}  dto.UpdateStockResponse
// @Failure      400   {object}  dto.UpdateStockResponse
// @Failure      404   {object}  dto.UpdateStockResponse
// @Router       /api/products/{id}/update-stock [post]
func (h *IntegrationHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.UpdateStockResponse{Success: false, Error: "cuerpo inválido"})
	}

	var movementType string
	switch in.Operation {
	case "subtract":
		movementType = entity.MovementTypeOut
	case "add":
		movementType = entity.MovementTypeIn
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.UpdateStockResponse{Success: false, Error: "operation debe ser subtract o add"})
	}

	result, err := h.ledger.Adjust(c.Context(), stock.AdjustInput{
		ProductID:     c.Params("id"),
		Quantity:      in.Quantity,
		Type:          movementType,
		ReferenceType: entity.ReferenceSale,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusBadRequest).JSON(dto.UpdateStockResponse{Success: false, Error: "Insufficient stock"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.UpdateStockResponse{Success: false, Error: "producto no encontrado"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.UpdateStockResponse{Success: false, Error: "datos inválidos"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.UpdateStockResponse{Success: false, Error: err.Error()})
		}
	}
	return c.JSON(dto.UpdateStockResponse{
		Success:       true,
		PreviousStock: result.PreviousQuantity,
		NewStock:      result.NewQuantity,
	})
}

// LowStock godoc
// @Summary      Productos en o bajo su nivel mínimo de stock
// @Description  Límite inclusivo: stock_quantity == min_stock_level cuenta como bajo.
// @Tags         integration
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/integration/low-stock [get]
func (h *IntegrationHandler) LowStock(c *fiber.Ctx) error {
	products, err := h.ledger.ListLowStock()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(products), "products": products})
}
