package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-suite/internal/application/dto"
	"github.com/jhoicas/retail-suite/internal/application/stock"
	"github.com/jhoicas/retail-suite/internal/domain"
)

// StockHandler maneja las peticiones HTTP del Stock Ledger.
type StockHandler struct {
	ledger *stock.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.LedgerUseCase) *StockHandler {
	return &StockHandler{ledger: ledger}
}

// Adjust godoc
// @Summary      Ajustar stock de un producto
// @Description  in/out aplican un delta positivo; adjustment fija el stock a un
//
//	valor absoluto (no es un delta). La actualización y el movimiento
//	de auditoría se confirman como una sola unidad.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "quantity, movement_type, reference"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [put]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.ledger.Adjust(c.Context(), stock.AdjustInput{
		ProductID:     c.Params("id"),
		Quantity:      in.Quantity,
		Type:          in.MovementType,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			// forma fija del contrato: {"error": "Insufficient stock"}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Insufficient stock"})
		}
		return respondError(c, err)
	}
	return c.JSON(dto.AdjustStockResponse{
		ProductID:        c.Params("id"),
		PreviousQuantity: result.PreviousQuantity,
		NewQuantity:      result.NewQuantity,
	})
}

// GetAvailability godoc
// @Summary      Disponibilidad actual de un producto
// @Description  Lectura comprometida, sin caché: refleja el último ajuste confirmado.
// @Tags         stock
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/availability [get]
func (h *StockHandler) GetAvailability(c *fiber.Ctx) error {
	availability, err := h.ledger.GetAvailability(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(availability)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         stock
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.StockMovementDTO
// @Router       /api/products/{id}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	movements, err := h.ledger.ListMovements(c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movements), "movements": movements})
}
