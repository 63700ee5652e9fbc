package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-suite/internal/application/dto"
	"github.com/jhoicas/retail-suite/internal/application/sales"
)

// SaleHandler maneja las peticiones HTTP del registro de ventas.
type SaleHandler struct {
	uc      *sales.CreateSaleUseCase
	gateway sales.InventoryGateway
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.CreateSaleUseCase, gateway sales.InventoryGateway) *SaleHandler {
	return &SaleHandler{uc: uc, gateway: gateway}
}

// Create godoc
// @Summary      Registrar una venta
// @Description  Con use_inventory_integration, el descuento remoto se intenta
//
//	DESPUÉS de persistir la venta; si falla, la venta igual responde
//	201 con integration_warning (la venta nunca se pierde por un
//	fallo del inventario).
//
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateSale(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetSale(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListSales(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "sales": out})
}

// SearchProducts godoc
// @Summary      Autocompletar productos para captura de ventas
// @Description  Proxy al buscador del servicio de inventario vía el gateway.
// @Tags         sales
// @Produce      json
// @Param        query  query  string  false  "Texto a buscar"
// @Param        limit  query  int     false  "Máximo de resultados"
// @Success      200  {array}  object
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/sales/product-search [get]
func (h *SaleHandler) SearchProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	if limit <= 0 {
		limit = 10
	}
	products, err := h.gateway.SearchProducts(c.Context(), c.Query("query"), limit)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "INTEGRATION_DOWN", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(products), "products": products})
}
