package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-suite/internal/application/dto"
	"github.com/jhoicas/retail-suite/internal/application/wishlist"
)

// WishlistHandler maneja la wishlist de clientes y su conversión a ventas.
type WishlistHandler struct {
	manage  *wishlist.ManageUseCase
	convert *wishlist.ConvertUseCase
}

// NewWishlistHandler construye el handler.
func NewWishlistHandler(manage *wishlist.ManageUseCase, convert *wishlist.ConvertUseCase) *WishlistHandler {
	return &WishlistHandler{manage: manage, convert: convert}
}

// Add godoc
// @Summary      Agregar ítem a la wishlist de un cliente
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del cliente"
// @Param        body  body  dto.AddWishlistItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.WishlistItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/wishlist [post]
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	var in dto.AddWishlistItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.manage.Add(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar la wishlist de un cliente
// @Tags         wishlist
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {array}  dto.WishlistItemResponse
// @Router       /api/customers/{id}/wishlist [get]
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	out, err := h.manage.ListByCustomer(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// Update godoc
// @Summary      Actualizar un ítem de wishlist
// @Description  Transiciones válidas: pending→confirmed, pending|confirmed→cancelled.
//
//	converted y cancelled son terminales (409 en cualquier otro cambio).
//
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Param        customerId  path  string                         true  "ID del cliente"
// @Param        id          path  string                         true  "ID del ítem"
// @Param        body        body  dto.UpdateWishlistItemRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.WishlistItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{customerId}/wishlist/{id} [put]
func (h *WishlistHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWishlistItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.manage.Update(c.Params("customerId"), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Convert godoc
// @Summary      Convertir ítems de wishlist en ventas (lote atómico)
// @Description  Todo el lote corre en una transacción: o se crean N ventas y se
//
//	marcan N ítems converted, o no pasa nada. Sin ítems elegibles → 404.
//
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del cliente"
// @Param        body  body  dto.ConvertWishlistRequest  true  "IDs de ítems a convertir"
// @Success      200   {object}  dto.ConvertWishlistResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/wishlist/convert [post]
func (h *WishlistHandler) Convert(c *fiber.Ctx) error {
	var in dto.ConvertWishlistRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.convert.Convert(c.Context(), c.Params("id"), in.WishlistIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
