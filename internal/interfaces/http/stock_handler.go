package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/application/stock"
)

// StockHandler maneja las peticiones HTTP del libro de stock (protegido).
type StockHandler struct {
	uc *stock.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.LedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// RecordEntry godoc
// @Summary      Acreditar producción clasificada al stock de un tipo de té
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockEntryRequest  true  "Registro de producción"
// @Success      201   {object}  dto.StockEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) RecordEntry(c *fiber.Ctx) error {
	var in dto.CreateStockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordEntry(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Snapshot godoc
// @Summary      Resumen de stock de todos los tipos de té
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockSummaryResponse
// @Router       /api/stock [get]
func (h *StockHandler) Snapshot(c *fiber.Ctx) error {
	out, err := h.uc.Snapshot()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByTeaType godoc
// @Summary      Registros y resumen de stock de un tipo de té
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        teaTypeId  path  string  true  "ID del tipo de té"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stock/{teaTypeId} [get]
func (h *StockHandler) ListByTeaType(c *fiber.Ctx) error {
	out, err := h.uc.ListByTeaType(c.Params("teaTypeId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Disponible de un tipo de té (producido, asignado, disponible)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        teaTypeId  path  string  true  "ID del tipo de té"
// @Success      200  {object}  dto.StockSummaryResponse
// @Router       /api/stock/{teaTypeId}/available [get]
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Params("teaTypeId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajustar un registro de stock con un delta con signo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        entryId  path  string  true  "ID del registro"
// @Param        body  body  dto.AdjustStockEntryRequest  true  "Delta en kg"
// @Success      200   {object}  dto.ErrorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/entries/{entryId} [patch]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Adjust(c.Params("entryId"), in.DeltaKg); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "registro ajustado"})
}

// DeleteEntry godoc
// @Summary      Eliminar un registro de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        entryId  path  string  true  "ID del registro"
// @Success      200  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/entries/{entryId} [delete]
func (h *StockHandler) DeleteEntry(c *fiber.Ctx) error {
	if err := h.uc.DeleteEntry(c.Params("entryId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "registro eliminado"})
}
