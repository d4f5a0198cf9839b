package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/application/lot"
)

// LotHandler maneja las peticiones HTTP para el registro de lotes (protegido).
type LotHandler struct {
	uc *lot.RegistryUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(uc *lot.RegistryUseCase) *LotHandler {
	return &LotHandler{uc: uc}
}

// parseLotNumber lee el parámetro de ruta :lotNumber.
func parseLotNumber(c *fiber.Ctx) (int64, bool) {
	n, err := strconv.ParseInt(c.Params("lotNumber"), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Create godoc
// @Summary      Crear lote contra el stock disponible
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "Datos del lote"
// @Success      201   {object}  dto.CreateLotResponse
// @Failure      400   {object}  dto.StockShortageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/lots [post]
func (h *LotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar lotes
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LotResponse
// @Router       /api/lots [get]
func (h *LotHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAvailable godoc
// @Summary      Listar lotes disponibles (sin valoraciones aún)
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LotResponse
// @Router       /api/lots/available [get]
func (h *LotHandler) ListAvailable(c *fiber.Ctx) error {
	out, err := h.uc.ListAvailable()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByNumber godoc
// @Summary      Obtener lote por número
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        lotNumber  path  int  true  "Número de lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{lotNumber} [get]
func (h *LotHandler) GetByNumber(c *fiber.Ctx) error {
	n, ok := parseLotNumber(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_LOT_NUMBER", Message: "número de lote inválido"})
	}
	out, err := h.uc.GetByNumber(n)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar lote (reemplazo completo de campos editables)
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        lotNumber  path  int  true  "Número de lote"
// @Param        body  body  dto.UpdateLotRequest  true  "Datos del lote"
// @Success      200  {object}  dto.ErrorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{lotNumber} [put]
func (h *LotHandler) Update(c *fiber.Ctx) error {
	n, ok := parseLotNumber(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_LOT_NUMBER", Message: "número de lote inválido"})
	}
	var in dto.UpdateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Update(n, in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "lote actualizado"})
}

// Delete godoc
// @Summary      Eliminar lote (rechazado si tiene valoraciones o ventas)
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        lotNumber  path  int  true  "Número de lote"
// @Success      200  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/lots/{lotNumber} [delete]
func (h *LotHandler) Delete(c *fiber.Ctx) error {
	n, ok := parseLotNumber(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_LOT_NUMBER", Message: "número de lote inválido"})
	}
	if err := h.uc.Delete(c.UserContext(), n); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "lote eliminado"})
}
