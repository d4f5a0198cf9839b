package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/application/valuation"
)

// ValuationHandler maneja las peticiones HTTP del libro de valoraciones (protegido).
type ValuationHandler struct {
	uc *valuation.LedgerUseCase
}

// NewValuationHandler construye el handler.
func NewValuationHandler(uc *valuation.LedgerUseCase) *ValuationHandler {
	return &ValuationHandler{uc: uc}
}

// Submit godoc
// @Summary      Registrar valoración de un corredor para un lote
// @Tags         valuations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        lotNumber  path  int  true  "Número de lote"
// @Param        body  body  dto.SubmitValuationRequest  true  "Valoración"
// @Success      200   {object}  dto.ValuationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/lots/{lotNumber}/valuation [post]
func (h *ValuationHandler) Submit(c *fiber.Ctx) error {
	n, ok := parseLotNumber(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_LOT_NUMBER", Message: "número de lote inválido"})
	}
	var in dto.SubmitValuationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Submit(c.UserContext(), n, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByLot godoc
// @Summary      Listar valoraciones de un lote
// @Tags         valuations
// @Security     Bearer
// @Produce      json
// @Param        lotNumber  path  int  true  "Número de lote"
// @Success      200  {array}  dto.ValuationResponse
// @Router       /api/valuations/lot/{lotNumber} [get]
func (h *ValuationHandler) ListByLot(c *fiber.Ctx) error {
	n, ok := parseLotNumber(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_LOT_NUMBER", Message: "número de lote inválido"})
	}
	out, err := h.uc.ListByLot(n)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar una valoración como la autoritativa del lote
// @Tags         valuations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        valuationId  path  string  true  "ID de la valoración"
// @Param        body  body  dto.ConfirmValuationRequest  true  "Empleado que confirma"
// @Success      200   {object}  dto.ValuationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/valuations/{valuationId}/confirm [post]
func (h *ValuationHandler) Confirm(c *fiber.Ctx) error {
	valuationID := c.Params("valuationId")
	var in dto.ConfirmValuationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.EmployeeID == "" {
		in.EmployeeID = GetUserID(c)
	}
	out, err := h.uc.Confirm(c.UserContext(), valuationID, in.EmployeeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdatePrice godoc
// @Summary      Corregir precio de una valoración no confirmada
// @Tags         valuations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        valuationId  path  string  true  "ID de la valoración"
// @Param        body  body  dto.UpdateValuationRequest  true  "Nuevo precio"
// @Success      200   {object}  dto.ErrorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/valuations/{valuationId} [put]
func (h *ValuationHandler) UpdatePrice(c *fiber.Ctx) error {
	valuationID := c.Params("valuationId")
	var in dto.UpdateValuationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdatePrice(valuationID, in.ValuationPrice); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "valoración actualizada"})
}

// Delete godoc
// @Summary      Eliminar una valoración no confirmada
// @Tags         valuations
// @Security     Bearer
// @Produce      json
// @Param        valuationId  path  string  true  "ID de la valoración"
// @Success      200  {object}  dto.ErrorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/valuations/{valuationId} [delete]
func (h *ValuationHandler) Delete(c *fiber.Ctx) error {
	valuationID := c.Params("valuationId")
	if err := h.uc.Delete(valuationID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "valoración eliminada"})
}

// ListConfirmed godoc
// @Summary      Listar todas las valoraciones confirmadas
// @Tags         valuations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ValuationResponse
// @Router       /api/valuations/confirmed [get]
func (h *ValuationHandler) ListConfirmed(c *fiber.Ctx) error {
	out, err := h.uc.ListConfirmed()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListConfirmedByBroker godoc
// @Summary      Listar valoraciones confirmadas de un corredor
// @Tags         valuations
// @Security     Bearer
// @Produce      json
// @Param        brokerId  path  string  true  "ID del corredor"
// @Success      200  {array}  dto.ValuationResponse
// @Router       /api/valuations/confirmed/broker/{brokerId} [get]
func (h *ValuationHandler) ListConfirmedByBroker(c *fiber.Ctx) error {
	brokerID := c.Params("brokerId")
	out, err := h.uc.ListConfirmedByBroker(brokerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
