package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/application/sale"
)

// SoldLotHandler maneja las peticiones HTTP de liquidación de ventas (protegido).
type SoldLotHandler struct {
	uc        *sale.SettlementUseCase
	receiptUC *sale.ReceiptUseCase
}

// NewSoldLotHandler construye el handler.
func NewSoldLotHandler(uc *sale.SettlementUseCase, receiptUC *sale.ReceiptUseCase) *SoldLotHandler {
	return &SoldLotHandler{uc: uc, receiptUC: receiptUC}
}

// AddOrUpdate godoc
// @Summary      Registrar o actualizar el precio vendido de un lote a un corredor
// @Tags         sold-lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SoldPriceRequest  true  "Precio vendido"
// @Success      200   {object}  dto.SoldPriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sold-lots [post]
func (h *SoldLotHandler) AddOrUpdate(c *fiber.Ctx) error {
	var in dto.SoldPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddOrUpdateSoldPrice(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Listar todas las ventas (revisión del empleado)
// @Tags         sold-lots
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SoldLotResponse
// @Router       /api/sold-lots [get]
func (h *SoldLotHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByBroker godoc
// @Summary      Listar ventas de un corredor
// @Tags         sold-lots
// @Security     Bearer
// @Produce      json
// @Param        brokerId  path  string  true  "ID del corredor"
// @Success      200  {array}  dto.SoldLotResponse
// @Router       /api/sold-lots/broker/{brokerId} [get]
func (h *SoldLotHandler) ListByBroker(c *fiber.Ctx) error {
	brokerID := c.Params("brokerId")
	out, err := h.uc.ListByBroker(brokerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una venta (corrección)
// @Tags         sold-lots
// @Security     Bearer
// @Produce      json
// @Param        saleId  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sold-lots/{saleId} [delete]
func (h *SoldLotHandler) Delete(c *fiber.Ctx) error {
	saleID := c.Params("saleId")
	if err := h.uc.Delete(saleID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "venta eliminada"})
}

// UpdatePaymentStatus godoc
// @Summary      Cambiar el estado de pago de una venta
// @Tags         sold-lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        saleId  path  string  true  "ID de la venta"
// @Param        body  body  dto.UpdatePaymentStatusRequest  true  "Nuevo estado (pending | paid)"
// @Success      200   {object}  dto.ErrorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sold-lots/{saleId}/payment [patch]
func (h *SoldLotHandler) UpdatePaymentStatus(c *fiber.Ctx) error {
	saleID := c.Params("saleId")
	var in dto.UpdatePaymentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdatePaymentStatus(saleID, in.PaymentStatus); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "estado de pago actualizado"})
}

// Receipt godoc
// @Summary      Comprobante PDF de una venta
// @Tags         sold-lots
// @Security     Bearer
// @Produce      application/pdf
// @Param        saleId  path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sold-lots/{saleId}/receipt [get]
func (h *SoldLotHandler) Receipt(c *fiber.Ctx) error {
	saleID := c.Params("saleId")
	pdfBytes, err := h.receiptUC.Receipt(c.UserContext(), saleID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="venta-%s.pdf"`, saleID))
	return c.Send(pdfBytes)
}
