package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/application/usecase"
)

// BrokerHandler maneja las peticiones HTTP de identidad de corredores (protegido).
type BrokerHandler struct {
	uc *usecase.BrokerUseCase
}

// NewBrokerHandler construye el handler.
func NewBrokerHandler(uc *usecase.BrokerUseCase) *BrokerHandler {
	return &BrokerHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar corredor
// @Tags         brokers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBrokerRequest  true  "Datos del corredor"
// @Success      201   {object}  dto.BrokerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/brokers [post]
func (h *BrokerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBrokerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar corredores
// @Tags         brokers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BrokerResponse
// @Router       /api/brokers [get]
func (h *BrokerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener corredor por ID
// @Tags         brokers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del corredor"
// @Success      200  {object}  dto.BrokerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brokers/{id} [get]
func (h *BrokerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
