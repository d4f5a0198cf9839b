package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/application/usecase"
)

// TeaTypeHandler maneja las peticiones HTTP del catálogo de tipos de té (protegido).
type TeaTypeHandler struct {
	uc *usecase.TeaTypeUseCase
}

// NewTeaTypeHandler construye el handler.
func NewTeaTypeHandler(uc *usecase.TeaTypeUseCase) *TeaTypeHandler {
	return &TeaTypeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tipo de té
// @Tags         tea-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTeaTypeRequest  true  "Datos del tipo de té"
// @Success      201   {object}  dto.TeaTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tea-types [post]
func (h *TeaTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTeaTypeRequest
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
// @Summary      Listar tipos de té
// @Tags         tea-types
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TeaTypeResponse
// @Router       /api/tea-types [get]
func (h *TeaTypeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener tipo de té por ID
// @Tags         tea-types
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tipo de té"
// @Success      200  {object}  dto.TeaTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tea-types/{id} [get]
func (h *TeaTypeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tipo de té
// @Tags         tea-types
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tipo de té"
// @Success      200  {object}  dto.ErrorResponse
// @Router       /api/tea-types/{id} [delete]
func (h *TeaTypeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "tipo de té eliminado"})
}
