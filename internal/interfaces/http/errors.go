package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/domain"
)

// respondError traduce errores de dominio a respuestas HTTP. Centralizado para
// que todos los handlers usen los mismos códigos y el mismo cuerpo de error.
//
// Casos que importan distinguir:
//   - stock insuficiente: 400 con las cifras available/requested en el cuerpo
//   - valoración confirmada inmutable: 400, nunca 404 (la fila existe)
//   - lote con dependientes: 409 (política RESTRICT)
func respondError(c *fiber.Ctx, err error) error {
	var shortage *domain.InsufficientStockError
	if errors.As(err, &shortage) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.StockShortageResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   shortage.Error(),
			Available: shortage.Available,
			Requested: shortage.Requested,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrConfirmedValuationImmutable):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONFIRMED_IMMUTABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrLotHasDependents):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOT_HAS_DEPENDENTS", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
