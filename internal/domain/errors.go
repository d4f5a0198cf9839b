package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrConfirmedValuationImmutable: una valoración confirmada no se puede
	// modificar ni eliminar. Distinto de ErrNotFound; el handler debe
	// diferenciarlos (400 vs 404).
	ErrConfirmedValuationImmutable = errors.New("no se puede modificar una valoración confirmada")

	// ErrLotHasDependents: el lote tiene valoraciones o ventas asociadas y no
	// puede eliminarse (política RESTRICT).
	ErrLotHasDependents = errors.New("el lote tiene valoraciones o ventas asociadas")
)

// InsufficientStockError lleva las cifras de la verificación de capacidad para
// que el caller pueda responder con available/requested.
type InsufficientStockError struct {
	TeaTypeID string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el tipo de té %s: disponible %s kg, solicitado %s kg",
		e.TeaTypeID, e.Available.String(), e.Requested.String())
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
