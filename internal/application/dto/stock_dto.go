package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockEntryRequest entrada para acreditar producción al pool de stock
// de un tipo de té. El empleado que registra sale del token, no del cuerpo.
type CreateStockEntryRequest struct {
	TeaTypeID      string          `json:"tea_type_id" validate:"required"`
	WeightKg       decimal.Decimal `json:"weight_kg" validate:"required"`
	ProductionDate time.Time       `json:"production_date" validate:"required"`
}

// AdjustStockEntryRequest delta con signo sobre un registro de stock.
type AdjustStockEntryRequest struct {
	DeltaKg decimal.Decimal `json:"delta_kg" validate:"required"`
}

// StockEntryResponse salida de un registro de stock.
type StockEntryResponse struct {
	ID             string          `json:"id"`
	TeaTypeID      string          `json:"tea_type_id"`
	WeightKg       decimal.Decimal `json:"weight_kg"`
	ProductionDate time.Time       `json:"production_date"`
	RecordedBy     string          `json:"recorded_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// StockSummaryResponse saldo derivado de un tipo de té: producido, asignado a
// lotes y disponible (nunca almacenado, siempre recalculado).
type StockSummaryResponse struct {
	TeaTypeID string          `json:"tea_type_id"`
	Produced  decimal.Decimal `json:"produced_kg"`
	Allocated decimal.Decimal `json:"allocated_kg"`
	Available decimal.Decimal `json:"available_kg"`
}

// StockListResponse registros de un tipo de té más su resumen.
type StockListResponse struct {
	Entries []StockEntryResponse `json:"entries"`
	Summary StockSummaryResponse `json:"summary"`
}
