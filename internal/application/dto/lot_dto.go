package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLotRequest entrada para crear un lote. Todos los campos son
// obligatorios; los numéricos deben ser números válidos (el parser JSON
// rechaza el resto).
type CreateLotRequest struct {
	ManufacturingDate time.Time       `json:"manufacturing_date" validate:"required"`
	NoOfBags          int             `json:"no_of_bags" validate:"required,min=1"`
	NetWeight         decimal.Decimal `json:"net_weight" validate:"required"`
	TotalNetWeight    decimal.Decimal `json:"total_net_weight" validate:"required"`
	ValuationPrice    decimal.Decimal `json:"valuation_price" validate:"required"`
	TeaTypeID         string          `json:"tea_type_id" validate:"required"`
}

// UpdateLotRequest reemplazo completo de campos (mismo conjunto que la creación).
type UpdateLotRequest = CreateLotRequest

// CreateLotResponse número de lote asignado por la secuencia.
type CreateLotResponse struct {
	LotNumber int64 `json:"lot_number"`
}

// LotResponse salida de un lote.
type LotResponse struct {
	LotNumber         int64           `json:"lot_number"`
	ManufacturingDate time.Time       `json:"manufacturing_date"`
	NoOfBags          int             `json:"no_of_bags"`
	NetWeight         decimal.Decimal `json:"net_weight"`
	TotalNetWeight    decimal.Decimal `json:"total_net_weight"`
	TeaTypeID         string          `json:"tea_type_id"`
	ValuationPrice    decimal.Decimal `json:"valuation_price"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
