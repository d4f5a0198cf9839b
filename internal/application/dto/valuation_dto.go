package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitValuationRequest entrada de una valoración de corredor para un lote.
type SubmitValuationRequest struct {
	BrokerID       string          `json:"broker_id" validate:"required"`
	ValuationPrice decimal.Decimal `json:"valuation_price" validate:"required"`
}

// ConfirmValuationRequest entrada para confirmar una valoración (acción de empleado).
type ConfirmValuationRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
}

// UpdateValuationRequest corrección de precio de una valoración no confirmada.
type UpdateValuationRequest struct {
	ValuationPrice decimal.Decimal `json:"valuation_price" validate:"required"`
}

// ValuationResponse salida de una valoración con la identidad del corredor.
type ValuationResponse struct {
	ValuationID    string          `json:"valuation_id"`
	LotNumber      int64           `json:"lot_number"`
	BrokerID       string          `json:"broker_id"`
	BrokerName     string          `json:"broker_name,omitempty"`
	BrokerCompany  string          `json:"broker_company,omitempty"`
	ValuationPrice decimal.Decimal `json:"valuation_price"`
	ValuationDate  time.Time       `json:"valuation_date"`
	IsConfirmed    bool            `json:"is_confirmed"`
	ConfirmedBy    *string         `json:"confirmed_by,omitempty"`
	ConfirmedAt    *time.Time      `json:"confirmed_at,omitempty"`
}
