package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operaciones del upsert de venta.
const (
	SaleOperationCreated = "created"
	SaleOperationUpdated = "updated"
)

// SoldPriceRequest entrada del upsert de precio vendido por (lote, corredor).
type SoldPriceRequest struct {
	LotNumber int64           `json:"lot_number" validate:"required"`
	BrokerID  string          `json:"broker_id" validate:"required"`
	SoldPrice decimal.Decimal `json:"sold_price" validate:"required"`
}

// SoldPriceResponse resultado del upsert: qué operación aplicó y el total
// calculado contra el peso neto del lote.
type SoldPriceResponse struct {
	Operation      string          `json:"operation"` // created | updated
	SaleID         string          `json:"sale_id"`
	TotalSoldPrice decimal.Decimal `json:"total_sold_price"`
}

// UpdatePaymentStatusRequest cambio de estado de pago de una venta.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending paid"`
}

// SoldLotResponse venta unida con lote, tipo de té, corredor y la valoración
// confirmada si existe (LEFT JOIN).
type SoldLotResponse struct {
	SaleID         string           `json:"sale_id"`
	LotNumber      int64            `json:"lot_number"`
	TeaTypeName    string           `json:"tea_type_name"`
	NoOfBags       int              `json:"no_of_bags"`
	TotalNetWeight decimal.Decimal  `json:"total_net_weight"`
	BrokerID       string           `json:"broker_id"`
	BrokerName     string           `json:"broker_name"`
	BrokerCompany  string           `json:"broker_company,omitempty"`
	SoldPrice      decimal.Decimal  `json:"sold_price"`
	TotalSoldPrice decimal.Decimal  `json:"total_sold_price"`
	SoldDate       time.Time        `json:"sold_date"`
	PaymentStatus  string           `json:"payment_status"`
	ConfirmedPrice *decimal.Decimal `json:"confirmed_price,omitempty"`
}
