package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una venta.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// SoldLot representa el precio final transado de un lote vendido a un corredor.
// Único por (LotNumber, BrokerID): un segundo registro para el mismo par
// actualiza en lugar de duplicar. TotalSoldPrice = SoldPrice * Lot.TotalNetWeight.
type SoldLot struct {
	SaleID         string
	LotNumber      int64
	BrokerID       string
	SoldPrice      decimal.Decimal
	TotalSoldPrice decimal.Decimal
	SoldDate       time.Time
	PaymentStatus  string
}

// SoldLotDetail es una venta unida con lote, tipo de té, corredor y la
// valoración confirmada (LEFT JOIN: puede no existir confirmación).
type SoldLotDetail struct {
	SoldLot
	TeaTypeName    string
	NoOfBags       int
	TotalNetWeight decimal.Decimal
	BrokerName     string
	BrokerCompany  string
	ConfirmedPrice *decimal.Decimal // nil si el lote no tiene valoración confirmada
}
