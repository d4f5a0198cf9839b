package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BrokerValuation representa el precio por kg propuesto por un corredor para un
// lote. Varias valoraciones pueden coexistir por lote (historial append-only);
// a lo sumo una puede estar confirmada a la vez.
type BrokerValuation struct {
	ValuationID    string
	LotNumber      int64
	BrokerID       string
	ValuationPrice decimal.Decimal
	ValuationDate  time.Time
	IsConfirmed    bool
	ConfirmedBy    *string
	ConfirmedAt    *time.Time
}

// ValuationWithBroker es una valoración unida con la identidad del corredor
// (para los listados por lote y los reportes de confirmadas).
type ValuationWithBroker struct {
	BrokerValuation
	BrokerName    string
	BrokerCompany string
}
