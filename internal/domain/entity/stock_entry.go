package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry representa producción de té terminado acreditada al pool de stock
// de un tipo de té. Append-only: solo se muta con un ajuste explícito (delta
// con signo) o se elimina.
type StockEntry struct {
	ID             string
	TeaTypeID      string
	WeightKg       decimal.Decimal
	ProductionDate time.Time
	RecordedBy     string
	CreatedAt      time.Time
}
