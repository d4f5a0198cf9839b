package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un lote.
const (
	LotStatusAvailable        = "available"         // creado, sin valoraciones
	LotStatusValuationPending = "valuation_pending" // al menos una valoración de corredor
	LotStatusConfirmed        = "confirmed"         // un empleado confirmó una valoración
	LotStatusSold             = "sold"              // precio de venta registrado
)

// Lot representa un lote de té manufacturado, embolsado y pesado, elegible para
// valoración y venta. LotNumber es generado (secuencia monotónica, nunca se
// reutiliza). TotalNetWeight descuenta del stock disponible del tipo de té al
// momento de la creación.
type Lot struct {
	LotNumber         int64
	ManufacturingDate time.Time
	NoOfBags          int
	NetWeight         decimal.Decimal // peso neto por bolsa (kg)
	TotalNetWeight    decimal.Decimal // peso neto total del lote (kg)
	TeaTypeID         string
	ValuationPrice    decimal.Decimal // precio de referencia fijado por el empleado
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
