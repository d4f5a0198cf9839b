package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
)

// ValuationRepository define el puerto de persistencia para valoraciones de
// corredores. Cada Create es una fila independiente (historial append-only);
// la unicidad de la confirmación se garantiza con Confirm + DemoteSiblings en
// una misma transacción.
type ValuationRepository interface {
	Create(valuation *entity.BrokerValuation) error
	GetByID(valuationID string) (*entity.BrokerValuation, error)
	ListByLot(lotNumber int64) ([]*entity.ValuationWithBroker, error)
	// Confirm marca la valoración como confirmada y estampa confirmed_by y
	// confirmed_at. Devuelve false si no existe.
	Confirm(valuationID, employeeID string, at time.Time) (bool, error)
	// DemoteSiblings desconfirma toda otra valoración del mismo lote.
	DemoteSiblings(lotNumber int64, keepValuationID string) error
	// UpdatePrice modifica el precio solo si la valoración sigue sin
	// confirmar. Devuelve false si no cambió ninguna fila.
	UpdatePrice(valuationID string, price decimal.Decimal) (bool, error)
	// Delete elimina solo si la valoración sigue sin confirmar.
	Delete(valuationID string) (bool, error)
	ListConfirmed() ([]*entity.ValuationWithBroker, error)
	ListConfirmedByBroker(brokerID string) ([]*entity.ValuationWithBroker, error)
}
