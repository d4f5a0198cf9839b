package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

var _ repository.ValuationRepository = (*ValuationRepo)(nil)

// ValuationRepo implementación de ValuationRepository sobre PostgreSQL (usable con pool o tx).
type ValuationRepo struct {
	q Querier
}

// NewValuationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewValuationRepository(q Querier) *ValuationRepo {
	return &ValuationRepo{q: q}
}

// Create persiste una valoración (siempre una fila nueva: historial append-only).
func (r *ValuationRepo) Create(v *entity.BrokerValuation) error {
	query := `
		INSERT INTO broker_valuations (valuation_id, lot_number, broker_id, valuation_price, valuation_date, is_confirmed, confirmed_by, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		v.ValuationID, v.LotNumber, v.BrokerID, v.ValuationPrice, v.ValuationDate,
		v.IsConfirmed, v.ConfirmedBy, v.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("create valuation: %w", err)
	}
	return nil
}

// GetByID obtiene una valoración por ID.
func (r *ValuationRepo) GetByID(valuationID string) (*entity.BrokerValuation, error) {
	query := `
		SELECT valuation_id, lot_number, broker_id, valuation_price, valuation_date, is_confirmed, confirmed_by, confirmed_at
		FROM broker_valuations WHERE valuation_id = $1`
	var v entity.BrokerValuation
	err := r.q.QueryRow(context.Background(), query, valuationID).Scan(
		&v.ValuationID, &v.LotNumber, &v.BrokerID, &v.ValuationPrice, &v.ValuationDate,
		&v.IsConfirmed, &v.ConfirmedBy, &v.ConfirmedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get valuation: %w", err)
	}
	return &v, nil
}

const valuationJoinColumns = `
	v.valuation_id, v.lot_number, v.broker_id, v.valuation_price, v.valuation_date,
	v.is_confirmed, v.confirmed_by, v.confirmed_at, b.name, COALESCE(b.company_name, '')`

func (r *ValuationRepo) queryJoined(query string, args ...any) ([]*entity.ValuationWithBroker, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list valuations: %w", err)
	}
	defer rows.Close()
	var list []*entity.ValuationWithBroker
	for rows.Next() {
		var v entity.ValuationWithBroker
		if err := rows.Scan(
			&v.ValuationID, &v.LotNumber, &v.BrokerID, &v.ValuationPrice, &v.ValuationDate,
			&v.IsConfirmed, &v.ConfirmedBy, &v.ConfirmedAt, &v.BrokerName, &v.BrokerCompany,
		); err != nil {
			return nil, fmt.Errorf("scan valuation: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// ListByLot lista las valoraciones de un lote con identidad del corredor,
// la más reciente primero.
func (r *ValuationRepo) ListByLot(lotNumber int64) ([]*entity.ValuationWithBroker, error) {
	query := `
		SELECT ` + valuationJoinColumns + `
		FROM broker_valuations v
		JOIN brokers b ON b.id = v.broker_id
		WHERE v.lot_number = $1
		ORDER BY v.valuation_date DESC`
	return r.queryJoined(query, lotNumber)
}

// Confirm marca la valoración como confirmada y estampa quién y cuándo.
func (r *ValuationRepo) Confirm(valuationID, employeeID string, at time.Time) (bool, error) {
	query := `
		UPDATE broker_valuations
		SET is_confirmed = true, confirmed_by = $2, confirmed_at = $3
		WHERE valuation_id = $1`
	tag, err := r.q.Exec(context.Background(), query, valuationID, employeeID, at)
	if err != nil {
		return false, fmt.Errorf("confirm valuation: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DemoteSiblings desconfirma incondicionalmente toda otra valoración del
// mismo lote. Junto con Confirm en una transacción garantiza a-lo-sumo-una
// confirmada por construcción.
func (r *ValuationRepo) DemoteSiblings(lotNumber int64, keepValuationID string) error {
	query := `
		UPDATE broker_valuations
		SET is_confirmed = false, confirmed_by = NULL, confirmed_at = NULL
		WHERE lot_number = $1 AND valuation_id <> $2`
	_, err := r.q.Exec(context.Background(), query, lotNumber, keepValuationID)
	if err != nil {
		return fmt.Errorf("demote sibling valuations: %w", err)
	}
	return nil
}

// UpdatePrice modifica el precio solo mientras la valoración no esté
// confirmada; la condición va en el WHERE para que sea atómica.
func (r *ValuationRepo) UpdatePrice(valuationID string, price decimal.Decimal) (bool, error) {
	query := `
		UPDATE broker_valuations
		SET valuation_price = $2, valuation_date = now()
		WHERE valuation_id = $1 AND is_confirmed = false`
	tag, err := r.q.Exec(context.Background(), query, valuationID, price)
	if err != nil {
		return false, fmt.Errorf("update valuation price: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete elimina solo mientras la valoración no esté confirmada.
func (r *ValuationRepo) Delete(valuationID string) (bool, error) {
	query := `DELETE FROM broker_valuations WHERE valuation_id = $1 AND is_confirmed = false`
	tag, err := r.q.Exec(context.Background(), query, valuationID)
	if err != nil {
		return false, fmt.Errorf("delete valuation: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListConfirmed lista todas las valoraciones confirmadas.
func (r *ValuationRepo) ListConfirmed() ([]*entity.ValuationWithBroker, error) {
	query := `
		SELECT ` + valuationJoinColumns + `
		FROM broker_valuations v
		JOIN brokers b ON b.id = v.broker_id
		WHERE v.is_confirmed = true
		ORDER BY v.confirmed_at DESC`
	return r.queryJoined(query)
}

// ListConfirmedByBroker lista las valoraciones confirmadas de un corredor.
func (r *ValuationRepo) ListConfirmedByBroker(brokerID string) ([]*entity.ValuationWithBroker, error) {
	query := `
		SELECT ` + valuationJoinColumns + `
		FROM broker_valuations v
		JOIN brokers b ON b.id = v.broker_id
		WHERE v.is_confirmed = true AND v.broker_id = $1
		ORDER BY v.confirmed_at DESC`
	return r.queryJoined(query, brokerID)
}
