package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tea-coop-api/internal/domain"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

var _ repository.SoldLotRepository = (*SoldLotRepo)(nil)

// SoldLotRepo implementación de SoldLotRepository sobre PostgreSQL (usable con pool o tx).
type SoldLotRepo struct {
	q Querier
}

// NewSoldLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSoldLotRepository(q Querier) *SoldLotRepo {
	return &SoldLotRepo{q: q}
}

const soldLotColumns = `sale_id, lot_number, broker_id, sold_price, total_sold_price, sold_date, payment_status`

func scanSoldLot(row pgx.Row) (*entity.SoldLot, error) {
	var s entity.SoldLot
	err := row.Scan(
		&s.SaleID, &s.LotNumber, &s.BrokerID, &s.SoldPrice, &s.TotalSoldPrice,
		&s.SoldDate, &s.PaymentStatus,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByLotAndBrokerForUpdate busca la venta por su llave natural y bloquea la
// fila para el upsert transaccional.
func (r *SoldLotRepo) GetByLotAndBrokerForUpdate(lotNumber int64, brokerID string) (*entity.SoldLot, error) {
	query := `
		SELECT ` + soldLotColumns + `
		FROM sold_lots WHERE lot_number = $1 AND broker_id = $2
		FOR UPDATE`
	s, err := scanSoldLot(r.q.QueryRow(context.Background(), query, lotNumber, brokerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sold lot for update: %w", err)
	}
	return s, nil
}

// Create persiste una venta. (lot_number, broker_id) tiene constraint único.
func (r *SoldLotRepo) Create(s *entity.SoldLot) error {
	query := `
		INSERT INTO sold_lots (sale_id, lot_number, broker_id, sold_price, total_sold_price, sold_date, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		s.SaleID, s.LotNumber, s.BrokerID, s.SoldPrice, s.TotalSoldPrice, s.SoldDate, s.PaymentStatus,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sold lot: %w", err)
	}
	return nil
}

// Update refresca precio, total y fecha de venta de una fila existente.
func (r *SoldLotRepo) Update(s *entity.SoldLot) error {
	query := `
		UPDATE sold_lots
		SET sold_price = $2, total_sold_price = $3, sold_date = $4
		WHERE sale_id = $1`
	_, err := r.q.Exec(context.Background(), query, s.SaleID, s.SoldPrice, s.TotalSoldPrice, s.SoldDate)
	if err != nil {
		return fmt.Errorf("update sold lot: %w", err)
	}
	return nil
}

// GetBySaleID obtiene una venta por su llave sustituta.
func (r *SoldLotRepo) GetBySaleID(saleID string) (*entity.SoldLot, error) {
	query := `SELECT ` + soldLotColumns + ` FROM sold_lots WHERE sale_id = $1`
	s, err := scanSoldLot(r.q.QueryRow(context.Background(), query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sold lot: %w", err)
	}
	return s, nil
}

// Delete elimina una venta por sale_id.
func (r *SoldLotRepo) Delete(saleID string) (bool, error) {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM sold_lots WHERE sale_id = $1`, saleID)
	if err != nil {
		return false, fmt.Errorf("delete sold lot: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdatePaymentStatus cambia el estado de pago.
func (r *SoldLotRepo) UpdatePaymentStatus(saleID, status string) (bool, error) {
	query := `UPDATE sold_lots SET payment_status = $2 WHERE sale_id = $1`
	tag, err := r.q.Exec(context.Background(), query, saleID, status)
	if err != nil {
		return false, fmt.Errorf("update payment status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// soldLotDetailQuery une venta, lote, tipo de té, corredor y la valoración
// confirmada. LEFT JOIN sobre la confirmada: una venta puede existir y
// mostrarse sin confirmación presente.
const soldLotDetailQuery = `
	SELECT s.sale_id, s.lot_number, s.broker_id, s.sold_price, s.total_sold_price,
	       s.sold_date, s.payment_status,
	       t.name, l.no_of_bags, l.total_net_weight,
	       b.name, COALESCE(b.company_name, ''),
	       cv.valuation_price
	FROM sold_lots s
	JOIN lots l       ON l.lot_number = s.lot_number
	JOIN tea_types t  ON t.id = l.tea_type_id
	JOIN brokers b    ON b.id = s.broker_id
	LEFT JOIN broker_valuations cv
	       ON cv.lot_number = s.lot_number AND cv.is_confirmed = true`

func (r *SoldLotRepo) queryDetails(query string, args ...any) ([]*entity.SoldLotDetail, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sold lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.SoldLotDetail
	for rows.Next() {
		var d entity.SoldLotDetail
		if err := rows.Scan(
			&d.SaleID, &d.LotNumber, &d.BrokerID, &d.SoldPrice, &d.TotalSoldPrice,
			&d.SoldDate, &d.PaymentStatus,
			&d.TeaTypeName, &d.NoOfBags, &d.TotalNetWeight,
			&d.BrokerName, &d.BrokerCompany,
			&d.ConfirmedPrice,
		); err != nil {
			return nil, fmt.Errorf("scan sold lot detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListByBroker lista las ventas de un corredor con sus joins.
func (r *SoldLotRepo) ListByBroker(brokerID string) ([]*entity.SoldLotDetail, error) {
	query := soldLotDetailQuery + `
	WHERE s.broker_id = $1
	ORDER BY s.sold_date DESC`
	return r.queryDetails(query, brokerID)
}

// ListAll lista todas las ventas con sus joins (revisión del empleado).
func (r *SoldLotRepo) ListAll() ([]*entity.SoldLotDetail, error) {
	query := soldLotDetailQuery + `
	ORDER BY s.sold_date DESC`
	return r.queryDetails(query)
}

// GetDetailBySaleID obtiene una venta con sus joins (comprobante PDF).
func (r *SoldLotRepo) GetDetailBySaleID(saleID string) (*entity.SoldLotDetail, error) {
	query := soldLotDetailQuery + `
	WHERE s.sale_id = $1`
	list, err := r.queryDetails(query, saleID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
