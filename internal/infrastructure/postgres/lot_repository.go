package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// NextNumber obtiene el siguiente número de lote de la secuencia. La secuencia
// nunca retrocede, así que los números no se reutilizan ni tras eliminaciones.
func (r *LotRepo) NextNumber() (int64, error) {
	var n int64
	if err := r.q.QueryRow(context.Background(), `SELECT nextval('lot_number_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next lot number: %w", err)
	}
	return n, nil
}

// Create persiste un lote.
func (r *LotRepo) Create(l *entity.Lot) error {
	query := `
		INSERT INTO lots (lot_number, manufacturing_date, no_of_bags, net_weight, total_net_weight, tea_type_id, valuation_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		l.LotNumber, l.ManufacturingDate, l.NoOfBags, l.NetWeight, l.TotalNetWeight,
		l.TeaTypeID, l.ValuationPrice, l.Status, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

const lotColumns = `lot_number, manufacturing_date, no_of_bags, net_weight, total_net_weight, tea_type_id, valuation_price, status, created_at, updated_at`

func scanLot(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(
		&l.LotNumber, &l.ManufacturingDate, &l.NoOfBags, &l.NetWeight, &l.TotalNetWeight,
		&l.TeaTypeID, &l.ValuationPrice, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByNumber obtiene un lote por su número.
func (r *LotRepo) GetByNumber(lotNumber int64) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE lot_number = $1`
	l, err := scanLot(r.q.QueryRow(context.Background(), query, lotNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return l, nil
}

// Update reemplaza los campos editables de un lote.
func (r *LotRepo) Update(l *entity.Lot) (bool, error) {
	query := `
		UPDATE lots
		SET manufacturing_date = $2, no_of_bags = $3, net_weight = $4, total_net_weight = $5,
		    tea_type_id = $6, valuation_price = $7, updated_at = $8
		WHERE lot_number = $1`
	tag, err := r.q.Exec(context.Background(), query,
		l.LotNumber, l.ManufacturingDate, l.NoOfBags, l.NetWeight, l.TotalNetWeight,
		l.TeaTypeID, l.ValuationPrice, l.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("update lot: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateStatus transiciona el estado del ciclo de vida de un lote.
func (r *LotRepo) UpdateStatus(lotNumber int64, status string) error {
	query := `UPDATE lots SET status = $2, updated_at = now() WHERE lot_number = $1`
	_, err := r.q.Exec(context.Background(), query, lotNumber, status)
	if err != nil {
		return fmt.Errorf("update lot status: %w", err)
	}
	return nil
}

// Delete elimina un lote por su número.
func (r *LotRepo) Delete(lotNumber int64) (bool, error) {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM lots WHERE lot_number = $1`, lotNumber)
	if err != nil {
		return false, fmt.Errorf("delete lot: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List devuelve todos los lotes, el más reciente primero.
func (r *LotRepo) List() ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots ORDER BY lot_number DESC`
	return r.queryLots(query)
}

// ListByStatus filtra lotes por estado.
func (r *LotRepo) ListByStatus(status string) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE status = $1 ORDER BY lot_number DESC`
	return r.queryLots(query, status)
}

func (r *LotRepo) queryLots(query string, args ...any) ([]*entity.Lot, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// SumAllocatedByTeaType suma el peso neto total asignado a lotes de un tipo
// de té. COALESCE: sin filas, lo asignado es cero.
func (r *LotRepo) SumAllocatedByTeaType(teaTypeID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_net_weight), 0)
		FROM lots WHERE tea_type_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, teaTypeID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum allocated weight: %w", err)
	}
	return sum, nil
}

// HasDependents indica si el lote tiene valoraciones o ventas asociadas.
func (r *LotRepo) HasDependents(lotNumber int64) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM broker_valuations WHERE lot_number = $1)
		    OR EXISTS (SELECT 1 FROM sold_lots WHERE lot_number = $1)`
	var has bool
	if err := r.q.QueryRow(context.Background(), query, lotNumber).Scan(&has); err != nil {
		return false, fmt.Errorf("check lot dependents: %w", err)
	}
	return has, nil
}
