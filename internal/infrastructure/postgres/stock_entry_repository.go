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

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo implementación del libro de stock sobre PostgreSQL (usable con pool o tx).
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

// Create persiste un registro de producción acreditada.
func (r *StockEntryRepo) Create(e *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (id, tea_type_id, weight_kg, production_date, recorded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.TeaTypeID, e.WeightKg, e.ProductionDate, e.RecordedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock entry: %w", err)
	}
	return nil
}

// GetByID obtiene un registro de stock por ID.
func (r *StockEntryRepo) GetByID(id string) (*entity.StockEntry, error) {
	query := `
		SELECT id, tea_type_id, weight_kg, production_date, recorded_by, created_at
		FROM stock_entries WHERE id = $1`
	var e entity.StockEntry
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.TeaTypeID, &e.WeightKg, &e.ProductionDate, &e.RecordedBy, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock entry: %w", err)
	}
	return &e, nil
}

// ListByTeaType lista los registros de un tipo de té, el más reciente primero.
func (r *StockEntryRepo) ListByTeaType(teaTypeID string) ([]*entity.StockEntry, error) {
	query := `
		SELECT id, tea_type_id, weight_kg, production_date, recorded_by, created_at
		FROM stock_entries WHERE tea_type_id = $1
		ORDER BY production_date DESC`
	rows, err := r.q.Query(context.Background(), query, teaTypeID)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		if err := rows.Scan(&e.ID, &e.TeaTypeID, &e.WeightKg, &e.ProductionDate, &e.RecordedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Adjust aplica un delta con signo al peso de un registro.
func (r *StockEntryRepo) Adjust(id string, deltaKg decimal.Decimal) (bool, error) {
	query := `UPDATE stock_entries SET weight_kg = weight_kg + $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, deltaKg)
	if err != nil {
		return false, fmt.Errorf("adjust stock entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete elimina un registro de stock.
func (r *StockEntryRepo) Delete(id string) (bool, error) {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM stock_entries WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete stock entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SumWeightByTeaType suma la producción acreditada de un tipo de té.
// COALESCE: sin filas, el producido es cero.
func (r *StockEntryRepo) SumWeightByTeaType(teaTypeID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(weight_kg), 0)
		FROM stock_entries WHERE tea_type_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, teaTypeID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum stock weight: %w", err)
	}
	return sum, nil
}

// LockTeaType toma un advisory lock transaccional por tipo de té. Serializa a
// los creadores de lotes concurrentes del mismo tipo; se libera solo en el
// Commit/Rollback de la transacción actual.
func (r *StockEntryRepo) LockTeaType(teaTypeID string) error {
	_, err := r.q.Exec(context.Background(), `SELECT pg_advisory_xact_lock(hashtext($1))`, teaTypeID)
	if err != nil {
		return fmt.Errorf("lock tea type: %w", err)
	}
	return nil
}
