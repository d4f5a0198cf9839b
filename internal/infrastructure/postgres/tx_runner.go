package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tea-coop-api/internal/application/lot"
	"github.com/jhoicas/tea-coop-api/internal/application/sale"
	"github.com/jhoicas/tea-coop-api/internal/application/valuation"
	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

// TxRunner satisface los puertos de transacción de cada subsistema.
var _ lot.TxRunner = (*TxRunner)(nil)
var _ valuation.TxRunner = (*TxRunner)(nil)
var _ sale.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con repos de stock y lotes (creación/eliminación
// de lotes: verificación de capacidad + insert como unidad atómica).
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockEntryRepository,
	lotRepo repository.LotRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockEntryRepository(tx), NewLotRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunValuation inicia una transacción con repos de valoraciones y lotes
// (confirmar objetivo + degradar hermanas + transición de estado del lote).
func (r *TxRunner) RunValuation(ctx context.Context, fn func(
	valRepo repository.ValuationRepository,
	lotRepo repository.LotRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewValuationRepository(tx), NewLotRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale inicia una transacción con repos de ventas y lotes (upsert por
// llave natural con bloqueo de fila).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SoldLotRepository,
	lotRepo repository.LotRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSoldLotRepository(tx), NewLotRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
