// Package jobs agrupa las tareas programadas de la cooperativa.
package jobs

import (
	"github.com/robfig/cron/v3"

	"github.com/jhoicas/tea-coop-api/internal/application/stock"
	"github.com/jhoicas/tea-coop-api/pkg/logger"
)

// Scheduler administra las tareas programadas (cron estándar de 5 campos).
type Scheduler struct {
	cron         *cron.Cron
	stockUC      *stock.LedgerUseCase
	snapshotSpec string
	log          *logger.Logger
}

// NewScheduler construye el scheduler con la expresión cron del snapshot de stock.
func NewScheduler(stockUC *stock.LedgerUseCase, snapshotSpec string, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		stockUC:      stockUC,
		snapshotSpec: snapshotSpec,
		log:          log,
	}
}

// Start registra las tareas y arranca el cron.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.snapshotSpec, s.logStockSnapshot); err != nil {
		s.log.Error().Err(err).Str("spec", s.snapshotSpec).Msg("programar snapshot de stock")
		return
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.snapshotSpec).Msg("scheduler iniciado")
}

// Stop detiene el cron (las tareas en curso terminan).
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("scheduler detenido")
}

// logStockSnapshot emite al log el saldo derivado de cada tipo de té. Deja un
// rastro diario auditable de producido/asignado/disponible sin materializar
// ningún contador en la DB.
func (s *Scheduler) logStockSnapshot() {
	summaries, err := s.stockUC.Snapshot()
	if err != nil {
		s.log.Error().Err(err).Msg("snapshot de stock")
		return
	}
	for _, sum := range summaries {
		s.log.Info().
			Str("tea_type_id", sum.TeaTypeID).
			Str("produced_kg", sum.Produced.String()).
			Str("allocated_kg", sum.Allocated.String()).
			Str("available_kg", sum.Available.String()).
			Msg("snapshot de stock")
	}
}
