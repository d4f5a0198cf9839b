package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
)

// StockEntryRepository define el puerto de persistencia para el libro de stock.
// SumWeightByTeaType es la mitad "producido" del saldo disponible; se recalcula
// en cada llamada (sin contador materializado).
type StockEntryRepository interface {
	Create(entry *entity.StockEntry) error
	GetByID(id string) (*entity.StockEntry, error)
	ListByTeaType(teaTypeID string) ([]*entity.StockEntry, error)
	// Adjust aplica un delta con signo al peso de un registro. Devuelve false
	// si el registro no existe.
	Adjust(id string, deltaKg decimal.Decimal) (bool, error)
	Delete(id string) (bool, error)
	SumWeightByTeaType(teaTypeID string) (decimal.Decimal, error)
	// LockTeaType serializa a los escritores concurrentes de un tipo de té
	// dentro de la transacción actual (pg_advisory_xact_lock).
	LockTeaType(teaTypeID string) error
}
