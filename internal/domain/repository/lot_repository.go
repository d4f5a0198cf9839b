package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para lotes.
type LotRepository interface {
	// NextNumber obtiene el siguiente número de lote de la secuencia
	// (monotónico, nunca se reutiliza).
	NextNumber() (int64, error)
	Create(lot *entity.Lot) error
	GetByNumber(lotNumber int64) (*entity.Lot, error)
	// Update reemplaza el conjunto completo de campos editables. Devuelve
	// false si el lote no existe.
	Update(lot *entity.Lot) (bool, error)
	UpdateStatus(lotNumber int64, status string) error
	Delete(lotNumber int64) (bool, error)
	List() ([]*entity.Lot, error)
	ListByStatus(status string) ([]*entity.Lot, error)
	// SumAllocatedByTeaType es la mitad "asignado" del saldo disponible.
	SumAllocatedByTeaType(teaTypeID string) (decimal.Decimal, error)
	// HasDependents indica si existen valoraciones o ventas que referencian el
	// lote (política RESTRICT en la eliminación).
	HasDependents(lotNumber int64) (bool, error)
}
