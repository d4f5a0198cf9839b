package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/domain"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/domain/ledger"
	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

// LedgerUseCase lleva el libro de stock por tipo de té: producción acreditada
// (stock_entries) contra peso asignado a lotes (lots). El disponible se deriva
// en cada consulta; no hay contador materializado que mantener en sincronía.
type LedgerUseCase struct {
	stockRepo   repository.StockEntryRepository
	lotRepo     repository.LotRepository
	teaTypeRepo repository.TeaTypeRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	stockRepo repository.StockEntryRepository,
	lotRepo repository.LotRepository,
	teaTypeRepo repository.TeaTypeRepository,
) *LedgerUseCase {
	return &LedgerUseCase{stockRepo: stockRepo, lotRepo: lotRepo, teaTypeRepo: teaTypeRepo}
}

// RecordEntry acredita producción clasificada al pool de stock de un tipo de té.
func (uc *LedgerUseCase) RecordEntry(recordedBy string, in dto.CreateStockEntryRequest) (*dto.StockEntryResponse, error) {
	if in.TeaTypeID == "" || in.ProductionDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !in.WeightKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	teaType, err := uc.teaTypeRepo.GetByID(in.TeaTypeID)
	if err != nil {
		return nil, err
	}
	if teaType == nil {
		return nil, domain.ErrNotFound
	}
	entry := &entity.StockEntry{
		ID:             uuid.New().String(),
		TeaTypeID:      in.TeaTypeID,
		WeightKg:       in.WeightKg,
		ProductionDate: in.ProductionDate,
		RecordedBy:     recordedBy,
		CreatedAt:      time.Now(),
	}
	if err := uc.stockRepo.Create(entry); err != nil {
		return nil, err
	}
	return toStockEntryResponse(entry), nil
}

// Available devuelve el saldo disponible de un tipo de té, recalculado desde
// las dos tablas fuente. Un tipo de té desconocido devuelve 0.
func (uc *LedgerUseCase) Available(teaTypeID string) (decimal.Decimal, error) {
	produced, err := uc.stockRepo.SumWeightByTeaType(teaTypeID)
	if err != nil {
		return decimal.Zero, err
	}
	allocated, err := uc.lotRepo.SumAllocatedByTeaType(teaTypeID)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.AvailableStock(produced, allocated), nil
}

// Summary devuelve producido, asignado y disponible de un tipo de té.
func (uc *LedgerUseCase) Summary(teaTypeID string) (*dto.StockSummaryResponse, error) {
	produced, err := uc.stockRepo.SumWeightByTeaType(teaTypeID)
	if err != nil {
		return nil, err
	}
	allocated, err := uc.lotRepo.SumAllocatedByTeaType(teaTypeID)
	if err != nil {
		return nil, err
	}
	return &dto.StockSummaryResponse{
		TeaTypeID: teaTypeID,
		Produced:  produced,
		Allocated: allocated,
		Available: ledger.AvailableStock(produced, allocated),
	}, nil
}

// ListByTeaType devuelve los registros de stock de un tipo de té con su resumen.
func (uc *LedgerUseCase) ListByTeaType(teaTypeID string) (*dto.StockListResponse, error) {
	entries, err := uc.stockRepo.ListByTeaType(teaTypeID)
	if err != nil {
		return nil, err
	}
	summary, err := uc.Summary(teaTypeID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, *toStockEntryResponse(e))
	}
	return &dto.StockListResponse{Entries: items, Summary: *summary}, nil
}

// Adjust aplica un delta con signo a un registro de stock (corrección explícita).
func (uc *LedgerUseCase) Adjust(entryID string, deltaKg decimal.Decimal) error {
	if deltaKg.IsZero() {
		return domain.ErrInvalidInput
	}
	ok, err := uc.stockRepo.Adjust(entryID, deltaKg)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteEntry elimina un registro de stock.
func (uc *LedgerUseCase) DeleteEntry(entryID string) error {
	ok, err := uc.stockRepo.Delete(entryID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Snapshot devuelve el resumen de todos los tipos de té (usado por el job
// programado y el tablero del empleado).
func (uc *LedgerUseCase) Snapshot() ([]dto.StockSummaryResponse, error) {
	teaTypes, err := uc.teaTypeRepo.List()
	if err != nil {
		return nil, err
	}
	result := make([]dto.StockSummaryResponse, 0, len(teaTypes))
	for _, t := range teaTypes {
		s, err := uc.Summary(t.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, nil
}

func toStockEntryResponse(e *entity.StockEntry) *dto.StockEntryResponse {
	return &dto.StockEntryResponse{
		ID:             e.ID,
		TeaTypeID:      e.TeaTypeID,
		WeightKg:       e.WeightKg,
		ProductionDate: e.ProductionDate,
		RecordedBy:     e.RecordedBy,
		CreatedAt:      e.CreatedAt,
	}
}
