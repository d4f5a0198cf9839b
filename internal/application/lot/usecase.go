package lot

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/domain"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/domain/ledger"
	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

// RegistryUseCase administra el ciclo de vida de los lotes. La creación es la
// única acción que consume stock: corre en una transacción con un advisory
// lock por tipo de té para que dos creaciones concurrentes no sobregiren el
// disponible contra una lectura obsoleta.
type RegistryUseCase struct {
	txRunner    TxRunner
	lotRepo     repository.LotRepository
	teaTypeRepo repository.TeaTypeRepository
}

// NewRegistryUseCase construye el caso de uso.
func NewRegistryUseCase(
	txRunner TxRunner,
	lotRepo repository.LotRepository,
	teaTypeRepo repository.TeaTypeRepository,
) *RegistryUseCase {
	return &RegistryUseCase{txRunner: txRunner, lotRepo: lotRepo, teaTypeRepo: teaTypeRepo}
}

func validateLotFields(in dto.CreateLotRequest) error {
	if in.TeaTypeID == "" || in.ManufacturingDate.IsZero() {
		return domain.ErrInvalidInput
	}
	if in.NoOfBags <= 0 {
		return domain.ErrInvalidInput
	}
	if !in.NetWeight.GreaterThan(decimal.Zero) || !in.TotalNetWeight.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.ValuationPrice.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create valida los campos, verifica el stock disponible y crea el lote con
// estado available. Verificación e inserción corren en la misma transacción,
// serializadas por tipo de té (LockTeaType), de modo que el disponible que se
// lee es el vigente al momento de insertar.
func (uc *RegistryUseCase) Create(ctx context.Context, in dto.CreateLotRequest) (*dto.CreateLotResponse, error) {
	if err := validateLotFields(in); err != nil {
		return nil, err
	}
	teaType, err := uc.teaTypeRepo.GetByID(in.TeaTypeID)
	if err != nil {
		return nil, err
	}
	if teaType == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var created dto.CreateLotResponse
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockEntryRepository,
		lotRepo repository.LotRepository,
	) error {
		// Serializa a los creadores concurrentes del mismo tipo de té
		if err := stockRepo.LockTeaType(in.TeaTypeID); err != nil {
			return err
		}
		produced, err := stockRepo.SumWeightByTeaType(in.TeaTypeID)
		if err != nil {
			return err
		}
		allocated, err := lotRepo.SumAllocatedByTeaType(in.TeaTypeID)
		if err != nil {
			return err
		}
		available := ledger.AvailableStock(produced, allocated)
		if !ledger.CanCover(available, in.TotalNetWeight) {
			return &domain.InsufficientStockError{
				TeaTypeID: in.TeaTypeID,
				Available: available,
				Requested: in.TotalNetWeight,
			}
		}
		number, err := lotRepo.NextNumber()
		if err != nil {
			return err
		}
		newLot := &entity.Lot{
			LotNumber:         number,
			ManufacturingDate: in.ManufacturingDate,
			NoOfBags:          in.NoOfBags,
			NetWeight:         in.NetWeight,
			TotalNetWeight:    in.TotalNetWeight,
			TeaTypeID:         in.TeaTypeID,
			ValuationPrice:    in.ValuationPrice,
			Status:            entity.LotStatusAvailable,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := lotRepo.Create(newLot); err != nil {
			return err
		}
		created.LotNumber = number
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update reemplaza el conjunto completo de campos editables de un lote.
// No re-verifica el delta de peso contra el stock disponible; el registro de
// stock solo se consume en la creación.
func (uc *RegistryUseCase) Update(lotNumber int64, in dto.UpdateLotRequest) error {
	if err := validateLotFields(in); err != nil {
		return err
	}
	existing, err := uc.lotRepo.GetByNumber(lotNumber)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	existing.ManufacturingDate = in.ManufacturingDate
	existing.NoOfBags = in.NoOfBags
	existing.NetWeight = in.NetWeight
	existing.TotalNetWeight = in.TotalNetWeight
	existing.ValuationPrice = in.ValuationPrice
	existing.TeaTypeID = in.TeaTypeID
	existing.UpdatedAt = time.Now()
	ok, err := uc.lotRepo.Update(existing)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un lote. Política RESTRICT: si existen valoraciones o ventas
// que lo referencian, la eliminación se rechaza con ErrLotHasDependents.
func (uc *RegistryUseCase) Delete(ctx context.Context, lotNumber int64) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.StockEntryRepository,
		lotRepo repository.LotRepository,
	) error {
		hasDeps, err := lotRepo.HasDependents(lotNumber)
		if err != nil {
			return err
		}
		if hasDeps {
			return domain.ErrLotHasDependents
		}
		ok, err := lotRepo.Delete(lotNumber)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
}

// GetByNumber obtiene un lote por su número.
func (uc *RegistryUseCase) GetByNumber(lotNumber int64) (*dto.LotResponse, error) {
	l, err := uc.lotRepo.GetByNumber(lotNumber)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return toLotResponse(l), nil
}

// List devuelve todos los lotes.
func (uc *RegistryUseCase) List() ([]dto.LotResponse, error) {
	lots, err := uc.lotRepo.List()
	if err != nil {
		return nil, err
	}
	return toLotResponses(lots), nil
}

// ListAvailable devuelve los lotes con estado available (sin valoraciones aún).
func (uc *RegistryUseCase) ListAvailable() ([]dto.LotResponse, error) {
	lots, err := uc.lotRepo.ListByStatus(entity.LotStatusAvailable)
	if err != nil {
		return nil, err
	}
	return toLotResponses(lots), nil
}

func toLotResponses(lots []*entity.Lot) []dto.LotResponse {
	items := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		items = append(items, *toLotResponse(l))
	}
	return items
}

func toLotResponse(l *entity.Lot) *dto.LotResponse {
	return &dto.LotResponse{
		LotNumber:         l.LotNumber,
		ManufacturingDate: l.ManufacturingDate,
		NoOfBags:          l.NoOfBags,
		NetWeight:         l.NetWeight,
		TotalNetWeight:    l.TotalNetWeight,
		TeaTypeID:         l.TeaTypeID,
		ValuationPrice:    l.ValuationPrice,
		Status:            l.Status,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}
