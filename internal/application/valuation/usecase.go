package valuation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/domain"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

// LedgerUseCase lleva el libro de valoraciones de corredores por lote.
//
// Máquina de estados por lote: sin valoraciones → pendientes (0..n, ninguna
// confirmada) → una confirmada (las demás degradadas). Reconfirmar otra
// valoración del mismo lote es una re-elección, no un error. Una valoración
// confirmada no admite cambio de precio ni eliminación.
type LedgerUseCase struct {
	txRunner TxRunner
	valRepo  repository.ValuationRepository
	lotRepo  repository.LotRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	valRepo repository.ValuationRepository,
	lotRepo repository.LotRepository,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, valRepo: valRepo, lotRepo: lotRepo}
}

// Submit registra la valoración de un corredor para un lote y transiciona el
// lote a valuation_pending. Cada envío es una fila independiente: el historial
// de precios por corredor es append-only (sin upsert).
func (uc *LedgerUseCase) Submit(ctx context.Context, lotNumber int64, in dto.SubmitValuationRequest) (*dto.ValuationResponse, error) {
	if in.BrokerID == "" || !in.ValuationPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	v := &entity.BrokerValuation{
		ValuationID:    uuid.New().String(),
		LotNumber:      lotNumber,
		BrokerID:       in.BrokerID,
		ValuationPrice: in.ValuationPrice,
		ValuationDate:  time.Now(),
		IsConfirmed:    false,
	}
	err := uc.txRunner.RunValuation(ctx, func(
		valRepo repository.ValuationRepository,
		lotRepo repository.LotRepository,
	) error {
		l, err := lotRepo.GetByNumber(lotNumber)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
		if err := valRepo.Create(v); err != nil {
			return err
		}
		return lotRepo.UpdateStatus(lotNumber, entity.LotStatusValuationPending)
	})
	if err != nil {
		return nil, err
	}
	return toValuationResponse(&entity.ValuationWithBroker{BrokerValuation: *v}), nil
}

// Confirm marca una valoración como la autoritativa de su lote. Degradar a
// todas las hermanas y promover el objetivo ocurre en una sola transacción;
// degradar primero garantiza que un fallo parcial deje cero confirmadas antes
// que dos (se prefiere perder la confirmación a violar el invariante).
func (uc *LedgerUseCase) Confirm(ctx context.Context, valuationID, employeeID string) (*dto.ValuationResponse, error) {
	if employeeID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var confirmed *entity.BrokerValuation
	err := uc.txRunner.RunValuation(ctx, func(
		valRepo repository.ValuationRepository,
		lotRepo repository.LotRepository,
	) error {
		v, err := valRepo.GetByID(valuationID)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrNotFound
		}
		if err := valRepo.DemoteSiblings(v.LotNumber, valuationID); err != nil {
			return err
		}
		ok, err := valRepo.Confirm(valuationID, employeeID, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		if err := lotRepo.UpdateStatus(v.LotNumber, entity.LotStatusConfirmed); err != nil {
			return err
		}
		v.IsConfirmed = true
		v.ConfirmedBy = &employeeID
		v.ConfirmedAt = &now
		confirmed = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toValuationResponse(&entity.ValuationWithBroker{BrokerValuation: *confirmed}), nil
}

// UpdatePrice corrige el precio de una valoración aún no confirmada. Sobre una
// confirmada falla con ErrConfirmedValuationImmutable, nunca con not-found.
func (uc *LedgerUseCase) UpdatePrice(valuationID string, price decimal.Decimal) error {
	if !price.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	ok, err := uc.valRepo.UpdatePrice(valuationID, price)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return uc.classifyNoRowChange(valuationID)
}

// Delete elimina una valoración aún no confirmada; mismas reglas que UpdatePrice.
func (uc *LedgerUseCase) Delete(valuationID string) error {
	ok, err := uc.valRepo.Delete(valuationID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return uc.classifyNoRowChange(valuationID)
}

// classifyNoRowChange distingue por qué una mutación condicionada no tocó
// filas: la valoración no existe (404) o existe pero está confirmada (400).
func (uc *LedgerUseCase) classifyNoRowChange(valuationID string) error {
	v, err := uc.valRepo.GetByID(valuationID)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	return domain.ErrConfirmedValuationImmutable
}

// ListByLot devuelve las valoraciones de un lote con identidad del corredor,
// la más reciente primero.
func (uc *LedgerUseCase) ListByLot(lotNumber int64) ([]dto.ValuationResponse, error) {
	list, err := uc.valRepo.ListByLot(lotNumber)
	if err != nil {
		return nil, err
	}
	return toValuationResponses(list), nil
}

// ListConfirmed devuelve todas las valoraciones confirmadas (reporte de empleado).
func (uc *LedgerUseCase) ListConfirmed() ([]dto.ValuationResponse, error) {
	list, err := uc.valRepo.ListConfirmed()
	if err != nil {
		return nil, err
	}
	return toValuationResponses(list), nil
}

// ListConfirmedByBroker devuelve las valoraciones confirmadas de un corredor.
func (uc *LedgerUseCase) ListConfirmedByBroker(brokerID string) ([]dto.ValuationResponse, error) {
	list, err := uc.valRepo.ListConfirmedByBroker(brokerID)
	if err != nil {
		return nil, err
	}
	return toValuationResponses(list), nil
}

func toValuationResponses(list []*entity.ValuationWithBroker) []dto.ValuationResponse {
	items := make([]dto.ValuationResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toValuationResponse(v))
	}
	return items
}

func toValuationResponse(v *entity.ValuationWithBroker) *dto.ValuationResponse {
	return &dto.ValuationResponse{
		ValuationID:    v.ValuationID,
		LotNumber:      v.LotNumber,
		BrokerID:       v.BrokerID,
		BrokerName:     v.BrokerName,
		BrokerCompany:  v.BrokerCompany,
		ValuationPrice: v.ValuationPrice,
		ValuationDate:  v.ValuationDate,
		IsConfirmed:    v.IsConfirmed,
		ConfirmedBy:    v.ConfirmedBy,
		ConfirmedAt:    v.ConfirmedAt,
	}
}
