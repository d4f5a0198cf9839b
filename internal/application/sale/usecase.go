package sale

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/domain"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/domain/ledger"
	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

// SettlementUseCase registra el precio final transado por (lote, corredor).
// No exige que exista una valoración confirmada: el precio de venta es lo
// efectivamente negociado y puede divergir de (o preceder a) la confirmación;
// los dos subsistemas solo se unen por LEFT JOIN en los reportes.
type SettlementUseCase struct {
	txRunner TxRunner
	saleRepo repository.SoldLotRepository
}

// NewSettlementUseCase construye el caso de uso.
func NewSettlementUseCase(txRunner TxRunner, saleRepo repository.SoldLotRepository) *SettlementUseCase {
	return &SettlementUseCase{txRunner: txRunner, saleRepo: saleRepo}
}

// AddOrUpdateSoldPrice upsert idempotente por la llave natural (lote,
// corredor): llamadas repetidas convergen al último precio en lugar de
// acumular filas. El total se recalcula siempre contra el peso neto del lote
// y la fecha de venta se refresca en cada actualización.
func (uc *SettlementUseCase) AddOrUpdateSoldPrice(ctx context.Context, in dto.SoldPriceRequest) (*dto.SoldPriceResponse, error) {
	if in.LotNumber <= 0 || in.BrokerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.SoldPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var out dto.SoldPriceResponse
	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SoldLotRepository,
		lotRepo repository.LotRepository,
	) error {
		l, err := lotRepo.GetByNumber(in.LotNumber)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
		total := ledger.TotalSalePrice(in.SoldPrice, l.TotalNetWeight)

		existing, err := saleRepo.GetByLotAndBrokerForUpdate(in.LotNumber, in.BrokerID)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.SoldPrice = in.SoldPrice
			existing.TotalSoldPrice = total
			existing.SoldDate = now
			if err := saleRepo.Update(existing); err != nil {
				return err
			}
			out = dto.SoldPriceResponse{
				Operation:      dto.SaleOperationUpdated,
				SaleID:         existing.SaleID,
				TotalSoldPrice: total,
			}
		} else {
			newSale := &entity.SoldLot{
				SaleID:         uuid.New().String(),
				LotNumber:      in.LotNumber,
				BrokerID:       in.BrokerID,
				SoldPrice:      in.SoldPrice,
				TotalSoldPrice: total,
				SoldDate:       now,
				PaymentStatus:  entity.PaymentStatusPending,
			}
			if err := saleRepo.Create(newSale); err != nil {
				return err
			}
			out = dto.SoldPriceResponse{
				Operation:      dto.SaleOperationCreated,
				SaleID:         newSale.SaleID,
				TotalSoldPrice: total,
			}
		}
		return lotRepo.UpdateStatus(in.LotNumber, entity.LotStatusSold)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByBroker devuelve las ventas de un corredor con lote, tipo de té y la
// valoración confirmada si existe.
func (uc *SettlementUseCase) ListByBroker(brokerID string) ([]dto.SoldLotResponse, error) {
	list, err := uc.saleRepo.ListByBroker(brokerID)
	if err != nil {
		return nil, err
	}
	return toSoldLotResponses(list), nil
}

// ListAll devuelve todas las ventas (revisión administrativa del empleado).
func (uc *SettlementUseCase) ListAll() ([]dto.SoldLotResponse, error) {
	list, err := uc.saleRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return toSoldLotResponses(list), nil
}

// Delete elimina una venta por su llave sustituta (corrección).
func (uc *SettlementUseCase) Delete(saleID string) error {
	ok, err := uc.saleRepo.Delete(saleID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePaymentStatus marca el estado de pago de una venta (pending | paid).
func (uc *SettlementUseCase) UpdatePaymentStatus(saleID, status string) error {
	if status != entity.PaymentStatusPending && status != entity.PaymentStatusPaid {
		return domain.ErrInvalidInput
	}
	ok, err := uc.saleRepo.UpdatePaymentStatus(saleID, status)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func toSoldLotResponses(list []*entity.SoldLotDetail) []dto.SoldLotResponse {
	items := make([]dto.SoldLotResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.SoldLotResponse{
			SaleID:         s.SaleID,
			LotNumber:      s.LotNumber,
			TeaTypeName:    s.TeaTypeName,
			NoOfBags:       s.NoOfBags,
			TotalNetWeight: s.TotalNetWeight,
			BrokerID:       s.BrokerID,
			BrokerName:     s.BrokerName,
			BrokerCompany:  s.BrokerCompany,
			SoldPrice:      s.SoldPrice,
			TotalSoldPrice: s.TotalSoldPrice,
			SoldDate:       s.SoldDate,
			PaymentStatus:  s.PaymentStatus,
			ConfirmedPrice: s.ConfirmedPrice,
		})
	}
	return items
}
