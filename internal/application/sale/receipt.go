package sale

import (
	"context"

	"github.com/jhoicas/tea-coop-api/internal/domain"
	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una venta liquidada.
type ReceiptUseCase struct {
	saleRepo  repository.SoldLotRepository
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(saleRepo repository.SoldLotRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, generator: generator}
}

// Receipt obtiene la venta con sus joins y renderiza el PDF.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, saleID string) ([]byte, error) {
	detail, err := uc.saleRepo.GetDetailBySaleID(saleID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateReceiptPDF(ctx, detail)
}
