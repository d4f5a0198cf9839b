package sale

import (
	"context"

	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El upsert de venta (buscar por llave natural,
// insertar o actualizar) debe ser una sola unidad atómica.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SoldLotRepository,
		lotRepo repository.LotRepository,
	) error) error
}

// ReceiptPDFGenerator genera el comprobante PDF de una venta liquidada.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, detail *entity.SoldLotDetail) ([]byte, error)
}
