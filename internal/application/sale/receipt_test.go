package sale_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tea-coop-api/internal/application/sale"
	"github.com/jhoicas/tea-coop-api/internal/domain"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
)

// stubGenerator registra el detalle recibido y devuelve bytes fijos.
type stubGenerator struct {
	received *entity.SoldLotDetail
}

func (g *stubGenerator) GenerateReceiptPDF(_ context.Context, d *entity.SoldLotDetail) ([]byte, error) {
	g.received = d
	return []byte("%PDF-stub"), nil
}

func TestReceipt_GeneraConElDetalleDeLaVenta(t *testing.T) {
	uc, store := newSettlement(t)
	ctx := context.Background()

	out, err := uc.AddOrUpdateSoldPrice(ctx, soldPriceReq("240"))
	require.NoError(t, err)

	gen := &stubGenerator{}
	receiptUC := sale.NewReceiptUseCase(store.SoldLots(), gen)

	pdfBytes, err := receiptUC.Receipt(ctx, out.SaleID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), pdfBytes)

	require.NotNil(t, gen.received)
	assert.Equal(t, out.SaleID, gen.received.SaleID)
	assert.Equal(t, "Dust", gen.received.TeaTypeName)
}

func TestReceipt_VentaInexistente(t *testing.T) {
	_, store := newSettlement(t)

	receiptUC := sale.NewReceiptUseCase(store.SoldLots(), &stubGenerator{})
	_, err := receiptUC.Receipt(context.Background(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
