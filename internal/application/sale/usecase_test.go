package sale_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/application/sale"
	"github.com/jhoicas/tea-coop-api/internal/domain"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/testsupport"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

const testLotNumber = int64(12)

// newSettlement prepara el caso de uso con un lote de 200 kg y un corredor.
func newSettlement(t *testing.T) (*sale.SettlementUseCase, *testsupport.MemStore) {
	t.Helper()
	store := testsupport.NewMemStore()
	require.NoError(t, store.TeaTypes().Create(&entity.TeaType{
		ID: "tea-1", Name: "Dust", CreatedAt: time.Now(),
	}))
	require.NoError(t, store.Lots().Create(&entity.Lot{
		LotNumber:      testLotNumber,
		NoOfBags:       40,
		NetWeight:      dec("5"),
		TotalNetWeight: dec("200"),
		TeaTypeID:      "tea-1",
		Status:         entity.LotStatusConfirmed,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}))
	require.NoError(t, store.Brokers().Create(&entity.Broker{
		ID: "broker-1", Name: "Carlos Pérez", CompanyName: "Té Andino", CreatedAt: time.Now(),
	}))
	uc := sale.NewSettlementUseCase(testsupport.NewMemTxRunner(store), store.SoldLots())
	return uc, store
}

func soldPriceReq(price string) dto.SoldPriceRequest {
	return dto.SoldPriceRequest{
		LotNumber: testLotNumber,
		BrokerID:  "broker-1",
		SoldPrice: dec(price),
	}
}

func TestAddOrUpdateSoldPrice_PrimeraVezCrea(t *testing.T) {
	uc, store := newSettlement(t)

	out, err := uc.AddOrUpdateSoldPrice(context.Background(), soldPriceReq("240"))
	require.NoError(t, err)

	assert.Equal(t, dto.SaleOperationCreated, out.Operation)
	assert.NotEmpty(t, out.SaleID)
	// 240 /kg * 200 kg
	assert.True(t, out.TotalSoldPrice.Equal(dec("48000")), "total esperado 48000, fue %s", out.TotalSoldPrice)

	created, err := store.SoldLots().GetBySaleID(out.SaleID)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, entity.PaymentStatusPending, created.PaymentStatus)
}

// Mismo (lote, corredor): la segunda llamada actualiza en lugar de duplicar y
// conserva el sale_id original.
func TestAddOrUpdateSoldPrice_SegundaVezActualiza(t *testing.T) {
	uc, _ := newSettlement(t)
	ctx := context.Background()

	first, err := uc.AddOrUpdateSoldPrice(ctx, soldPriceReq("240"))
	require.NoError(t, err)

	second, err := uc.AddOrUpdateSoldPrice(ctx, soldPriceReq("245"))
	require.NoError(t, err)

	assert.Equal(t, dto.SaleOperationUpdated, second.Operation)
	assert.Equal(t, first.SaleID, second.SaleID, "el upsert no debe cambiar la llave sustituta")
	assert.True(t, second.TotalSoldPrice.Equal(dec("49000")))

	all, err := uc.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 1, "no debe acumular filas por llamadas repetidas")
}

func TestAddOrUpdateSoldPrice_TransicionaLoteAVendido(t *testing.T) {
	uc, store := newSettlement(t)

	_, err := uc.AddOrUpdateSoldPrice(context.Background(), soldPriceReq("240"))
	require.NoError(t, err)

	l, err := store.Lots().GetByNumber(testLotNumber)
	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusSold, l.Status)
}

func TestAddOrUpdateSoldPrice_LoteInexistente(t *testing.T) {
	uc, _ := newSettlement(t)

	in := soldPriceReq("240")
	in.LotNumber = 999
	_, err := uc.AddOrUpdateSoldPrice(context.Background(), in)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "lote inexistente debe ser not-found, no error interno")
}

func TestAddOrUpdateSoldPrice_EntradaInvalida(t *testing.T) {
	uc, _ := newSettlement(t)
	ctx := context.Background()

	in := soldPriceReq("240")
	in.BrokerID = ""
	_, err := uc.AddOrUpdateSoldPrice(ctx, in)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	in = soldPriceReq("0")
	_, err = uc.AddOrUpdateSoldPrice(ctx, in)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestListByBroker_IncluyeJoinsYConfirmada(t *testing.T) {
	uc, store := newSettlement(t)
	ctx := context.Background()

	confirmedPrice := dec("250")
	employeeID := "emp-1"
	now := time.Now()
	require.NoError(t, store.Valuations().Create(&entity.BrokerValuation{
		ValuationID:    "val-1",
		LotNumber:      testLotNumber,
		BrokerID:       "broker-1",
		ValuationPrice: confirmedPrice,
		ValuationDate:  now,
		IsConfirmed:    true,
		ConfirmedBy:    &employeeID,
		ConfirmedAt:    &now,
	}))

	_, err := uc.AddOrUpdateSoldPrice(ctx, soldPriceReq("240"))
	require.NoError(t, err)

	list, err := uc.ListByBroker("broker-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	row := list[0]
	assert.Equal(t, "Dust", row.TeaTypeName)
	assert.Equal(t, 40, row.NoOfBags)
	assert.Equal(t, "Carlos Pérez", row.BrokerName)
	require.NotNil(t, row.ConfirmedPrice)
	assert.True(t, row.ConfirmedPrice.Equal(confirmedPrice))
}

// Sin valoración confirmada la venta igual se lista; el precio confirmado va nil.
func TestListAll_SinConfirmadaElPrecioVaNulo(t *testing.T) {
	uc, _ := newSettlement(t)

	_, err := uc.AddOrUpdateSoldPrice(context.Background(), soldPriceReq("240"))
	require.NoError(t, err)

	list, err := uc.ListAll()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].ConfirmedPrice)
}

func TestDelete_VentaInexistente(t *testing.T) {
	uc, _ := newSettlement(t)
	err := uc.Delete("no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdatePaymentStatus_CicloCompleto(t *testing.T) {
	uc, store := newSettlement(t)
	ctx := context.Background()

	out, err := uc.AddOrUpdateSoldPrice(ctx, soldPriceReq("240"))
	require.NoError(t, err)

	require.NoError(t, uc.UpdatePaymentStatus(out.SaleID, entity.PaymentStatusPaid))

	updated, err := store.SoldLots().GetBySaleID(out.SaleID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, updated.PaymentStatus)
}

func TestUpdatePaymentStatus_EstadoDesconocido(t *testing.T) {
	uc, _ := newSettlement(t)
	err := uc.UpdatePaymentStatus("cualquiera", "refunded")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
