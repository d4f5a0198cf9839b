package valuation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/application/valuation"
	"github.com/jhoicas/tea-coop-api/internal/domain"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/testsupport"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

const testLotNumber = int64(7)

// newLedger prepara el caso de uso con un lote disponible y dos corredores.
func newLedger(t *testing.T) (*valuation.LedgerUseCase, *testsupport.MemStore) {
	t.Helper()
	store := testsupport.NewMemStore()
	require.NoError(t, store.Lots().Create(&entity.Lot{
		LotNumber:      testLotNumber,
		NoOfBags:       40,
		NetWeight:      dec("5"),
		TotalNetWeight: dec("200"),
		TeaTypeID:      "tea-1",
		Status:         entity.LotStatusAvailable,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}))
	for _, b := range []entity.Broker{
		{ID: "broker-1", Name: "Carlos Pérez", CompanyName: "Té Andino"},
		{ID: "broker-2", Name: "Lucía Gómez"},
	} {
		broker := b
		broker.CreatedAt = time.Now()
		require.NoError(t, store.Brokers().Create(&broker))
	}
	uc := valuation.NewLedgerUseCase(testsupport.NewMemTxRunner(store), store.Valuations(), store.Lots())
	return uc, store
}

func submit(t *testing.T, uc *valuation.LedgerUseCase, brokerID, price string) *dto.ValuationResponse {
	t.Helper()
	out, err := uc.Submit(context.Background(), testLotNumber, dto.SubmitValuationRequest{
		BrokerID:       brokerID,
		ValuationPrice: dec(price),
	})
	require.NoError(t, err)
	return out
}

func TestSubmit_TransicionaLoteAPendiente(t *testing.T) {
	uc, store := newLedger(t)

	out := submit(t, uc, "broker-1", "250")
	assert.NotEmpty(t, out.ValuationID)
	assert.False(t, out.IsConfirmed)

	l, err := store.Lots().GetByNumber(testLotNumber)
	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusValuationPending, l.Status)
}

// Reenvíos del mismo corredor acumulan historial, no sobreescriben.
func TestSubmit_HistorialAppendOnly(t *testing.T) {
	uc, _ := newLedger(t)

	submit(t, uc, "broker-1", "250")
	submit(t, uc, "broker-1", "260")

	list, err := uc.ListByLot(testLotNumber)
	require.NoError(t, err)
	assert.Len(t, list, 2, "cada envío debe ser una fila independiente")
}

func TestSubmit_LoteInexistente(t *testing.T) {
	uc, _ := newLedger(t)
	_, err := uc.Submit(context.Background(), 999, dto.SubmitValuationRequest{
		BrokerID:       "broker-1",
		ValuationPrice: dec("250"),
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSubmit_PrecioNoPositivo(t *testing.T) {
	uc, _ := newLedger(t)
	_, err := uc.Submit(context.Background(), testLotNumber, dto.SubmitValuationRequest{
		BrokerID:       "broker-1",
		ValuationPrice: decimal.Zero,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestConfirm_MarcaValoracionYLote(t *testing.T) {
	uc, store := newLedger(t)

	v := submit(t, uc, "broker-1", "250")
	out, err := uc.Confirm(context.Background(), v.ValuationID, "emp-1")
	require.NoError(t, err)

	assert.True(t, out.IsConfirmed)
	require.NotNil(t, out.ConfirmedBy)
	assert.Equal(t, "emp-1", *out.ConfirmedBy)
	assert.NotNil(t, out.ConfirmedAt)

	l, err := store.Lots().GetByNumber(testLotNumber)
	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusConfirmed, l.Status)
}

// Confirmar una segunda valoración del mismo lote es una re-elección: la
// anterior queda degradada y a lo sumo una permanece confirmada.
func TestConfirm_ReeleccionDegradaLaAnterior(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	first := submit(t, uc, "broker-1", "250")
	second := submit(t, uc, "broker-2", "245")

	_, err := uc.Confirm(ctx, first.ValuationID, "emp-1")
	require.NoError(t, err)
	_, err = uc.Confirm(ctx, second.ValuationID, "emp-1")
	require.NoError(t, err)

	list, err := uc.ListByLot(testLotNumber)
	require.NoError(t, err)

	confirmedCount := 0
	for _, v := range list {
		if v.IsConfirmed {
			confirmedCount++
			assert.Equal(t, second.ValuationID, v.ValuationID)
		} else {
			assert.Nil(t, v.ConfirmedBy, "la degradada debe perder confirmed_by")
			assert.Nil(t, v.ConfirmedAt)
		}
	}
	assert.Equal(t, 1, confirmedCount, "a lo sumo una valoración confirmada por lote")
}

func TestConfirm_ValoracionInexistente(t *testing.T) {
	uc, _ := newLedger(t)
	_, err := uc.Confirm(context.Background(), "no-existe", "emp-1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestConfirm_SinEmpleado(t *testing.T) {
	uc, _ := newLedger(t)
	v := submit(t, uc, "broker-1", "250")
	_, err := uc.Confirm(context.Background(), v.ValuationID, "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUpdatePrice_SobreNoConfirmada(t *testing.T) {
	uc, _ := newLedger(t)
	v := submit(t, uc, "broker-1", "250")

	require.NoError(t, uc.UpdatePrice(v.ValuationID, dec("260")))

	list, err := uc.ListByLot(testLotNumber)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].ValuationPrice.Equal(dec("260")))
}

// Una confirmada es inmutable: el error debe ser el de inmutabilidad, no 404.
func TestUpdatePrice_ConfirmadaEsInmutable(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	v := submit(t, uc, "broker-1", "250")
	_, err := uc.Confirm(ctx, v.ValuationID, "emp-1")
	require.NoError(t, err)

	err = uc.UpdatePrice(v.ValuationID, dec("300"))
	assert.True(t, errors.Is(err, domain.ErrConfirmedValuationImmutable))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdatePrice_Inexistente(t *testing.T) {
	uc, _ := newLedger(t)
	err := uc.UpdatePrice("no-existe", dec("300"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDelete_NoConfirmadaSeElimina(t *testing.T) {
	uc, _ := newLedger(t)
	v := submit(t, uc, "broker-1", "250")

	require.NoError(t, uc.Delete(v.ValuationID))

	list, err := uc.ListByLot(testLotNumber)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDelete_ConfirmadaSeRechaza(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	v := submit(t, uc, "broker-1", "250")
	_, err := uc.Confirm(ctx, v.ValuationID, "emp-1")
	require.NoError(t, err)

	err = uc.Delete(v.ValuationID)
	assert.True(t, errors.Is(err, domain.ErrConfirmedValuationImmutable))
}

func TestListByLot_IncluyeIdentidadDelCorredor(t *testing.T) {
	uc, _ := newLedger(t)
	submit(t, uc, "broker-1", "250")

	list, err := uc.ListByLot(testLotNumber)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Carlos Pérez", list[0].BrokerName)
	assert.Equal(t, "Té Andino", list[0].BrokerCompany)
}

func TestListConfirmedByBroker_FiltraPorCorredor(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	v1 := submit(t, uc, "broker-1", "250")
	_, err := uc.Confirm(ctx, v1.ValuationID, "emp-1")
	require.NoError(t, err)

	list, err := uc.ListConfirmedByBroker("broker-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	empty, err := uc.ListConfirmedByBroker("broker-2")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
