package lot_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/application/lot"
	"github.com/jhoicas/tea-coop-api/internal/domain"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/testsupport"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

const testTeaTypeID = "00000000-0000-0000-0000-0000000000aa"

// newRegistry prepara el caso de uso con un tipo de té "Dust" y el stock
// indicado ya acreditado.
func newRegistry(t *testing.T, stockKg string) (*lot.RegistryUseCase, *testsupport.MemStore) {
	t.Helper()
	store := testsupport.NewMemStore()
	require.NoError(t, store.TeaTypes().Create(&entity.TeaType{
		ID:        testTeaTypeID,
		Name:      "Dust",
		CreatedAt: time.Now(),
	}))
	if stockKg != "" {
		require.NoError(t, store.StockEntries().Create(&entity.StockEntry{
			ID:             "entry-1",
			TeaTypeID:      testTeaTypeID,
			WeightKg:       dec(stockKg),
			ProductionDate: time.Now(),
			RecordedBy:     "emp-1",
			CreatedAt:      time.Now(),
		}))
	}
	uc := lot.NewRegistryUseCase(testsupport.NewMemTxRunner(store), store.Lots(), store.TeaTypes())
	return uc, store
}

func validLotRequest(totalKg string) dto.CreateLotRequest {
	return dto.CreateLotRequest{
		ManufacturingDate: time.Now(),
		NoOfBags:          40,
		NetWeight:         dec("5"),
		TotalNetWeight:    dec(totalKg),
		ValuationPrice:    dec("250"),
		TeaTypeID:         testTeaTypeID,
	}
}

func TestCreate_ConStockSuficiente(t *testing.T) {
	uc, store := newRegistry(t, "500")

	out, err := uc.Create(context.Background(), validLotRequest("200"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.LotNumber, "el primer lote debe recibir el número 1")

	created, err := store.Lots().GetByNumber(out.LotNumber)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, entity.LotStatusAvailable, created.Status)
	assert.True(t, created.TotalNetWeight.Equal(dec("200")))
}

func TestCreate_StockInsuficienteRetornaCifras(t *testing.T) {
	uc, _ := newRegistry(t, "500")

	_, err := uc.Create(context.Background(), validLotRequest("600"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var shortage *domain.InsufficientStockError
	require.True(t, errors.As(err, &shortage), "el error debe llevar las cifras")
	assert.True(t, shortage.Available.Equal(dec("500")))
	assert.True(t, shortage.Requested.Equal(dec("600")))
}

// Consumir exactamente el disponible se permite; cualquier gramo adicional no.
func TestCreate_ConsumoExactoDelDisponible(t *testing.T) {
	uc, _ := newRegistry(t, "500")

	_, err := uc.Create(context.Background(), validLotRequest("500"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), validLotRequest("0.01"))
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock),
		"con disponible cero cualquier peso positivo debe rechazarse")
}

// El disponible se recalcula contra lo ya asignado: lotes previos descuentan.
func TestCreate_LotesPreviosDescuentanDelDisponible(t *testing.T) {
	uc, _ := newRegistry(t, "500")

	_, err := uc.Create(context.Background(), validLotRequest("300"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), validLotRequest("300"))
	require.Error(t, err)

	var shortage *domain.InsufficientStockError
	require.True(t, errors.As(err, &shortage))
	assert.True(t, shortage.Available.Equal(dec("200")))
}

func TestCreate_TipoDeTeInexistente(t *testing.T) {
	uc, _ := newRegistry(t, "500")

	in := validLotRequest("100")
	in.TeaTypeID = "no-existe"
	_, err := uc.Create(context.Background(), in)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCreate_CamposInvalidos(t *testing.T) {
	uc, _ := newRegistry(t, "500")

	cases := map[string]func(*dto.CreateLotRequest){
		"sin tipo de té":      func(in *dto.CreateLotRequest) { in.TeaTypeID = "" },
		"sin fecha":           func(in *dto.CreateLotRequest) { in.ManufacturingDate = time.Time{} },
		"bolsas cero":         func(in *dto.CreateLotRequest) { in.NoOfBags = 0 },
		"peso neto cero":      func(in *dto.CreateLotRequest) { in.NetWeight = decimal.Zero },
		"peso total negativo": func(in *dto.CreateLotRequest) { in.TotalNetWeight = dec("-1") },
		"precio negativo":     func(in *dto.CreateLotRequest) { in.ValuationPrice = dec("-10") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validLotRequest("100")
			mutate(&in)
			_, err := uc.Create(context.Background(), in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "caso %q debe rechazarse", name)
		})
	}
}

// La secuencia nunca retrocede: eliminar un lote no libera su número.
func TestCreate_NumerosNoSeReutilizanTrasEliminar(t *testing.T) {
	uc, _ := newRegistry(t, "500")
	ctx := context.Background()

	first, err := uc.Create(ctx, validLotRequest("100"))
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, first.LotNumber))

	second, err := uc.Create(ctx, validLotRequest("100"))
	require.NoError(t, err)
	assert.Equal(t, first.LotNumber+1, second.LotNumber)
}

func TestDelete_ConDependientesSeRechaza(t *testing.T) {
	uc, store := newRegistry(t, "500")
	ctx := context.Background()

	out, err := uc.Create(ctx, validLotRequest("100"))
	require.NoError(t, err)

	require.NoError(t, store.Valuations().Create(&entity.BrokerValuation{
		ValuationID:    "val-1",
		LotNumber:      out.LotNumber,
		BrokerID:       "broker-1",
		ValuationPrice: dec("250"),
		ValuationDate:  time.Now(),
	}))

	err = uc.Delete(ctx, out.LotNumber)
	assert.True(t, errors.Is(err, domain.ErrLotHasDependents))

	// El lote sigue existiendo
	l, err := store.Lots().GetByNumber(out.LotNumber)
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestDelete_LoteInexistente(t *testing.T) {
	uc, _ := newRegistry(t, "500")
	err := uc.Delete(context.Background(), 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_ReemplazaCampos(t *testing.T) {
	uc, store := newRegistry(t, "500")
	ctx := context.Background()

	out, err := uc.Create(ctx, validLotRequest("100"))
	require.NoError(t, err)

	in := validLotRequest("150")
	in.NoOfBags = 30
	require.NoError(t, uc.Update(out.LotNumber, in))

	updated, err := store.Lots().GetByNumber(out.LotNumber)
	require.NoError(t, err)
	assert.Equal(t, 30, updated.NoOfBags)
	assert.True(t, updated.TotalNetWeight.Equal(dec("150")))
}

func TestUpdate_LoteInexistente(t *testing.T) {
	uc, _ := newRegistry(t, "500")
	err := uc.Update(999, validLotRequest("100"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListAvailable_FiltraPorEstado(t *testing.T) {
	uc, store := newRegistry(t, "500")
	ctx := context.Background()

	a, err := uc.Create(ctx, validLotRequest("100"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, validLotRequest("100"))
	require.NoError(t, err)

	require.NoError(t, store.Lots().UpdateStatus(a.LotNumber, entity.LotStatusSold))

	list, err := uc.ListAvailable()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.LotStatusAvailable, list[0].Status)
}
