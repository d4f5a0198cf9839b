package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/application/lot"
	"github.com/jhoicas/tea-coop-api/internal/application/sale"
	"github.com/jhoicas/tea-coop-api/internal/application/stock"
	"github.com/jhoicas/tea-coop-api/internal/application/usecase"
	"github.com/jhoicas/tea-coop-api/internal/application/valuation"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	apphttp "github.com/jhoicas/tea-coop-api/internal/interfaces/http"
	"github.com/jhoicas/tea-coop-api/internal/testsupport"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// pdfStub evita renderizar un PDF real en los tests de la API.
type pdfStub struct{}

func (pdfStub) GenerateReceiptPDF(context.Context, *entity.SoldLotDetail) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

// newAPI construye la aplicación completa (router + casos de uso) sobre el
// almacén en memoria.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := testsupport.NewMemStore()
	txRunner := testsupport.NewMemTxRunner(store)

	stockUC := stock.NewLedgerUseCase(store.StockEntries(), store.Lots(), store.TeaTypes())
	lotUC := lot.NewRegistryUseCase(txRunner, store.Lots(), store.TeaTypes())
	valuationUC := valuation.NewLedgerUseCase(txRunner, store.Valuations(), store.Lots())
	settlementUC := sale.NewSettlementUseCase(txRunner, store.SoldLots())
	receiptUC := sale.NewReceiptUseCase(store.SoldLots(), pdfStub{})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		StockUC:      stockUC,
		LotUC:        lotUC,
		ValuationUC:  valuationUC,
		SettlementUC: settlementUC,
		ReceiptUC:    receiptUC,
		TeaTypeUC:    usecase.NewTeaTypeUseCase(store.TeaTypes()),
		BrokerUC:     usecase.NewBrokerUseCase(store.Brokers()),
		JWTSecret:    testJWTSecret,
	})
	return app
}

// doJSON lanza una petición con cuerpo JSON y el token del rol indicado.
func doJSON(t *testing.T, app *fiber.App, method, path, role string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: producción → lote → valoración → confirmación → venta
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoCompletoDeVenta(t *testing.T) {
	app := newAPI(t)

	// Catálogo: tipo de té Dust
	resp := doJSON(t, app, http.MethodPost, "/api/tea-types", apphttp.RoleEmployee,
		dto.CreateTeaTypeRequest{Name: "Dust"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	teaType := decode[dto.TeaTypeResponse](t, resp)

	// Corredor
	resp = doJSON(t, app, http.MethodPost, "/api/brokers", apphttp.RoleEmployee,
		dto.CreateBrokerRequest{Name: "Carlos Pérez", CompanyName: "Té Andino"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	broker := decode[dto.BrokerResponse](t, resp)

	// 500 kg de producción acreditada
	resp = doJSON(t, app, http.MethodPost, "/api/stock", apphttp.RoleEmployee,
		dto.CreateStockEntryRequest{
			TeaTypeID:      teaType.ID,
			WeightKg:       dec("500"),
			ProductionDate: time.Now(),
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Lote de 200 kg
	resp = doJSON(t, app, http.MethodPost, "/api/lots", apphttp.RoleEmployee,
		dto.CreateLotRequest{
			ManufacturingDate: time.Now(),
			NoOfBags:          40,
			NetWeight:         dec("5"),
			TotalNetWeight:    dec("200"),
			ValuationPrice:    dec("250"),
			TeaTypeID:         teaType.ID,
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.CreateLotResponse](t, resp)
	assert.Equal(t, int64(1), created.LotNumber)

	// El disponible bajó a 300
	resp = doJSON(t, app, http.MethodGet, "/api/stock/"+teaType.ID+"/available", apphttp.RoleEmployee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.StockSummaryResponse](t, resp)
	assert.True(t, summary.Available.Equal(dec("300")), "disponible esperado 300, fue %s", summary.Available)

	// El corredor valora a 250/kg
	resp = doJSON(t, app, http.MethodPost, "/api/lots/1/valuation", apphttp.RoleBroker,
		dto.SubmitValuationRequest{BrokerID: broker.ID, ValuationPrice: dec("250")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	val := decode[dto.ValuationResponse](t, resp)

	// El empleado confirma
	resp = doJSON(t, app, http.MethodPost, "/api/valuations/"+val.ValuationID+"/confirm", apphttp.RoleEmployee,
		dto.ConfirmValuationRequest{EmployeeID: "emp-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	confirmed := decode[dto.ValuationResponse](t, resp)
	assert.True(t, confirmed.IsConfirmed)

	// Venta final a 240/kg → 240 * 200 = 48000
	resp = doJSON(t, app, http.MethodPost, "/api/sold-lots", apphttp.RoleEmployee,
		dto.SoldPriceRequest{LotNumber: 1, BrokerID: broker.ID, SoldPrice: dec("240")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saleOut := decode[dto.SoldPriceResponse](t, resp)
	assert.Equal(t, dto.SaleOperationCreated, saleOut.Operation)
	assert.True(t, saleOut.TotalSoldPrice.Equal(dec("48000")), "total esperado 48000, fue %s", saleOut.TotalSoldPrice)

	// El listado une la valoración confirmada a la venta
	resp = doJSON(t, app, http.MethodGet, "/api/sold-lots", apphttp.RoleEmployee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sales := decode[[]dto.SoldLotResponse](t, resp)
	require.Len(t, sales, 1)
	assert.Equal(t, "Dust", sales[0].TeaTypeName)
	require.NotNil(t, sales[0].ConfirmedPrice)
	assert.True(t, sales[0].ConfirmedPrice.Equal(dec("250")))

	// Comprobante PDF
	resp = doJSON(t, app, http.MethodGet, "/api/sold-lots/"+saleOut.SaleID+"/receipt", apphttp.RoleEmployee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdfBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "%PDF-stub", string(pdfBody))

	// Pago
	resp = doJSON(t, app, http.MethodPatch, "/api/sold-lots/"+saleOut.SaleID+"/payment", apphttp.RoleEmployee,
		dto.UpdatePaymentStatusRequest{PaymentStatus: entity.PaymentStatusPaid})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas de error
// ──────────────────────────────────────────────────────────────────────────────

// seedDustLot prepara tipo de té + 500 kg de stock + un lote de 200 kg y
// devuelve (app, teaTypeID, brokerID).
func seedDustLot(t *testing.T) (*fiber.App, string, string) {
	t.Helper()
	app := newAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/tea-types", apphttp.RoleEmployee,
		dto.CreateTeaTypeRequest{Name: "Dust"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	teaType := decode[dto.TeaTypeResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/brokers", apphttp.RoleEmployee,
		dto.CreateBrokerRequest{Name: "Carlos Pérez"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	broker := decode[dto.BrokerResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/stock", apphttp.RoleEmployee,
		dto.CreateStockEntryRequest{TeaTypeID: teaType.ID, WeightKg: dec("500"), ProductionDate: time.Now()})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/lots", apphttp.RoleEmployee,
		dto.CreateLotRequest{
			ManufacturingDate: time.Now(),
			NoOfBags:          40,
			NetWeight:         dec("5"),
			TotalNetWeight:    dec("200"),
			ValuationPrice:    dec("250"),
			TeaTypeID:         teaType.ID,
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	return app, teaType.ID, broker.ID
}

func TestAPI_LoteSobreElDisponible_400ConCifras(t *testing.T) {
	app, teaTypeID, _ := seedDustLot(t)

	// Quedan 300 kg; pedir 400 debe fallar con las cifras en el cuerpo
	resp := doJSON(t, app, http.MethodPost, "/api/lots", apphttp.RoleEmployee,
		dto.CreateLotRequest{
			ManufacturingDate: time.Now(),
			NoOfBags:          80,
			NetWeight:         dec("5"),
			TotalNetWeight:    dec("400"),
			ValuationPrice:    dec("250"),
			TeaTypeID:         teaTypeID,
		})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[dto.StockShortageResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.True(t, body.Available.Equal(dec("300")))
	assert.True(t, body.Requested.Equal(dec("400")))
}

func TestAPI_ModificarValoracionConfirmada_400(t *testing.T) {
	app, _, brokerID := seedDustLot(t)

	resp := doJSON(t, app, http.MethodPost, "/api/lots/1/valuation", apphttp.RoleBroker,
		dto.SubmitValuationRequest{BrokerID: brokerID, ValuationPrice: dec("250")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	val := decode[dto.ValuationResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/valuations/"+val.ValuationID+"/confirm", apphttp.RoleEmployee,
		dto.ConfirmValuationRequest{EmployeeID: "emp-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// PUT sobre la confirmada: 400 inmutable, no 404
	resp = doJSON(t, app, http.MethodPut, "/api/valuations/"+val.ValuationID, apphttp.RoleEmployee,
		dto.UpdateValuationRequest{ValuationPrice: dec("300")})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "CONFIRMED_IMMUTABLE", body.Code)

	// DELETE igual
	resp = doJSON(t, app, http.MethodDelete, "/api/valuations/"+val.ValuationID, apphttp.RoleEmployee, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ConfirmarSinEmployeeID_TomaElDelToken(t *testing.T) {
	app, _, brokerID := seedDustLot(t)

	resp := doJSON(t, app, http.MethodPost, "/api/lots/1/valuation", apphttp.RoleBroker,
		dto.SubmitValuationRequest{BrokerID: brokerID, ValuationPrice: dec("250")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	val := decode[dto.ValuationResponse](t, resp)

	// Cuerpo vacío: el empleado que confirma sale del token
	resp = doJSON(t, app, http.MethodPost, "/api/valuations/"+val.ValuationID+"/confirm", apphttp.RoleEmployee,
		dto.ConfirmValuationRequest{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	confirmed := decode[dto.ValuationResponse](t, resp)
	assert.True(t, confirmed.IsConfirmed)
	require.NotNil(t, confirmed.ConfirmedBy)
	assert.Equal(t, testUserID, *confirmed.ConfirmedBy,
		"sin employee_id en el cuerpo debe confirmarse con el usuario del token")
}

func TestAPI_EliminarLoteConValoraciones_409(t *testing.T) {
	app, _, brokerID := seedDustLot(t)

	resp := doJSON(t, app, http.MethodPost, "/api/lots/1/valuation", apphttp.RoleBroker,
		dto.SubmitValuationRequest{BrokerID: brokerID, ValuationPrice: dec("250")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/lots/1", apphttp.RoleEmployee, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "LOT_HAS_DEPENDENTS", body.Code)
}

func TestAPI_VentaDeLoteInexistente_404(t *testing.T) {
	app, _, brokerID := seedDustLot(t)

	resp := doJSON(t, app, http.MethodPost, "/api/sold-lots", apphttp.RoleEmployee,
		dto.SoldPriceRequest{LotNumber: 999, BrokerID: brokerID, SoldPrice: dec("240")})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_CorredorRegistraPrecioDeVenta(t *testing.T) {
	app, _, brokerID := seedDustLot(t)

	// El corredor que cerró el trato registra el precio de venta él mismo
	resp := doJSON(t, app, http.MethodPost, "/api/sold-lots", apphttp.RoleBroker,
		dto.SoldPriceRequest{LotNumber: 1, BrokerID: brokerID, SoldPrice: dec("240")})
	require.Equal(t, http.StatusOK, resp.StatusCode,
		"el corredor debe poder registrar el precio de venta de un lote")
	saleOut := decode[dto.SoldPriceResponse](t, resp)
	assert.Equal(t, dto.SaleOperationCreated, saleOut.Operation)
	assert.True(t, saleOut.TotalSoldPrice.Equal(dec("48000")))

	// Un conductor no
	resp = doJSON(t, app, http.MethodPost, "/api/sold-lots", apphttp.RoleDriver,
		dto.SoldPriceRequest{LotNumber: 1, BrokerID: brokerID, SoldPrice: dec("240")})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_CorredorNoPuedeCrearLotes_403(t *testing.T) {
	app, teaTypeID, _ := seedDustLot(t)

	resp := doJSON(t, app, http.MethodPost, "/api/lots", apphttp.RoleBroker,
		dto.CreateLotRequest{
			ManufacturingDate: time.Now(),
			NoOfBags:          10,
			NetWeight:         dec("5"),
			TotalNetWeight:    dec("50"),
			ValuationPrice:    dec("250"),
			TeaTypeID:         teaTypeID,
		})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_NumeroDeLoteNoNumerico_400(t *testing.T) {
	app, _, _ := seedDustLot(t)

	resp := doJSON(t, app, http.MethodGet, "/api/lots/abc", apphttp.RoleEmployee, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_SinToken_401(t *testing.T) {
	app := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/lots", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
