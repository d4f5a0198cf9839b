package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tea-coop-api/internal/domain/ledger"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestAvailableStock_RestaProductivoMenosAsignado(t *testing.T) {
	got := ledger.AvailableStock(dec("500"), dec("200"))
	assert.True(t, got.Equal(dec("300")), "500 - 200 debe ser 300, fue %s", got)
}

// Tipo de té sin filas: ambas sumas son cero y el disponible es cero.
func TestAvailableStock_SinRegistrosEsCero(t *testing.T) {
	got := ledger.AvailableStock(decimal.Zero, decimal.Zero)
	assert.True(t, got.IsZero())
}

// El disponible puede quedar negativo tras un ajuste a la baja del stock; el
// libro lo reporta tal cual en lugar de ocultarlo.
func TestAvailableStock_PuedeSerNegativo(t *testing.T) {
	got := ledger.AvailableStock(dec("100"), dec("150"))
	assert.True(t, got.Equal(dec("-50")))
}

func TestAvailableStock_DecimalesExactos(t *testing.T) {
	// 0.1 + 0.2 clase de problema: decimal debe dar exacto, no 0.30000000004
	got := ledger.AvailableStock(dec("0.3"), dec("0.1"))
	assert.True(t, got.Equal(dec("0.2")), "resta decimal debe ser exacta, fue %s", got)
}

func TestTotalSalePrice_PrecioPorPeso(t *testing.T) {
	// 240 /kg sobre 200 kg = 48000
	got := ledger.TotalSalePrice(dec("240"), dec("200"))
	assert.True(t, got.Equal(dec("48000")), "total esperado 48000, fue %s", got)
}

func TestTotalSalePrice_ConDecimales(t *testing.T) {
	got := ledger.TotalSalePrice(dec("250.50"), dec("12.5"))
	assert.True(t, got.Equal(dec("3131.25")))
}

func TestCanCover_IgualAlDisponibleEsValido(t *testing.T) {
	// La comparación es ≤: consumir exactamente el disponible se permite
	assert.True(t, ledger.CanCover(dec("200"), dec("200")))
}

func TestCanCover_ExcedenteSeRechaza(t *testing.T) {
	assert.False(t, ledger.CanCover(dec("200"), dec("200.01")))
}

func TestCanCover_DisponibleCeroRechazaTodoPesoPositivo(t *testing.T) {
	assert.False(t, ledger.CanCover(decimal.Zero, dec("0.01")))
}
