package ledger

import "github.com/shopspring/decimal"

// AvailableStock implementa el saldo disponible de un tipo de té (servicio de dominio).
// Disponible = sum(StockEntry.WeightKg) - sum(Lot.TotalNetWeight)
// Ambas sumas tratan filas ausentes como cero (semántica COALESCE); un tipo de
// té desconocido produce disponible 0, que rechaza cualquier lote con peso > 0.
func AvailableStock(produced, allocated decimal.Decimal) decimal.Decimal {
	return produced.Sub(allocated)
}

// TotalSalePrice calcula el valor total de una venta a partir del precio por kg
// y el peso neto total del lote.
func TotalSalePrice(soldPrice, totalNetWeight decimal.Decimal) decimal.Decimal {
	return soldPrice.Mul(totalNetWeight)
}

// CanCover indica si el disponible cubre el peso solicitado para un lote nuevo.
func CanCover(available, requested decimal.Decimal) bool {
	return requested.LessThanOrEqual(available)
}
