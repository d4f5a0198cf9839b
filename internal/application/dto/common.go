package dto

import "github.com/shopspring/decimal"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StockShortageResponse cuerpo de error de capacidad: incluye las cifras para
// que el cliente pueda corregir el peso o registrar más stock.
type StockShortageResponse struct {
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	Available decimal.Decimal `json:"available"`
	Requested decimal.Decimal `json:"requested"`
}
