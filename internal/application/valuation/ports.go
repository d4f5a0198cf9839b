package valuation

import (
	"context"

	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La confirmación (promover una valoración y
// degradar a sus hermanas) debe ser una sola unidad atómica.
type TxRunner interface {
	RunValuation(ctx context.Context, fn func(
		valRepo repository.ValuationRepository,
		lotRepo repository.LotRepository,
	) error) error
}
