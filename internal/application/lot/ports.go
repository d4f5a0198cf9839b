package lot

import (
	"context"

	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la verificación de capacidad y
// la inserción del lote sean una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockEntryRepository,
		lotRepo repository.LotRepository,
	) error) error
}
