package stock

import (
	"context"

	"github.com/donaria/donaciones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén de datos,
// pasando repositorios atados a esa tx. Garantiza que las escrituras de un
// intake/outtake (lote, movimiento, catálogo) se hagan visibles todas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
