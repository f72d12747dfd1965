package delivery

import (
	"context"
	"time"

	appstock "github.com/donaria/donaciones-api/internal/application/stock"
	"github.com/donaria/donaciones-api/internal/domain/repository"
	"github.com/donaria/donaciones-api/internal/domain/stock"
)

// DeliveryTxRunner ejecuta una función dentro de una transacción que incluye
// los repos de stock y el de entregas (para CreateDelivery).
type DeliveryTxRunner interface {
	RunDelivery(ctx context.Context, fn func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
		deliveryRepo repository.DeliveryRepository,
	) error) error
}

// OuttakeUseCase interfaz para integrar entregas con el asignador de stock.
// RecordOuttakeInTx consume lotes FIFO usando los repositorios del caller
// (misma transacción). Si retorna error (ej: InsufficientStockError), el
// caller debe hacer rollback.
type OuttakeUseCase interface {
	RecordOuttakeInTx(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
		in appstock.OuttakeInput,
		now time.Time,
	) (*stock.OuttakePlan, error)
}
