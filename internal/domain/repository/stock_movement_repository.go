package repository

import (
	"time"

	"github.com/donaria/donaciones-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del libro de movimientos.
// Append-only: Create es la única escritura; no hay update ni delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByLot(lotID string) ([]*entity.StockMovement, error)
	ListByReference(reference string) ([]*entity.StockMovement, error)
}
