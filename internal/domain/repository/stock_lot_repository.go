package repository

import (
	"time"

	"github.com/donaria/donaciones-api/internal/domain/entity"
)

// StockLotRepository define el puerto de persistencia de lotes. Los lotes se
// crean en el intake y solo se decrementan en el outtake; nunca se borran.
type StockLotRepository interface {
	Create(lot *entity.StockLot) error
	GetByID(id string) (*entity.StockLot, error)
	// ListActiveByItem lotes con remaining_qty > 0, ordenados por vencimiento
	// ascendente con los sin vencimiento al final y empates por creación.
	ListActiveByItem(itemID string) ([]*entity.StockLot, error)
	// ListByItem incluye lotes agotados (historial).
	ListByItem(itemID string, limit, offset int) ([]*entity.StockLot, error)
	// DecrementRemaining resta amount de remaining_qty. Falla con ErrConflict
	// si el lote no tiene esa cantidad disponible (guarda de monotonicidad).
	DecrementRemaining(lotID string, amount int64) error
	// ListExpiringBefore lotes activos que vencen antes de la fecha dada.
	ListExpiringBefore(date time.Time) ([]*entity.StockLot, error)
}
