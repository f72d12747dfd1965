package repository

import "github.com/donaria/donaciones-api/internal/domain/entity"

// ItemRepository define el puerto del catálogo de artículos. AdjustStock y
// GetForUpdate se usan solo dentro de transacciones del asignador de stock.
type ItemRepository interface {
	Create(item *entity.Item) error
	Update(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE): serializa
	// las operaciones de stock concurrentes sobre el mismo artículo.
	GetForUpdate(id string) (*entity.Item, error)
	// AdjustStock suma delta (puede ser negativo) a stock_current.
	AdjustStock(id string, delta int64) error
	// ListBelowMinStock artículos en o por debajo de su umbral de reposición.
	ListBelowMinStock() ([]*entity.Item, error)
}
