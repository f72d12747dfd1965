package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo donable del catálogo (alimentos, aseo, etc.).
// StockCurrent es el agregado en mano; siempre igual a la suma de RemainingQty
// de sus lotes activos (lo mantiene el asignador de stock, no el repositorio).
type Item struct {
	ID           string
	SKU          string // código único del artículo
	Name         string
	Category     string
	Unit         string          // unidad de medida: kg, unidad, litro...
	UnitValue    decimal.Decimal // valor estimado por unidad (certificados de donación)
	StockCurrent int64           // cantidad agregada en mano (>= 0)
	MinStock     int64           // umbral de reposición (>= 0)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BelowMinStock indica si el artículo está en o por debajo de su umbral.
func (i *Item) BelowMinStock() bool {
	return i.StockCurrent <= i.MinStock
}
