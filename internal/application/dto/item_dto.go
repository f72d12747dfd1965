package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	Unit      string          `json:"unit"`
	UnitValue decimal.Decimal `json:"unit_value"`
	MinStock  int64           `json:"min_stock"`
}

// UpdateItemRequest body para PUT /api/items/:id. No permite tocar el stock:
// eso solo lo hace el asignador vía intake/outtake.
type UpdateItemRequest struct {
	Name      string          `json:"name,omitempty"`
	Category  string          `json:"category,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	UnitValue decimal.Decimal `json:"unit_value,omitempty"`
	MinStock  *int64          `json:"min_stock,omitempty"`
}

// ItemResponse artículo del catálogo.
type ItemResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit"`
	UnitValue    decimal.Decimal `json:"unit_value"`
	StockCurrent int64           `json:"stock_current"`
	MinStock     int64           `json:"min_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
