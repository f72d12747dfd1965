package dto

import "time"

// IntakeRequest body para POST /api/stock/intake.
// ExpiryDate en formato YYYY-MM-DD; vacío = sin vencimiento.
type IntakeRequest struct {
	ItemID     string `json:"item_id"`
	Quantity   int64  `json:"quantity"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	DonorID    string `json:"donor_id,omitempty"`
	LotCode    string `json:"lot_code,omitempty"`
	Reference  string `json:"reference,omitempty"`
}

// OuttakeRequest body para POST /api/stock/outtake.
type OuttakeRequest struct {
	ItemID    string `json:"item_id"`
	Quantity  int64  `json:"quantity"`
	Reference string `json:"reference,omitempty"`
}

// LotAllocationDTO un par (lote, cantidad consumida) del plan de salida.
type LotAllocationDTO struct {
	LotID    string `json:"lot_id"`
	Quantity int64  `json:"quantity"`
}

// OuttakePlanResponse plan de consumo FIFO devuelto por el outtake.
type OuttakePlanResponse struct {
	ItemID      string             `json:"item_id"`
	Requested   int64              `json:"requested"`
	Allocations []LotAllocationDTO `json:"allocations"`
}

// StockLotDTO lote para respuestas de consulta.
type StockLotDTO struct {
	ID           string     `json:"id"`
	ItemID       string     `json:"item_id"`
	Code         string     `json:"code"`
	Quantity     int64      `json:"quantity"`
	RemainingQty int64      `json:"remaining_qty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	DonorID      string     `json:"donor_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// StockMovementDTO entrada del libro de movimientos.
type StockMovementDTO struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	LotID     string    `json:"lot_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
}

// ShortageItemDTO artículo en o por debajo de su umbral de reposición.
type ShortageItemDTO struct {
	ItemID       string `json:"item_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	StockCurrent int64  `json:"stock_current"`
	MinStock     int64  `json:"min_stock"`
	SuggestedQty int64  `json:"suggested_qty"` // 2*MinStock - StockCurrent
	Priority     int    `json:"priority"`      // 1 = más urgente
}

// ExpiringLotDTO lote activo próximo a vencer.
type ExpiringLotDTO struct {
	LotID        string    `json:"lot_id"`
	ItemID       string    `json:"item_id"`
	Code         string    `json:"code"`
	RemainingQty int64     `json:"remaining_qty"`
	ExpiryDate   time.Time `json:"expiry_date"`
	DaysLeft     int       `json:"days_left"`
}

// ShortageReportDTO reporte combinado de faltantes y vencimientos próximos.
type ShortageReportDTO struct {
	Items        []ShortageItemDTO `json:"items"`
	ExpiringLots []ExpiringLotDTO  `json:"expiring_lots"`
	GeneratedAt  time.Time         `json:"generated_at"`
}
