package entity

import "time"

// StockLot representa un lote fechado de inventario de un artículo.
// Quantity queda fija al crearlo; RemainingQty solo decrece (consumo FIFO por
// vencimiento). Un lote agotado (RemainingQty == 0) nunca se borra: es historia.
type StockLot struct {
	ID           string
	ItemID       string
	Code         string     // etiqueta del lote (ej. "DON-2025-031")
	Quantity     int64      // cantidad original recibida
	RemainingQty int64      // 0 <= RemainingQty <= Quantity, monótono no creciente
	ExpiryDate   *time.Time // nil = sin vencimiento, se consume de último
	DonorID      string     // donante de origen (opcional)
	CreatedAt    time.Time
}

// Exhausted indica si el lote ya no tiene existencias.
func (l *StockLot) Exhausted() bool {
	return l.RemainingQty <= 0
}
