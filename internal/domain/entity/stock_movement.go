package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada (donación)
	MovementTypeOUT = "OUT" // salida (entrega a beneficiario)
)

// StockMovement es un hecho inmutable del libro de movimientos: qué lote de qué
// artículo cambió, en qué dirección y cuánto. Nunca se actualiza ni se borra;
// reproducir la secuencia de un artículo en orden reconstruye su stock agregado.
type StockMovement struct {
	ID        string
	ItemID    string
	LotID     string
	Type      string // IN | OUT
	Quantity  int64  // siempre positivo; el signo lo da Type
	Reference string // ID de la donación o entrega que lo originó
	CreatedAt time.Time
	CreatedBy string // UserID
}
