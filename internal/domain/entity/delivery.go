package entity

import "time"

// Delivery cabecera de una entrega a un beneficiario. El consumo de stock es
// FIFO por vencimiento: una línea de entrega por cada lote consumido, lo que
// da trazabilidad lote-a-beneficiario.
type Delivery struct {
	ID            string
	BeneficiaryID string
	Date          time.Time
	Notes         string
	CreatedAt     time.Time
	CreatedBy     string // UserID
}

// DeliveryLine una línea por (lote, cantidad consumida) del plan de salida.
type DeliveryLine struct {
	ID         string
	DeliveryID string
	ItemID     string
	LotID      string
	Quantity   int64 // cantidad tomada de ese lote
}
