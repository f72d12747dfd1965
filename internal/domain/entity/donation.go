package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation cabecera de una donación recibida. Cada línea genera un lote nuevo
// vía el asignador de stock; el ID de la donación queda como Reference en los
// movimientos IN correspondientes.
type Donation struct {
	ID             string
	DonorID        string
	Date           time.Time
	EstimatedValue decimal.Decimal // suma de las líneas, para el certificado del donante
	Notes          string
	CreatedAt      time.Time
	CreatedBy      string // UserID
}

// DonationLine línea de donación: un artículo, una cantidad y el lote creado.
type DonationLine struct {
	ID             string
	DonationID     string
	ItemID         string
	LotID          string // lote creado por el intake de esta línea
	Quantity       int64
	ExpiryDate     *time.Time
	EstimatedValue decimal.Decimal // Quantity * Item.UnitValue al momento de donar
}
