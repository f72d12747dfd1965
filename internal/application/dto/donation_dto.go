package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DonationLineRequest línea de una donación entrante.
// ExpiryDate en formato YYYY-MM-DD; vacío = sin vencimiento.
type DonationLineRequest struct {
	ItemID     string `json:"item_id"`
	Quantity   int64  `json:"quantity"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	LotCode    string `json:"lot_code,omitempty"`
}

// CreateDonationRequest body para POST /api/donations.
type CreateDonationRequest struct {
	DonorID string                `json:"donor_id"`
	Notes   string                `json:"notes,omitempty"`
	Lines   []DonationLineRequest `json:"lines"`
}

// DonationLineResponse línea con el lote creado por su intake.
type DonationLineResponse struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	LotID          string          `json:"lot_id"`
	Quantity       int64           `json:"quantity"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
}

// DonationResponse donación con sus líneas.
type DonationResponse struct {
	ID             string                 `json:"id"`
	DonorID        string                 `json:"donor_id"`
	Date           time.Time              `json:"date"`
	EstimatedValue decimal.Decimal        `json:"estimated_value"`
	Notes          string                 `json:"notes,omitempty"`
	Lines          []DonationLineResponse `json:"lines"`
}
