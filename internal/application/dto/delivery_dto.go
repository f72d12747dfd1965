package dto

import "time"

// DeliveryLineRequest línea solicitada de una entrega.
type DeliveryLineRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// CreateDeliveryRequest body para POST /api/deliveries.
type CreateDeliveryRequest struct {
	BeneficiaryID string                `json:"beneficiary_id"`
	Notes         string                `json:"notes,omitempty"`
	Lines         []DeliveryLineRequest `json:"lines"`
}

// DeliveryLineResponse una línea por lote consumido (trazabilidad
/// lote-a-beneficiario): la línea solicitada puede expandirse en varias.
type DeliveryLineResponse struct {
	ID       string `json:"id"`
	ItemID   string `json:"item_id"`
	LotID    string `json:"lot_id"`
	Quantity int64  `json:"quantity"`
}

// DeliveryResponse entrega con sus líneas por lote.
type DeliveryResponse struct {
	ID            string                 `json:"id"`
	BeneficiaryID string                 `json:"beneficiary_id"`
	Date          time.Time              `json:"date"`
	Notes         string                 `json:"notes,omitempty"`
	Lines         []DeliveryLineResponse `json:"lines"`
}
