package dto

// ErrorResponse respuesta de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InsufficientStockResponse error de stock insuficiente con las cantidades en
// juego: el cliente puede mostrar cuánto hay y ofrecer una entrega parcial.
type InsufficientStockResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ItemID    string `json:"item_id"`
	Available int64  `json:"available"`
	Requested int64  `json:"requested"`
}
