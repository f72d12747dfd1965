package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrItemNotFound       = errors.New("artículo no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrCommitConflict     = errors.New("conflicto de concurrencia al confirmar la transacción")
	ErrStoreUnavailable   = errors.New("almacén de datos no disponible")
)

// InsufficientStockError lleva las cantidades involucradas para que el caller
// pueda mostrar "solicitado X, disponible Y" al operador.
// Compatible con errors.Is(err, ErrInsufficientStock).
type InsufficientStockError struct {
	ItemID    string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d",
		e.ItemID, e.Available, e.Requested)
}

// Is permite que errors.Is(err, ErrInsufficientStock) retorne true.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
