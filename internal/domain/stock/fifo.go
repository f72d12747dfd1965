// Package stock contiene la lógica pura de asignación FIFO por vencimiento
// (servicio de dominio, sin dependencias de persistencia).
package stock

import (
	"sort"

	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
)

// LotAllocation cantidad consumida de un lote concreto.
type LotAllocation struct {
	LotID    string
	Quantity int64
}

// OuttakePlan resultado de planear una salida: los pares (lote, cantidad) en el
// orden en que se consumen. La suma de las asignaciones es igual a Requested.
type OuttakePlan struct {
	ItemID      string
	Requested   int64
	Allocations []LotAllocation
}

// SortLotsByExpiry ordena lotes para consumo FIFO por vencimiento: primero el
// que vence antes; los lotes sin vencimiento van al final. Orden estable, así
// los empates se resuelven por orden de creación (determinista y testeable).
func SortLotsByExpiry(lots []*entity.StockLot) {
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i].ExpiryDate, lots[j].ExpiryDate
		switch {
		case a == nil:
			return false // sin vencimiento: al final
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

// Available suma el RemainingQty de los lotes.
func Available(lots []*entity.StockLot) int64 {
	var total int64
	for _, l := range lots {
		total += l.RemainingQty
	}
	return total
}

// PlanOuttake recorre los lotes en orden FIFO por vencimiento y arma el plan de
// consumo para la cantidad solicitada. No muta los lotes: solo planea.
// Retorna InsufficientStockError si la suma disponible no alcanza.
func PlanOuttake(itemID string, lots []*entity.StockLot, requested int64) (*OuttakePlan, error) {
	if requested <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	sorted := make([]*entity.StockLot, 0, len(lots))
	for _, l := range lots {
		if l.RemainingQty > 0 {
			sorted = append(sorted, l)
		}
	}
	SortLotsByExpiry(sorted)

	available := Available(sorted)
	if available < requested {
		return nil, &domain.InsufficientStockError{
			ItemID:    itemID,
			Available: available,
			Requested: requested,
		}
	}

	plan := &OuttakePlan{ItemID: itemID, Requested: requested}
	remaining := requested
	for _, lot := range sorted {
		if remaining == 0 {
			break
		}
		take := lot.RemainingQty
		if take > remaining {
			take = remaining
		}
		plan.Allocations = append(plan.Allocations, LotAllocation{LotID: lot.ID, Quantity: take})
		remaining -= take
	}
	return plan, nil
}
