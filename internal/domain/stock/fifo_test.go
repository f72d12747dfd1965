package stock_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/stock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func lot(id string, remaining int64, expiry *time.Time, createdAt time.Time) *entity.StockLot {
	return &entity.StockLot{
		ID:           id,
		ItemID:       "arroz",
		Code:         "LOT-" + id,
		Quantity:     remaining,
		RemainingQty: remaining,
		ExpiryDate:   expiry,
		CreatedAt:    createdAt,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// PlanOuttake
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el lote que vence antes se consume primero aunque se haya creado
// después. 100 und venciendo en junio (L1, creado primero) y 50 venciendo en
// marzo (L2): pedir 60 debe agotar L2 y tomar 10 de L1.
func TestPlanOuttake_ConsumePrimeroElQueVenceAntes(t *testing.T) {
	base := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	lots := []*entity.StockLot{
		lot("L1", 100, date(2025, 6, 1), base),
		lot("L2", 50, date(2025, 3, 1), base.Add(time.Hour)),
	}

	plan, err := stock.PlanOuttake("arroz", lots, 60)
	require.NoError(t, err)

	require.Len(t, plan.Allocations, 2, "debe tocar dos lotes")
	assert.Equal(t, stock.LotAllocation{LotID: "L2", Quantity: 50}, plan.Allocations[0],
		"primero se agota el lote que vence en marzo")
	assert.Equal(t, stock.LotAllocation{LotID: "L1", Quantity: 10}, plan.Allocations[1],
		"el resto sale del lote de junio")
	assert.Equal(t, int64(60), plan.Requested)
}

// Caso 2: los lotes sin vencimiento se consumen de último.
func TestPlanOuttake_SinVencimientoVaAlFinal(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	lots := []*entity.StockLot{
		lot("SIN", 5, nil, base),
		lot("ENE", 5, date(2025, 1, 1), base.Add(time.Hour)),
		lot("FEB", 5, date(2025, 2, 1), base.Add(2*time.Hour)),
	}

	plan, err := stock.PlanOuttake("arroz", lots, 7)
	require.NoError(t, err)

	require.Len(t, plan.Allocations, 2)
	assert.Equal(t, "ENE", plan.Allocations[0].LotID)
	assert.Equal(t, int64(5), plan.Allocations[0].Quantity)
	assert.Equal(t, "FEB", plan.Allocations[1].LotID)
	assert.Equal(t, int64(2), plan.Allocations[1].Quantity,
		"el lote sin vencimiento no se toca mientras haya fechados")
}

// Caso 3: agotamiento exacto — pedir justo el total disponible vacía todos los lotes.
func TestPlanOuttake_AgotamientoExacto(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	lots := []*entity.StockLot{
		lot("A", 3, date(2025, 2, 1), base),
		lot("B", 7, date(2025, 3, 1), base),
	}

	plan, err := stock.PlanOuttake("arroz", lots, 10)
	require.NoError(t, err)

	var total int64
	for _, a := range plan.Allocations {
		total += a.Quantity
	}
	assert.Equal(t, int64(10), total, "la suma del plan cubre exactamente lo pedido")
}

// Caso 4: stock insuficiente — el error lleva disponible y solicitado.
func TestPlanOuttake_StockInsuficiente(t *testing.T) {
	lots := []*entity.StockLot{
		lot("A", 4, date(2025, 2, 1), time.Now()),
	}

	plan, err := stock.PlanOuttake("arroz", lots, 9)
	assert.Nil(t, plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(4), insufficient.Available)
	assert.Equal(t, int64(9), insufficient.Requested)
	assert.Equal(t, "arroz", insufficient.ItemID)
}

// Caso 5: cantidades no positivas se rechazan.
func TestPlanOuttake_CantidadInvalida(t *testing.T) {
	lots := []*entity.StockLot{lot("A", 10, nil, time.Now())}

	for _, qty := range []int64{0, -3} {
		plan, err := stock.PlanOuttake("arroz", lots, qty)
		assert.Nil(t, plan)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}

// Caso 6: los lotes agotados no participan del plan.
func TestPlanOuttake_IgnoraLotesAgotados(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	agotado := lot("VACIO", 10, date(2025, 1, 15), base)
	agotado.RemainingQty = 0
	lots := []*entity.StockLot{
		agotado,
		lot("B", 10, date(2025, 2, 1), base),
	}

	plan, err := stock.PlanOuttake("arroz", lots, 5)
	require.NoError(t, err)
	require.Len(t, plan.Allocations, 1)
	assert.Equal(t, "B", plan.Allocations[0].LotID)
}

// ──────────────────────────────────────────────────────────────────────────────
// SortLotsByExpiry / Available
// ──────────────────────────────────────────────────────────────────────────────

// Empates de vencimiento conservan el orden de llegada (sort estable).
func TestSortLotsByExpiry_EmpatesConservanOrden(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	lots := []*entity.StockLot{
		lot("PRIMERO", 5, date(2025, 5, 1), base),
		lot("SEGUNDO", 5, date(2025, 5, 1), base.Add(time.Hour)),
		lot("ANTES", 5, date(2025, 2, 1), base.Add(2*time.Hour)),
	}

	stock.SortLotsByExpiry(lots)

	assert.Equal(t, "ANTES", lots[0].ID)
	assert.Equal(t, "PRIMERO", lots[1].ID, "mismo vencimiento: gana el creado primero")
	assert.Equal(t, "SEGUNDO", lots[2].ID)
}

func TestAvailable_SumaRemanentes(t *testing.T) {
	lots := []*entity.StockLot{
		lot("A", 3, nil, time.Now()),
		lot("B", 4, nil, time.Now()),
	}
	assert.Equal(t, int64(7), stock.Available(lots))
	assert.Equal(t, int64(0), stock.Available(nil))
}
