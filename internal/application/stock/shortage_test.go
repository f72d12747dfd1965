package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/donaria/donaciones-api/internal/application/stock"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/infrastructure/memory"
)

func seedItemWithStock(t *testing.T, store *memory.Store, id string, minStock int64) {
	t.Helper()
	now := time.Now()
	require.NoError(t, memory.NewItemRepository(store).Create(&entity.Item{
		ID:        id,
		SKU:       id,
		Name:      id,
		Unit:      "unidad",
		MinStock:  minStock,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

// El reporte lista solo artículos bajo umbral, ordenados por déficit, con la
// cantidad sugerida para llegar a 2x el mínimo.
func TestShortageReport_FaltantesPriorizadosPorDeficit(t *testing.T) {
	store := memory.NewStore()
	allocator := appstock.NewAllocator(memory.NewTxRunner(store), memory.NewItemRepository(store))
	ctx := context.Background()

	seedItemWithStock(t, store, "arroz", 50)   // quedará en 10: déficit 40
	seedItemWithStock(t, store, "aceite", 20)  // quedará en 15: déficit 5
	seedItemWithStock(t, store, "panela", 10)  // quedará en 30: sin faltante

	for item, qty := range map[string]int64{"arroz": 10, "aceite": 15, "panela": 30} {
		_, err := allocator.RecordIntake(ctx, appstock.IntakeInput{ItemID: item, Quantity: qty})
		require.NoError(t, err)
	}

	uc := appstock.NewShortageUseCase(memory.NewItemRepository(store), memory.NewStockLotRepository(store))
	report, err := uc.GenerateShortageReport(ctx, 30)
	require.NoError(t, err)

	require.Len(t, report.Items, 2, "panela está por encima de su mínimo")
	assert.Equal(t, "arroz", report.Items[0].ItemID, "el mayor déficit va primero")
	assert.Equal(t, 1, report.Items[0].Priority)
	assert.Equal(t, int64(90), report.Items[0].SuggestedQty, "2*50 - 10")
	assert.Equal(t, "aceite", report.Items[1].ItemID)
	assert.Equal(t, int64(25), report.Items[1].SuggestedQty, "2*20 - 15")
}

// Los lotes que vencen dentro de la ventana aparecen en el reporte; los que
// vencen después o no tienen fecha, no.
func TestShortageReport_LotesProximosAVencer(t *testing.T) {
	store := memory.NewStore()
	allocator := appstock.NewAllocator(memory.NewTxRunner(store), memory.NewItemRepository(store))
	ctx := context.Background()
	seedItemWithStock(t, store, "leche", 0)

	pronto := time.Now().AddDate(0, 0, 10)
	lejano := time.Now().AddDate(0, 0, 90)

	cercano, err := allocator.RecordIntake(ctx, appstock.IntakeInput{
		ItemID: "leche", Quantity: 5, ExpiryDate: &pronto,
	})
	require.NoError(t, err)
	_, err = allocator.RecordIntake(ctx, appstock.IntakeInput{
		ItemID: "leche", Quantity: 5, ExpiryDate: &lejano,
	})
	require.NoError(t, err)
	_, err = allocator.RecordIntake(ctx, appstock.IntakeInput{ItemID: "leche", Quantity: 5})
	require.NoError(t, err)

	uc := appstock.NewShortageUseCase(memory.NewItemRepository(store), memory.NewStockLotRepository(store))
	report, err := uc.GenerateShortageReport(ctx, 30)
	require.NoError(t, err)

	require.Len(t, report.ExpiringLots, 1)
	assert.Equal(t, cercano, report.ExpiringLots[0].LotID)
	assert.InDelta(t, 9, report.ExpiringLots[0].DaysLeft, 1)
}
