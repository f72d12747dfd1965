package donation_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaria/donaciones-api/internal/application/donation"
	"github.com/donaria/donaciones-api/internal/application/dto"
	appstock "github.com/donaria/donaciones-api/internal/application/stock"
	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type env struct {
	store *memory.Store
	uc    *donation.CreateDonationUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	txRunner := memory.NewTxRunner(store)
	itemRepo := memory.NewItemRepository(store)
	allocator := appstock.NewAllocator(txRunner, itemRepo)
	uc := donation.NewCreateDonationUseCase(
		txRunner,
		allocator,
		memory.NewDonorRepository(store),
		itemRepo,
		memory.NewDonationRepository(store),
	)
	return &env{store: store, uc: uc}
}

func (e *env) seedDonor(t *testing.T, id string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, memory.NewDonorRepository(e.store).Create(&entity.Donor{
		ID: id, Name: "Donante " + id, DocType: "NIT", DocNumber: id,
		CreatedAt: now, UpdatedAt: now,
	}))
}

func (e *env) seedItem(t *testing.T, id string, unitValue int64) {
	t.Helper()
	now := time.Now()
	require.NoError(t, memory.NewItemRepository(e.store).Create(&entity.Item{
		ID: id, SKU: id, Name: id, Unit: "unidad",
		UnitValue: decimal.NewFromInt(unitValue),
		CreatedAt: now, UpdatedAt: now,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateDonation
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: una donación de dos líneas crea un lote por línea, los movimientos
// IN llevan la donación como referencia y el valor total es la suma de líneas.
func TestCreateDonation_UnLotePorLinea(t *testing.T) {
	e := newEnv(t)
	e.seedDonor(t, "900123456")
	e.seedItem(t, "arroz", 3500)
	e.seedItem(t, "aceite", 12000)

	out, err := e.uc.CreateDonation(context.Background(), "user-1", dto.CreateDonationRequest{
		DonorID: "900123456",
		Lines: []dto.DonationLineRequest{
			{ItemID: "arroz", Quantity: 10, ExpiryDate: "2025-06-01"},
			{ItemID: "aceite", Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Lines, 2)

	lotRepo := memory.NewStockLotRepository(e.store)
	for _, line := range out.Lines {
		lot, err := lotRepo.GetByID(line.LotID)
		require.NoError(t, err)
		require.NotNil(t, lot, "cada línea debe tener su lote creado")
		assert.Equal(t, line.Quantity, lot.Quantity)
		assert.Equal(t, "900123456", lot.DonorID, "el lote recuerda su donante")
	}

	// 10 * 3500 + 2 * 12000
	assert.True(t, decimal.NewFromInt(59000).Equal(out.EstimatedValue),
		"valor total: %s", out.EstimatedValue)

	movements, err := memory.NewStockMovementRepository(e.store).ListByReference(out.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	for _, m := range movements {
		assert.Equal(t, entity.MovementTypeIN, m.Type)
		assert.Equal(t, "user-1", m.CreatedBy)
	}

	// Consulta posterior con las mismas líneas.
	fetched, err := e.uc.GetDonation(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Lines, 2)
}

// Caso 2: si una línea referencia un artículo inexistente, no queda nada:
// ni donación, ni lotes, ni movimientos de las líneas anteriores.
func TestCreateDonation_LineaInvalidaNoDejaRastro(t *testing.T) {
	e := newEnv(t)
	e.seedDonor(t, "900123456")
	e.seedItem(t, "arroz", 3500)

	_, err := e.uc.CreateDonation(context.Background(), "user-1", dto.CreateDonationRequest{
		DonorID: "900123456",
		Lines: []dto.DonationLineRequest{
			{ItemID: "arroz", Quantity: 10},
			{ItemID: "fantasma", Quantity: 5},
		},
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	item, err := memory.NewItemRepository(e.store).GetByID("arroz")
	require.NoError(t, err)
	assert.Equal(t, int64(0), item.StockCurrent, "la línea válida tampoco se aplica")

	donations, err := memory.NewDonationRepository(e.store).List(10, 0)
	require.NoError(t, err)
	assert.Empty(t, donations)
}

// Caso 3: validaciones de entrada.
func TestCreateDonation_Validaciones(t *testing.T) {
	e := newEnv(t)
	e.seedDonor(t, "900123456")
	e.seedItem(t, "arroz", 3500)
	ctx := context.Background()

	_, err := e.uc.CreateDonation(ctx, "u", dto.CreateDonationRequest{DonorID: "900123456"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = e.uc.CreateDonation(ctx, "u", dto.CreateDonationRequest{
		DonorID: "desconocido",
		Lines:   []dto.DonationLineRequest{{ItemID: "arroz", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "donante inexistente")

	_, err = e.uc.CreateDonation(ctx, "u", dto.CreateDonationRequest{
		DonorID: "900123456",
		Lines:   []dto.DonationLineRequest{{ItemID: "arroz", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = e.uc.CreateDonation(ctx, "u", dto.CreateDonationRequest{
		DonorID: "900123456",
		Lines:   []dto.DonationLineRequest{{ItemID: "arroz", Quantity: 1, ExpiryDate: "01/06/2025"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "formato de fecha inválido")
}
