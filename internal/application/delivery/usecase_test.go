package delivery_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaria/donaciones-api/internal/application/delivery"
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
	store     *memory.Store
	allocator *appstock.Allocator
	uc        *delivery.CreateDeliveryUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	txRunner := memory.NewTxRunner(store)
	itemRepo := memory.NewItemRepository(store)
	allocator := appstock.NewAllocator(txRunner, itemRepo)
	uc := delivery.NewCreateDeliveryUseCase(
		txRunner,
		allocator,
		memory.NewBeneficiaryRepository(store),
		itemRepo,
		memory.NewDeliveryRepository(store),
	)
	return &env{store: store, allocator: allocator, uc: uc}
}

func (e *env) seedBeneficiary(t *testing.T, id string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, memory.NewBeneficiaryRepository(e.store).Create(&entity.Beneficiary{
		ID: id, Name: "Familia " + id, DocType: "CC", DocNumber: id, FamilySize: 4,
		CreatedAt: now, UpdatedAt: now,
	}))
}

func (e *env) seedItemWithLots(t *testing.T, itemID string, lots ...appstock.IntakeInput) []string {
	t.Helper()
	now := time.Now()
	require.NoError(t, memory.NewItemRepository(e.store).Create(&entity.Item{
		ID: itemID, SKU: itemID, Name: itemID, Unit: "unidad",
		CreatedAt: now, UpdatedAt: now,
	}))
	ids := make([]string, 0, len(lots))
	for _, in := range lots {
		in.ItemID = itemID
		lotID, err := e.allocator.RecordIntake(context.Background(), in)
		require.NoError(t, err)
		ids = append(ids, lotID)
	}
	return ids
}

func expiry(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateDelivery
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: una línea solicitada que cruza dos lotes se expande en dos líneas de
// entrega, una por lote consumido (trazabilidad lote-a-beneficiario).
func TestCreateDelivery_UnaLineaPorLoteConsumido(t *testing.T) {
	e := newEnv(t)
	e.seedBeneficiary(t, "1020304050")
	lotIDs := e.seedItemWithLots(t, "arroz",
		appstock.IntakeInput{Quantity: 100, ExpiryDate: expiry(2025, 6, 1)},
		appstock.IntakeInput{Quantity: 50, ExpiryDate: expiry(2025, 3, 1)},
	)
	junio, marzo := lotIDs[0], lotIDs[1]

	out, err := e.uc.CreateDelivery(context.Background(), "user-1", dto.CreateDeliveryRequest{
		BeneficiaryID: "1020304050",
		Lines:         []dto.DeliveryLineRequest{{ItemID: "arroz", Quantity: 60}},
	})
	require.NoError(t, err)

	require.Len(t, out.Lines, 2, "60 und salen de dos lotes")
	assert.Equal(t, marzo, out.Lines[0].LotID, "primero el lote que vence antes")
	assert.Equal(t, int64(50), out.Lines[0].Quantity)
	assert.Equal(t, junio, out.Lines[1].LotID)
	assert.Equal(t, int64(10), out.Lines[1].Quantity)

	item, err := memory.NewItemRepository(e.store).GetByID("arroz")
	require.NoError(t, err)
	assert.Equal(t, int64(90), item.StockCurrent)

	// La entrega quedó persistida con sus líneas.
	fetched, err := e.uc.GetDelivery(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, "1020304050", fetched.BeneficiaryID)
	assert.Len(t, fetched.Lines, 2)
}

// Caso 2: si un artículo de la entrega no alcanza, ninguna línea se aplica.
func TestCreateDelivery_InsuficienteRevierteTodasLasLineas(t *testing.T) {
	e := newEnv(t)
	e.seedBeneficiary(t, "1020304050")
	e.seedItemWithLots(t, "arroz", appstock.IntakeInput{Quantity: 40})
	e.seedItemWithLots(t, "aceite", appstock.IntakeInput{Quantity: 3})

	_, err := e.uc.CreateDelivery(context.Background(), "user-1", dto.CreateDeliveryRequest{
		BeneficiaryID: "1020304050",
		Lines: []dto.DeliveryLineRequest{
			{ItemID: "arroz", Quantity: 20}, // alcanzaría
			{ItemID: "aceite", Quantity: 5}, // no alcanza
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "aceite", insufficient.ItemID)
	assert.Equal(t, int64(3), insufficient.Available)
	assert.Equal(t, int64(5), insufficient.Requested)

	itemRepo := memory.NewItemRepository(e.store)
	arroz, _ := itemRepo.GetByID("arroz")
	assert.Equal(t, int64(40), arroz.StockCurrent, "la línea de arroz también se revierte")

	deliveries, err := memory.NewDeliveryRepository(e.store).List(10, 0)
	require.NoError(t, err)
	assert.Empty(t, deliveries)
}

// Caso 3: validaciones de entrada.
func TestCreateDelivery_Validaciones(t *testing.T) {
	e := newEnv(t)
	e.seedBeneficiary(t, "1020304050")
	e.seedItemWithLots(t, "arroz", appstock.IntakeInput{Quantity: 10})
	ctx := context.Background()

	_, err := e.uc.CreateDelivery(ctx, "u", dto.CreateDeliveryRequest{BeneficiaryID: "1020304050"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = e.uc.CreateDelivery(ctx, "u", dto.CreateDeliveryRequest{
		BeneficiaryID: "desconocido",
		Lines:         []dto.DeliveryLineRequest{{ItemID: "arroz", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "beneficiario inexistente")

	_, err = e.uc.CreateDelivery(ctx, "u", dto.CreateDeliveryRequest{
		BeneficiaryID: "1020304050",
		Lines:         []dto.DeliveryLineRequest{{ItemID: "arroz", Quantity: -2}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}
