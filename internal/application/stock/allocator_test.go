package stock_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/donaria/donaciones-api/internal/application/stock"
	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
	"github.com/donaria/donaciones-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newEnv(t *testing.T) (*memory.Store, *appstock.Allocator) {
	t.Helper()
	store := memory.NewStore()
	allocator := appstock.NewAllocator(memory.NewTxRunner(store), memory.NewItemRepository(store))
	return store, allocator
}

func seedItem(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	now := time.Now()
	err := memory.NewItemRepository(store).Create(&entity.Item{
		ID:        id,
		SKU:       id,
		Name:      id,
		Unit:      "unidad",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func stockOf(t *testing.T, store *memory.Store, itemID string) int64 {
	t.Helper()
	item, err := memory.NewItemRepository(store).GetByID(itemID)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item.StockCurrent
}

func movementsOf(t *testing.T, store *memory.Store, itemID string) []*entity.StockMovement {
	t.Helper()
	movements, err := memory.NewStockMovementRepository(store).ListByItem(itemID, nil, nil, 1000, 0)
	require.NoError(t, err)
	return movements
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordIntake
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: un intake crea el lote, registra el movimiento IN y suma al agregado.
func TestRecordIntake_CreaLoteMovimientoYAgregado(t *testing.T) {
	store, allocator := newEnv(t)
	seedItem(t, store, "arroz")

	lotID, err := allocator.RecordIntake(context.Background(), appstock.IntakeInput{
		ItemID:     "arroz",
		Quantity:   25,
		ExpiryDate: date(2025, 6, 1),
		DonorID:    "donante-1",
		Reference:  "don-001",
		UserID:     "user-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, lotID)

	lot, err := memory.NewStockLotRepository(store).GetByID(lotID)
	require.NoError(t, err)
	require.NotNil(t, lot)
	assert.Equal(t, int64(25), lot.Quantity)
	assert.Equal(t, int64(25), lot.RemainingQty, "el remanente arranca igual a la cantidad")
	assert.Equal(t, "donante-1", lot.DonorID)

	movements := movementsOf(t, store, "arroz")
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementTypeIN, movements[0].Type)
	assert.Equal(t, int64(25), movements[0].Quantity)
	assert.Equal(t, lotID, movements[0].LotID)
	assert.Equal(t, "don-001", movements[0].Reference)

	assert.Equal(t, int64(25), stockOf(t, store, "arroz"))
}

// Caso 2: sin código de lote explícito se genera uno con la fecha del día.
func TestRecordIntake_GeneraCodigoDeLote(t *testing.T) {
	store, allocator := newEnv(t)
	seedItem(t, store, "lentejas")

	lotID, err := allocator.RecordIntake(context.Background(), appstock.IntakeInput{
		ItemID:   "lentejas",
		Quantity: 10,
	})
	require.NoError(t, err)

	lot, err := memory.NewStockLotRepository(store).GetByID(lotID)
	require.NoError(t, err)
	assert.Contains(t, lot.Code, "LOT-")
}

// Caso 3: artículo inexistente.
func TestRecordIntake_ArticuloInexistente(t *testing.T) {
	_, allocator := newEnv(t)

	_, err := allocator.RecordIntake(context.Background(), appstock.IntakeInput{
		ItemID:   "no-existe",
		Quantity: 10,
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

// Caso 4: cantidades no positivas se rechazan sin tocar el estado.
func TestRecordIntake_CantidadInvalida(t *testing.T) {
	store, allocator := newEnv(t)
	seedItem(t, store, "arroz")

	for _, qty := range []int64{0, -5} {
		_, err := allocator.RecordIntake(context.Background(), appstock.IntakeInput{
			ItemID:   "arroz",
			Quantity: qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
	assert.Empty(t, movementsOf(t, store, "arroz"), "nada debe registrarse en el libro")
	assert.Equal(t, int64(0), stockOf(t, store, "arroz"))
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordOuttake
// ──────────────────────────────────────────────────────────────────────────────

// Caso 5: consumo FIFO por vencimiento. 100 und venciendo en junio llegaron
// primero; 50 venciendo en marzo después. Una salida de 60 agota el lote de
// marzo y toma 10 del de junio.
func TestRecordOuttake_ConsumoFIFOPorVencimiento(t *testing.T) {
	store, allocator := newEnv(t)
	seedItem(t, store, "arroz")
	ctx := context.Background()

	junio, err := allocator.RecordIntake(ctx, appstock.IntakeInput{
		ItemID: "arroz", Quantity: 100, ExpiryDate: date(2025, 6, 1),
	})
	require.NoError(t, err)
	marzo, err := allocator.RecordIntake(ctx, appstock.IntakeInput{
		ItemID: "arroz", Quantity: 50, ExpiryDate: date(2025, 3, 1),
	})
	require.NoError(t, err)

	plan, err := allocator.RecordOuttake(ctx, appstock.OuttakeInput{
		ItemID: "arroz", Quantity: 60, Reference: "ent-001",
	})
	require.NoError(t, err)

	require.Len(t, plan.Allocations, 2)
	assert.Equal(t, marzo, plan.Allocations[0].LotID, "primero el lote que vence antes")
	assert.Equal(t, int64(50), plan.Allocations[0].Quantity)
	assert.Equal(t, junio, plan.Allocations[1].LotID)
	assert.Equal(t, int64(10), plan.Allocations[1].Quantity)

	lotRepo := memory.NewStockLotRepository(store)
	lotMarzo, _ := lotRepo.GetByID(marzo)
	lotJunio, _ := lotRepo.GetByID(junio)
	assert.Equal(t, int64(0), lotMarzo.RemainingQty)
	assert.Equal(t, int64(90), lotJunio.RemainingQty)
	assert.Equal(t, int64(90), stockOf(t, store, "arroz"))

	// Un movimiento OUT por lote tocado, con la entrega como referencia.
	outs, err := memory.NewStockMovementRepository(store).ListByReference("ent-001")
	require.NoError(t, err)
	require.Len(t, outs, 2)
	for _, m := range outs {
		assert.Equal(t, entity.MovementTypeOUT, m.Type)
	}
}

// Caso 6: agotamiento exacto. El lote queda en cero pero no desaparece:
// sale del listado activo y permanece en el historial.
func TestRecordOuttake_AgotamientoExactoConservaElLote(t *testing.T) {
	store, allocator := newEnv(t)
	seedItem(t, store, "aceite")
	ctx := context.Background()

	lotID, err := allocator.RecordIntake(ctx, appstock.IntakeInput{
		ItemID: "aceite", Quantity: 12, ExpiryDate: date(2025, 4, 1),
	})
	require.NoError(t, err)

	_, err = allocator.RecordOuttake(ctx, appstock.OuttakeInput{ItemID: "aceite", Quantity: 12})
	require.NoError(t, err)

	lotRepo := memory.NewStockLotRepository(store)
	active, err := lotRepo.ListActiveByItem("aceite")
	require.NoError(t, err)
	assert.Empty(t, active, "el lote agotado no participa de futuras salidas")

	all, err := lotRepo.ListByItem("aceite", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 1, "el lote agotado sigue en el historial")
	assert.Equal(t, lotID, all[0].ID)
	assert.True(t, all[0].Exhausted())
	assert.Equal(t, int64(0), stockOf(t, store, "aceite"))
}

// Caso 7: sobregiro rechazado — el estado queda intacto y el error informa
// disponible y solicitado.
func TestRecordOuttake_InsuficienteNoMutaNada(t *testing.T) {
	store, allocator := newEnv(t)
	seedItem(t, store, "arroz")
	ctx := context.Background()

	_, err := allocator.RecordIntake(ctx, appstock.IntakeInput{
		ItemID: "arroz", Quantity: 8, ExpiryDate: date(2025, 5, 1),
	})
	require.NoError(t, err)
	movementsBefore := len(movementsOf(t, store, "arroz"))

	plan, err := allocator.RecordOuttake(ctx, appstock.OuttakeInput{ItemID: "arroz", Quantity: 20})
	assert.Nil(t, plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(8), insufficient.Available)
	assert.Equal(t, int64(20), insufficient.Requested)

	assert.Equal(t, int64(8), stockOf(t, store, "arroz"), "el agregado no cambia")
	assert.Len(t, movementsOf(t, store, "arroz"), movementsBefore, "el libro no cambia")
	active, _ := memory.NewStockLotRepository(store).ListActiveByItem("arroz")
	require.Len(t, active, 1)
	assert.Equal(t, int64(8), active[0].RemainingQty, "el lote no cambia")
}

// Caso 8: conservación. Tras una secuencia de entradas y salidas, el agregado
// es igual a la suma de remanentes y a IN acumulado menos OUT acumulado.
func TestConservacion_TrasSecuenciaDeOperaciones(t *testing.T) {
	store, allocator := newEnv(t)
	seedItem(t, store, "panela")
	ctx := context.Background()

	intakes := []int64{30, 20, 50}
	for i, qty := range intakes {
		_, err := allocator.RecordIntake(ctx, appstock.IntakeInput{
			ItemID: "panela", Quantity: qty, ExpiryDate: date(2025, time.Month(i+2), 1),
		})
		require.NoError(t, err)
	}
	for _, qty := range []int64{15, 40} {
		_, err := allocator.RecordOuttake(ctx, appstock.OuttakeInput{ItemID: "panela", Quantity: qty})
		require.NoError(t, err)
	}

	active, err := memory.NewStockLotRepository(store).ListActiveByItem("panela")
	require.NoError(t, err)
	var remaining int64
	for _, l := range active {
		remaining += l.RemainingQty
	}

	var in, out int64
	for _, m := range movementsOf(t, store, "panela") {
		switch m.Type {
		case entity.MovementTypeIN:
			in += m.Quantity
		case entity.MovementTypeOUT:
			out += m.Quantity
		}
	}

	current := stockOf(t, store, "panela")
	assert.Equal(t, int64(45), current)
	assert.Equal(t, remaining, current, "agregado == suma de remanentes")
	assert.Equal(t, in-out, current, "agregado == IN acumulado - OUT acumulado")
}

// Caso 9: lecturas repetidas del libro devuelven lo mismo (consulta sin efectos).
func TestMovimientos_LecturaRepetible(t *testing.T) {
	store, allocator := newEnv(t)
	seedItem(t, store, "frijol")
	ctx := context.Background()

	_, err := allocator.RecordIntake(ctx, appstock.IntakeInput{ItemID: "frijol", Quantity: 10})
	require.NoError(t, err)
	_, err = allocator.RecordOuttake(ctx, appstock.OuttakeInput{ItemID: "frijol", Quantity: 4})
	require.NoError(t, err)

	first := movementsOf(t, store, "frijol")
	second := movementsOf(t, store, "frijol")
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, *first[i], *second[i])
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad y concurrencia
// ──────────────────────────────────────────────────────────────────────────────

var errDiscoLleno = errors.New("disco lleno")

// failingMovementRepo falla el Create número failOnCall dentro de la tx.
type failingMovementRepo struct {
	repository.StockMovementRepository
	failOnCall int
	calls      int
}

func (f *failingMovementRepo) Create(m *entity.StockMovement) error {
	f.calls++
	if f.calls >= f.failOnCall {
		return errDiscoLleno
	}
	return f.StockMovementRepository.Create(m)
}

// failingTxRunner envuelve el runner en memoria sustituyendo el repo de
// movimientos por uno que falla: el runner interno debe revertir el snapshot.
type failingTxRunner struct {
	inner appstock.TxRunner
	fail  *failingMovementRepo
}

func (r *failingTxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	itemRepo repository.ItemRepository,
) error) error {
	return r.inner.Run(ctx, func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		r.fail.StockMovementRepository = movRepo
		return fn(lotRepo, r.fail, itemRepo)
	})
}

// Caso 10: si el registro en el libro falla a mitad de una salida multi-lote,
// ningún almacén queda tocado: ni lotes, ni libro, ni agregado.
func TestAtomicidad_FalloEnElLibroRevierteTodo(t *testing.T) {
	store, seeder := newEnv(t)
	seedItem(t, store, "arroz")
	ctx := context.Background()

	l1, err := seeder.RecordIntake(ctx, appstock.IntakeInput{
		ItemID: "arroz", Quantity: 50, ExpiryDate: date(2025, 3, 1),
	})
	require.NoError(t, err)
	_, err = seeder.RecordIntake(ctx, appstock.IntakeInput{
		ItemID: "arroz", Quantity: 100, ExpiryDate: date(2025, 6, 1),
	})
	require.NoError(t, err)
	movementsBefore := len(movementsOf(t, store, "arroz"))

	// Falla el segundo movimiento OUT: el primer lote ya se decrementó dentro
	// de la tx, así que el rollback debe restaurarlo.
	runner := &failingTxRunner{
		inner: memory.NewTxRunner(store),
		fail:  &failingMovementRepo{failOnCall: 2},
	}
	broken := appstock.NewAllocator(runner, memory.NewItemRepository(store))

	_, err = broken.RecordOuttake(ctx, appstock.OuttakeInput{ItemID: "arroz", Quantity: 60})
	require.ErrorIs(t, err, errDiscoLleno)

	assert.Equal(t, int64(150), stockOf(t, store, "arroz"), "el agregado vuelve a su valor")
	assert.Len(t, movementsOf(t, store, "arroz"), movementsBefore, "el libro no registra nada de la salida fallida")
	lot1, err := memory.NewStockLotRepository(store).GetByID(l1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), lot1.RemainingQty, "el decremento parcial se revierte")
}

// Caso 11: dos salidas concurrentes sobre el mismo artículo nunca sobregiran.
// Con 10 disponibles y dos pedidos de 6, exactamente uno debe fallar.
func TestConcurrencia_SalidasSimultaneasNoSobregiran(t *testing.T) {
	store, allocator := newEnv(t)
	seedItem(t, store, "arroz")
	ctx := context.Background()

	_, err := allocator.RecordIntake(ctx, appstock.IntakeInput{
		ItemID: "arroz", Quantity: 10, ExpiryDate: date(2025, 5, 1),
	})
	require.NoError(t, err)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := allocator.RecordOuttake(ctx, appstock.OuttakeInput{
				ItemID: "arroz", Quantity: 6, Reference: uuid.New().String(),
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, insufficient int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente una salida debe completarse")
	assert.Equal(t, 1, insufficient, "la otra debe rechazarse por stock insuficiente")
	assert.Equal(t, int64(4), stockOf(t, store, "arroz"))

	active, err := memory.NewStockLotRepository(store).ListActiveByItem("arroz")
	require.NoError(t, err)
	var remaining int64
	for _, l := range active {
		remaining += l.RemainingQty
	}
	assert.Equal(t, int64(4), remaining, "los remanentes nunca bajan de cero")
}
