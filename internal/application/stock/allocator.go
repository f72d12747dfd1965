package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
	"github.com/donaria/donaciones-api/internal/domain/stock"
)

// maxCommitRetries reintentos ante ErrCommitConflict (fallo de serialización).
// Cada reintento re-ejecuta la secuencia check-then-act completa.
const maxCommitRetries = 3

// Allocator es el asignador de stock: orquesta lotes, libro de movimientos y
// catálogo. RecordIntake crea un lote por donación recibida; RecordOuttake
// consume lotes en orden FIFO por vencimiento para una entrega. Cada operación
// es atómica respecto a los tres almacenes y serializada por artículo.
type Allocator struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
}

// NewAllocator construye el asignador.
func NewAllocator(txRunner TxRunner, itemRepo repository.ItemRepository) *Allocator {
	return &Allocator{txRunner: txRunner, itemRepo: itemRepo}
}

// IntakeInput entrada para registrar una donación recibida de un artículo.
type IntakeInput struct {
	ItemID     string
	Quantity   int64
	ExpiryDate *time.Time // nil = sin vencimiento
	DonorID    string     // opcional
	LotCode    string     // etiqueta del lote; se genera una si viene vacía
	Reference  string     // ID de la donación que origina el intake
	UserID     string
}

// OuttakeInput entrada para registrar una salida por entrega.
type OuttakeInput struct {
	ItemID    string
	Quantity  int64
	Reference string // ID de la entrega que origina el outtake
	UserID    string
}

// RecordIntake crea un lote nuevo con la cantidad donada, registra el
// movimiento IN y suma al stock agregado del artículo, todo en una transacción.
// Devuelve el ID del lote creado.
func (a *Allocator) RecordIntake(ctx context.Context, in IntakeInput) (string, error) {
	if in.Quantity <= 0 {
		return "", domain.ErrInvalidQuantity
	}
	// Validación de existencia fuera de la tx (solo lectura); dentro de la tx
	// se vuelve a leer con bloqueo de fila.
	item, err := a.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", domain.ErrItemNotFound
	}

	var lotID string
	err = a.runWithRetry(ctx, func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		var err error
		lotID, err = a.RecordIntakeInTx(lotRepo, movRepo, itemRepo, in, time.Now())
		return err
	})
	if err != nil {
		return "", err
	}
	return lotID, nil
}

// RecordIntakeInTx ejecuta el intake usando los repositorios proporcionados
// (misma transacción del caller). Lo usa RecordIntake y también el caso de uso
// de donaciones, que compone varios intakes con su cabecera en una sola tx.
func (a *Allocator) RecordIntakeInTx(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	itemRepo repository.ItemRepository,
	in IntakeInput,
	now time.Time,
) (string, error) {
	if in.Quantity <= 0 {
		return "", domain.ErrInvalidQuantity
	}
	// Bloquea la fila del artículo: serializa operaciones concurrentes sobre él.
	item, err := itemRepo.GetForUpdate(in.ItemID)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", domain.ErrItemNotFound
	}

	code := in.LotCode
	if code == "" {
		code = "LOT-" + now.Format("20060102") + "-" + uuid.New().String()[:8]
	}
	lot := &entity.StockLot{
		ID:           uuid.New().String(),
		ItemID:       in.ItemID,
		Code:         code,
		Quantity:     in.Quantity,
		RemainingQty: in.Quantity,
		ExpiryDate:   in.ExpiryDate,
		DonorID:      in.DonorID,
		CreatedAt:    now,
	}
	if err := lotRepo.Create(lot); err != nil {
		return "", err
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ItemID:    in.ItemID,
		LotID:     lot.ID,
		Type:      entity.MovementTypeIN,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		CreatedAt: now,
		CreatedBy: in.UserID,
	}
	if err := movRepo.Create(mov); err != nil {
		return "", err
	}
	if err := itemRepo.AdjustStock(in.ItemID, in.Quantity); err != nil {
		return "", err
	}
	return lot.ID, nil
}

// RecordOuttake consume lotes del artículo en orden FIFO por vencimiento hasta
// cubrir la cantidad solicitada: un movimiento OUT por lote tocado y un único
// decremento del stock agregado. Check-then-act en una sola transacción: o se
// asigna la cantidad completa o no se muta nada.
func (a *Allocator) RecordOuttake(ctx context.Context, in OuttakeInput) (*stock.OuttakePlan, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	item, err := a.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	var plan *stock.OuttakePlan
	err = a.runWithRetry(ctx, func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		var err error
		plan, err = a.RecordOuttakeInTx(lotRepo, movRepo, itemRepo, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// RecordOuttakeInTx ejecuta la salida usando los repositorios del caller
// (misma transacción). Lo usa el caso de uso de entregas para componer varias
// líneas con su cabecera; si retorna error el caller debe hacer rollback.
func (a *Allocator) RecordOuttakeInTx(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	itemRepo repository.ItemRepository,
	in OuttakeInput,
	now time.Time,
) (*stock.OuttakePlan, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	item, err := itemRepo.GetForUpdate(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	lots, err := lotRepo.ListActiveByItem(in.ItemID)
	if err != nil {
		return nil, err
	}
	plan, err := stock.PlanOuttake(in.ItemID, lots, in.Quantity)
	if err != nil {
		return nil, err
	}

	for _, alloc := range plan.Allocations {
		if err := lotRepo.DecrementRemaining(alloc.LotID, alloc.Quantity); err != nil {
			return nil, err
		}
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			ItemID:    in.ItemID,
			LotID:     alloc.LotID,
			Type:      entity.MovementTypeOUT,
			Quantity:  alloc.Quantity,
			Reference: in.Reference,
			CreatedAt: now,
			CreatedBy: in.UserID,
		}
		if err := movRepo.Create(mov); err != nil {
			return nil, err
		}
	}
	if err := itemRepo.AdjustStock(in.ItemID, -in.Quantity); err != nil {
		return nil, err
	}
	return plan, nil
}

// runWithRetry ejecuta la transacción y reintenta ante ErrCommitConflict
// (la secuencia completa se re-ejecuta, incluida la verificación de stock).
func (a *Allocator) runWithRetry(ctx context.Context, fn func(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	itemRepo repository.ItemRepository,
) error) error {
	var err error
	for attempt := 0; attempt < maxCommitRetries; attempt++ {
		err = a.txRunner.Run(ctx, fn)
		if err == nil || !errors.Is(err, domain.ErrCommitConflict) {
			return err
		}
	}
	return err
}
