package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/donaria/donaciones-api/internal/application/delivery"
	"github.com/donaria/donaciones-api/internal/application/donation"
	"github.com/donaria/donaciones-api/internal/application/stock"
	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de la aplicación.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ donation.DonationTxRunner = (*TxRunner)(nil)
var _ delivery.DeliveryTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los fallos
// de serialización/deadlock se mapean a ErrCommitConflict para que el
// asignador reintente la secuencia completa.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	itemRepo repository.ItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", domain.ErrStoreUnavailable)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lotRepo := NewStockLotRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	itemRepo := NewItemRepository(tx)

	if err := fn(lotRepo, movRepo, itemRepo); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunDonation inicia una transacción con repos de stock y donaciones (para CreateDonation).
func (r *TxRunner) RunDonation(ctx context.Context, fn func(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	itemRepo repository.ItemRepository,
	donationRepo repository.DonationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", domain.ErrStoreUnavailable)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockLotRepository(tx), NewStockMovementRepository(tx), NewItemRepository(tx), NewDonationRepository(tx)); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunDelivery inicia una transacción con repos de stock y entregas (para CreateDelivery).
func (r *TxRunner) RunDelivery(ctx context.Context, fn func(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	itemRepo repository.ItemRepository,
	deliveryRepo repository.DeliveryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", domain.ErrStoreUnavailable)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockLotRepository(tx), NewStockMovementRepository(tx), NewItemRepository(tx), NewDeliveryRepository(tx)); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// mapTxError traduce fallos de serialización a ErrCommitConflict; el resto pasa tal cual.
func mapTxError(err error) error {
	if isSerializationFailure(err) {
		return fmt.Errorf("%w: %v", domain.ErrCommitConflict, err)
	}
	return err
}
