package memory

import (
	"context"

	"github.com/donaria/donaciones-api/internal/application/delivery"
	"github.com/donaria/donaciones-api/internal/application/donation"
	"github.com/donaria/donaciones-api/internal/application/stock"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)
var _ donation.DonationTxRunner = (*TxRunner)(nil)
var _ delivery.DeliveryTxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre el store en memoria: toma el mutex global
// durante todo el callback (una transacción a la vez) y, si fn falla,
// restaura el snapshot tomado al inicio. Mismo contrato de atomicidad que la
// versión PostgreSQL; aquí nunca hay conflicto de commit.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos en modo transacción y revierte el estado si falla.
func (r *TxRunner) Run(_ context.Context, fn func(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	itemRepo repository.ItemRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.takeSnapshot()
	err := fn(
		&StockLotRepo{s: r.s, inTx: true},
		&StockMovementRepo{s: r.s, inTx: true},
		&ItemRepo{s: r.s, inTx: true},
	)
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// RunDonation igual que Run, con el repo de donaciones incluido.
func (r *TxRunner) RunDonation(_ context.Context, fn func(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	itemRepo repository.ItemRepository,
	donationRepo repository.DonationRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.takeSnapshot()
	err := fn(
		&StockLotRepo{s: r.s, inTx: true},
		&StockMovementRepo{s: r.s, inTx: true},
		&ItemRepo{s: r.s, inTx: true},
		&DonationRepo{s: r.s, inTx: true},
	)
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// RunDelivery igual que Run, con el repo de entregas incluido.
func (r *TxRunner) RunDelivery(_ context.Context, fn func(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	itemRepo repository.ItemRepository,
	deliveryRepo repository.DeliveryRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.takeSnapshot()
	err := fn(
		&StockLotRepo{s: r.s, inTx: true},
		&StockMovementRepo{s: r.s, inTx: true},
		&ItemRepo{s: r.s, inTx: true},
		&DeliveryRepo{s: r.s, inTx: true},
	)
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
