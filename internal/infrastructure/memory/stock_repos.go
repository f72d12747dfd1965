package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
	"github.com/donaria/donaciones-api/internal/domain/stock"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)
var _ repository.StockLotRepository = (*StockLotRepo)(nil)
var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// acquire toma el mutex global salvo dentro de una transacción, donde el
// TxRunner ya lo tiene.
func (s *Store) acquire(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ItemRepo catálogo de artículos en memoria.
type ItemRepo struct {
	s    *Store
	inTx bool
}

// NewItemRepository construye el repo de artículos sobre el store.
func NewItemRepository(s *Store) *ItemRepo {
	return &ItemRepo{s: s}
}

func (r *ItemRepo) Create(item *entity.Item) error {
	defer r.s.acquire(r.inTx)()
	for _, existing := range r.s.items {
		if existing.SKU == item.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *ItemRepo) Update(item *entity.Item) error {
	defer r.s.acquire(r.inTx)()
	existing, ok := r.s.items[item.ID]
	if !ok {
		return domain.ErrItemNotFound
	}
	// El stock agregado no se toca aquí: solo vía AdjustStock.
	cp := *item
	cp.StockCurrent = existing.StockCurrent
	r.s.items[item.ID] = &cp
	return nil
}

func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	defer r.s.acquire(r.inTx)()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

// GetForUpdate en memoria equivale a GetByID: la exclusión la da el mutex
// global que el TxRunner mantiene durante toda la transacción.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *ItemRepo) AdjustStock(id string, delta int64) error {
	defer r.s.acquire(r.inTx)()
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	if it.StockCurrent+delta < 0 {
		return fmt.Errorf("stock de %s quedaría negativo: %w", id, domain.ErrConflict)
	}
	it.StockCurrent += delta
	it.UpdatedAt = time.Now()
	return nil
}

func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	defer r.s.acquire(r.inTx)()
	all := make([]*entity.Item, 0, len(r.s.items))
	for _, it := range r.s.items {
		cp := *it
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *ItemRepo) ListBelowMinStock() ([]*entity.Item, error) {
	defer r.s.acquire(r.inTx)()
	var out []*entity.Item
	for _, it := range r.s.items {
		if it.BelowMinStock() {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di := out[i].MinStock - out[i].StockCurrent
		dj := out[j].MinStock - out[j].StockCurrent
		if di != dj {
			return di > dj
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// StockLotRepo lotes en memoria.
type StockLotRepo struct {
	s    *Store
	inTx bool
}

// NewStockLotRepository construye el repo de lotes sobre el store.
func NewStockLotRepository(s *Store) *StockLotRepo {
	return &StockLotRepo{s: s}
}

func (r *StockLotRepo) Create(lot *entity.StockLot) error {
	defer r.s.acquire(r.inTx)()
	if _, ok := r.s.lots[lot.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *lot
	r.s.lots[lot.ID] = &cp
	r.s.lotOrder = append(r.s.lotOrder, lot.ID)
	return nil
}

func (r *StockLotRepo) GetByID(id string) (*entity.StockLot, error) {
	defer r.s.acquire(r.inTx)()
	l, ok := r.s.lots[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *StockLotRepo) ListActiveByItem(itemID string) ([]*entity.StockLot, error) {
	defer r.s.acquire(r.inTx)()
	// Recorremos en orden de creación y dejamos que el sort estable del
	// dominio resuelva el orden por vencimiento: los empates conservan FIFO.
	var lots []*entity.StockLot
	for _, id := range r.s.lotOrder {
		l := r.s.lots[id]
		if l.ItemID == itemID && l.RemainingQty > 0 {
			cp := *l
			lots = append(lots, &cp)
		}
	}
	stock.SortLotsByExpiry(lots)
	return lots, nil
}

func (r *StockLotRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockLot, error) {
	defer r.s.acquire(r.inTx)()
	var lots []*entity.StockLot
	for i := len(r.s.lotOrder) - 1; i >= 0; i-- {
		l := r.s.lots[r.s.lotOrder[i]]
		if l.ItemID == itemID {
			cp := *l
			lots = append(lots, &cp)
		}
	}
	return paginate(lots, limit, offset), nil
}

func (r *StockLotRepo) DecrementRemaining(lotID string, amount int64) error {
	defer r.s.acquire(r.inTx)()
	l, ok := r.s.lots[lotID]
	if !ok {
		return domain.ErrNotFound
	}
	if l.RemainingQty < amount {
		return fmt.Errorf("lote %s sin remanente suficiente: %w", lotID, domain.ErrConflict)
	}
	l.RemainingQty -= amount
	return nil
}

func (r *StockLotRepo) ListExpiringBefore(date time.Time) ([]*entity.StockLot, error) {
	defer r.s.acquire(r.inTx)()
	var lots []*entity.StockLot
	for _, id := range r.s.lotOrder {
		l := r.s.lots[id]
		if l.RemainingQty > 0 && l.ExpiryDate != nil && !l.ExpiryDate.After(date) {
			cp := *l
			lots = append(lots, &cp)
		}
	}
	stock.SortLotsByExpiry(lots)
	return lots, nil
}

// StockMovementRepo libro de movimientos en memoria (solo append).
type StockMovementRepo struct {
	s    *Store
	inTx bool
}

// NewStockMovementRepository construye el repo de movimientos sobre el store.
func NewStockMovementRepository(s *Store) *StockMovementRepo {
	return &StockMovementRepo{s: s}
}

func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	defer r.s.acquire(r.inTx)()
	cp := *movement
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	defer r.s.acquire(r.inTx)()
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *StockMovementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.s.acquire(r.inTx)()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ItemID != itemID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

func (r *StockMovementRepo) ListByLot(lotID string) ([]*entity.StockMovement, error) {
	defer r.s.acquire(r.inTx)()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.LotID == lotID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *StockMovementRepo) ListByReference(reference string) ([]*entity.StockMovement, error) {
	defer r.s.acquire(r.inTx)()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.Reference == reference {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// paginate aplica limit/offset sobre un slice ya ordenado.
func paginate[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
