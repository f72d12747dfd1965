package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

// StockLotRepo implementación del puerto StockLotRepository sobre PostgreSQL.
type StockLotRepo struct {
	q Querier
}

// NewStockLotRepository construye el adaptador de persistencia de lotes. Pasar pool o tx (Querier).
func NewStockLotRepository(q Querier) *StockLotRepo {
	return &StockLotRepo{q: q}
}

const lotColumns = `id, item_id, code, quantity, remaining_qty, expiry_date, donor_id, created_at`

func scanLot(row pgx.Row) (*entity.StockLot, error) {
	var l entity.StockLot
	var donorID *string
	err := row.Scan(
		&l.ID, &l.ItemID, &l.Code, &l.Quantity, &l.RemainingQty,
		&l.ExpiryDate, &donorID, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if donorID != nil {
		l.DonorID = *donorID
	}
	return &l, nil
}

// Create persiste un lote nuevo (remaining_qty arranca igual a quantity).
func (r *StockLotRepo) Create(lot *entity.StockLot) error {
	query := `
		INSERT INTO stock_lots (id, item_id, code, quantity, remaining_qty, expiry_date, donor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ItemID, lot.Code, lot.Quantity, lot.RemainingQty,
		lot.ExpiryDate, nullIfEmpty(lot.DonorID), lot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve (nil, nil) si no existe.
func (r *StockLotRepo) GetByID(id string) (*entity.StockLot, error) {
	l, err := scanLot(r.q.QueryRow(context.Background(),
		`SELECT `+lotColumns+` FROM stock_lots WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock lot: %w", err)
	}
	return l, nil
}

// ListActiveByItem lotes con existencias del artículo, en orden de consumo:
// vencimiento ascendente, los sin vencimiento al final, empates por creación.
func (r *StockLotRepo) ListActiveByItem(itemID string) ([]*entity.StockLot, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+lotColumns+` FROM stock_lots
		 WHERE item_id = $1 AND remaining_qty > 0
		 ORDER BY expiry_date ASC NULLS LAST, created_at ASC, id ASC`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("list active lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.StockLot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock lot: %w", err)
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

// ListByItem lista todos los lotes del artículo, agotados incluidos.
func (r *StockLotRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockLot, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+lotColumns+` FROM stock_lots
		 WHERE item_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		itemID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.StockLot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock lot: %w", err)
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

// DecrementRemaining resta amount al remanente del lote. El WHERE con
// remaining_qty >= amount es la guarda final contra sobregiros: si no afecta
// filas, otro proceso consumió el lote primero y devolvemos ErrConflict.
func (r *StockLotRepo) DecrementRemaining(lotID string, amount int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE stock_lots SET remaining_qty = remaining_qty - $2
		 WHERE id = $1 AND remaining_qty >= $2`,
		lotID, amount,
	)
	if err != nil {
		return fmt.Errorf("decrement lot: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("lote %s sin remanente suficiente: %w", lotID, domain.ErrConflict)
	}
	return nil
}

// ListExpiringBefore lotes activos cuyo vencimiento es anterior a la fecha dada.
func (r *StockLotRepo) ListExpiringBefore(date time.Time) ([]*entity.StockLot, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+lotColumns+` FROM stock_lots
		 WHERE remaining_qty > 0 AND expiry_date IS NOT NULL AND expiry_date <= $1
		 ORDER BY expiry_date ASC, created_at ASC`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("list expiring lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.StockLot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock lot: %w", err)
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}
