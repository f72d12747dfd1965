package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación del puerto DeliveryRepository sobre PostgreSQL.
// Create se llama siempre dentro de la misma tx que consume los lotes.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador de persistencia de entregas.
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

const deliveryColumns = `id, beneficiary_id, date, notes, created_at, created_by`

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var d entity.Delivery
	err := row.Scan(
		&d.ID, &d.BeneficiaryID, &d.Date, &d.Notes, &d.CreatedAt, &d.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste la cabecera y las líneas de una entrega (una línea por lote consumido).
func (r *DeliveryRepo) Create(delivery *entity.Delivery, lines []*entity.DeliveryLine) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO deliveries (id, beneficiary_id, date, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		delivery.ID, delivery.BeneficiaryID, delivery.Date,
		delivery.Notes, delivery.CreatedAt, delivery.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	for _, line := range lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO delivery_lines (id, delivery_id, item_id, lot_id, quantity)
			VALUES ($1, $2, $3, $4, $5)`,
			line.ID, line.DeliveryID, line.ItemID, line.LotID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert delivery line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una entrega con sus líneas. Devuelve (nil, nil, nil) si no existe.
func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, []*entity.DeliveryLine, error) {
	ctx := context.Background()
	d, err := scanDelivery(r.q.QueryRow(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get delivery: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, delivery_id, item_id, lot_id, quantity
		FROM delivery_lines WHERE delivery_id = $1 ORDER BY id ASC`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get delivery lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.DeliveryLine
	for rows.Next() {
		var l entity.DeliveryLine
		if err := rows.Scan(&l.ID, &l.DeliveryID, &l.ItemID, &l.LotID, &l.Quantity); err != nil {
			return nil, nil, fmt.Errorf("scan delivery line: %w", err)
		}
		lines = append(lines, &l)
	}
	return d, lines, rows.Err()
}

// ListByBeneficiary lista las entregas de un beneficiario (más recientes primero).
func (r *DeliveryRepo) ListByBeneficiary(beneficiaryID string, limit, offset int) ([]*entity.Delivery, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+deliveryColumns+` FROM deliveries
		 WHERE beneficiary_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`,
		beneficiaryID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list deliveries by beneficiary: %w", err)
	}
	defer rows.Close()

	var deliveries []*entity.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

// List lista entregas con paginación (más recientes primero).
func (r *DeliveryRepo) List(limit, offset int) ([]*entity.Delivery, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+deliveryColumns+` FROM deliveries
		 ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []*entity.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}
