package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

var _ repository.DonationRepository = (*DonationRepo)(nil)

// DonationRepo implementación del puerto DonationRepository sobre PostgreSQL.
// Create se llama siempre dentro de la misma tx que crea lotes y movimientos.
type DonationRepo struct {
	q Querier
}

// NewDonationRepository construye el adaptador de persistencia de donaciones.
func NewDonationRepository(q Querier) *DonationRepo {
	return &DonationRepo{q: q}
}

const donationColumns = `id, donor_id, date, estimated_value, notes, created_at, created_by`

func scanDonation(row pgx.Row) (*entity.Donation, error) {
	var d entity.Donation
	err := row.Scan(
		&d.ID, &d.DonorID, &d.Date, &d.EstimatedValue,
		&d.Notes, &d.CreatedAt, &d.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste la cabecera y las líneas de una donación.
func (r *DonationRepo) Create(donation *entity.Donation, lines []*entity.DonationLine) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO donations (id, donor_id, date, estimated_value, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		donation.ID, donation.DonorID, donation.Date, donation.EstimatedValue,
		donation.Notes, donation.CreatedAt, donation.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	for _, line := range lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO donation_lines (id, donation_id, item_id, lot_id, quantity, expiry_date, estimated_value)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			line.ID, line.DonationID, line.ItemID, line.LotID,
			line.Quantity, line.ExpiryDate, line.EstimatedValue,
		)
		if err != nil {
			return fmt.Errorf("insert donation line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una donación con sus líneas. Devuelve (nil, nil, nil) si no existe.
func (r *DonationRepo) GetByID(id string) (*entity.Donation, []*entity.DonationLine, error) {
	ctx := context.Background()
	d, err := scanDonation(r.q.QueryRow(ctx,
		`SELECT `+donationColumns+` FROM donations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get donation: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, donation_id, item_id, lot_id, quantity, expiry_date, estimated_value
		FROM donation_lines WHERE donation_id = $1 ORDER BY id ASC`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get donation lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.DonationLine
	for rows.Next() {
		var l entity.DonationLine
		if err := rows.Scan(&l.ID, &l.DonationID, &l.ItemID, &l.LotID, &l.Quantity, &l.ExpiryDate, &l.EstimatedValue); err != nil {
			return nil, nil, fmt.Errorf("scan donation line: %w", err)
		}
		lines = append(lines, &l)
	}
	return d, lines, rows.Err()
}

// ListByDonor lista las donaciones de un donante (más recientes primero).
func (r *DonationRepo) ListByDonor(donorID string, limit, offset int) ([]*entity.Donation, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+donationColumns+` FROM donations
		 WHERE donor_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`,
		donorID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list donations by donor: %w", err)
	}
	defer rows.Close()

	var donations []*entity.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}

// List lista donaciones con paginación (más recientes primero).
func (r *DonationRepo) List(limit, offset int) ([]*entity.Donation, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+donationColumns+` FROM donations
		 ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	var donations []*entity.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}
