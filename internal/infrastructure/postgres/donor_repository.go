package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

var _ repository.DonorRepository = (*DonorRepo)(nil)

// DonorRepo implementación del puerto DonorRepository sobre PostgreSQL.
type DonorRepo struct {
	q Querier
}

// NewDonorRepository construye el adaptador de persistencia de donantes.
func NewDonorRepository(q Querier) *DonorRepo {
	return &DonorRepo{q: q}
}

const donorColumns = `id, name, doc_type, doc_number, email, phone, address, created_at, updated_at`

func scanDonor(row pgx.Row) (*entity.Donor, error) {
	var d entity.Donor
	err := row.Scan(
		&d.ID, &d.Name, &d.DocType, &d.DocNumber, &d.Email,
		&d.Phone, &d.Address, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste un donante nuevo.
func (r *DonorRepo) Create(donor *entity.Donor) error {
	query := `
		INSERT INTO donors (id, name, doc_type, doc_number, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		donor.ID, donor.Name, donor.DocType, donor.DocNumber, donor.Email,
		donor.Phone, donor.Address, donor.CreatedAt, donor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert donor: %w", err)
	}
	return nil
}

// Update actualiza un donante existente.
func (r *DonorRepo) Update(donor *entity.Donor) error {
	query := `
		UPDATE donors SET name = $2, doc_type = $3, doc_number = $4, email = $5, phone = $6, address = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		donor.ID, donor.Name, donor.DocType, donor.DocNumber, donor.Email,
		donor.Phone, donor.Address, donor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update donor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un donante por ID. Devuelve (nil, nil) si no existe.
func (r *DonorRepo) GetByID(id string) (*entity.Donor, error) {
	d, err := scanDonor(r.q.QueryRow(context.Background(),
		`SELECT `+donorColumns+` FROM donors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get donor: %w", err)
	}
	return d, nil
}

// GetByDocument obtiene un donante por tipo y número de documento.
func (r *DonorRepo) GetByDocument(docType, docNumber string) (*entity.Donor, error) {
	d, err := scanDonor(r.q.QueryRow(context.Background(),
		`SELECT `+donorColumns+` FROM donors WHERE doc_type = $1 AND doc_number = $2`,
		docType, docNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get donor by document: %w", err)
	}
	return d, nil
}

// List lista donantes con paginación.
func (r *DonorRepo) List(limit, offset int) ([]*entity.Donor, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+donorColumns+` FROM donors ORDER BY name ASC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	defer rows.Close()

	var donors []*entity.Donor
	for rows.Next() {
		d, err := scanDonor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donor: %w", err)
		}
		donors = append(donors, d)
	}
	return donors, rows.Err()
}
