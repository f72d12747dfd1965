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

var _ repository.BeneficiaryRepository = (*BeneficiaryRepo)(nil)

// BeneficiaryRepo implementación del puerto BeneficiaryRepository sobre PostgreSQL.
type BeneficiaryRepo struct {
	q Querier
}

// NewBeneficiaryRepository construye el adaptador de persistencia de beneficiarios.
func NewBeneficiaryRepository(q Querier) *BeneficiaryRepo {
	return &BeneficiaryRepo{q: q}
}

const beneficiaryColumns = `id, name, doc_type, doc_number, phone, address, family_size, notes, created_at, updated_at`

func scanBeneficiary(row pgx.Row) (*entity.Beneficiary, error) {
	var b entity.Beneficiary
	err := row.Scan(
		&b.ID, &b.Name, &b.DocType, &b.DocNumber, &b.Phone,
		&b.Address, &b.FamilySize, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste un beneficiario nuevo.
func (r *BeneficiaryRepo) Create(b *entity.Beneficiary) error {
	query := `
		INSERT INTO beneficiaries (id, name, doc_type, doc_number, phone, address, family_size, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.Name, b.DocType, b.DocNumber, b.Phone,
		b.Address, b.FamilySize, b.Notes, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert beneficiary: %w", err)
	}
	return nil
}

// Update actualiza un beneficiario existente.
func (r *BeneficiaryRepo) Update(b *entity.Beneficiary) error {
	query := `
		UPDATE beneficiaries SET name = $2, doc_type = $3, doc_number = $4, phone = $5, address = $6, family_size = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		b.ID, b.Name, b.DocType, b.DocNumber, b.Phone,
		b.Address, b.FamilySize, b.Notes, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update beneficiary: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un beneficiario por ID. Devuelve (nil, nil) si no existe.
func (r *BeneficiaryRepo) GetByID(id string) (*entity.Beneficiary, error) {
	b, err := scanBeneficiary(r.q.QueryRow(context.Background(),
		`SELECT `+beneficiaryColumns+` FROM beneficiaries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get beneficiary: %w", err)
	}
	return b, nil
}

// GetByDocument obtiene un beneficiario por tipo y número de documento.
func (r *BeneficiaryRepo) GetByDocument(docType, docNumber string) (*entity.Beneficiary, error) {
	b, err := scanBeneficiary(r.q.QueryRow(context.Background(),
		`SELECT `+beneficiaryColumns+` FROM beneficiaries WHERE doc_type = $1 AND doc_number = $2`,
		docType, docNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get beneficiary by document: %w", err)
	}
	return b, nil
}

// List lista beneficiarios con paginación.
func (r *BeneficiaryRepo) List(limit, offset int) ([]*entity.Beneficiary, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+beneficiaryColumns+` FROM beneficiaries ORDER BY name ASC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list beneficiaries: %w", err)
	}
	defer rows.Close()

	var out []*entity.Beneficiary
	for rows.Next() {
		b, err := scanBeneficiary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan beneficiary: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
