package repository

import "github.com/donaria/donaciones-api/internal/domain/entity"

// BeneficiaryRepository define el puerto de persistencia de beneficiarios.
type BeneficiaryRepository interface {
	Create(b *entity.Beneficiary) error
	Update(b *entity.Beneficiary) error
	GetByID(id string) (*entity.Beneficiary, error)
	GetByDocument(docType, docNumber string) (*entity.Beneficiary, error)
	List(limit, offset int) ([]*entity.Beneficiary, error)
}
