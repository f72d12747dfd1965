package repository

import "github.com/donaria/donaciones-api/internal/domain/entity"

// DonorRepository define el puerto de persistencia de donantes.
type DonorRepository interface {
	Create(donor *entity.Donor) error
	Update(donor *entity.Donor) error
	GetByID(id string) (*entity.Donor, error)
	GetByDocument(docType, docNumber string) (*entity.Donor, error)
	List(limit, offset int) ([]*entity.Donor, error)
}
