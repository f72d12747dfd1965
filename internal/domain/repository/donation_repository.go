package repository

import "github.com/donaria/donaciones-api/internal/domain/entity"

// DonationRepository define el puerto de persistencia de donaciones.
type DonationRepository interface {
	Create(donation *entity.Donation, lines []*entity.DonationLine) error
	GetByID(id string) (*entity.Donation, []*entity.DonationLine, error)
	ListByDonor(donorID string, limit, offset int) ([]*entity.Donation, error)
	List(limit, offset int) ([]*entity.Donation, error)
}
