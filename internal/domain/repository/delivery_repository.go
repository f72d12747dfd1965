package repository

import "github.com/donaria/donaciones-api/internal/domain/entity"

// DeliveryRepository define el puerto de persistencia de entregas.
type DeliveryRepository interface {
	Create(delivery *entity.Delivery, lines []*entity.DeliveryLine) error
	GetByID(id string) (*entity.Delivery, []*entity.DeliveryLine, error)
	ListByBeneficiary(beneficiaryID string, limit, offset int) ([]*entity.Delivery, error)
	List(limit, offset int) ([]*entity.Delivery, error)
}
