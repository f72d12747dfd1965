package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/donaria/donaciones-api/internal/application/dto"
	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

// DonorUseCase casos de uso CRUD de donantes.
type DonorUseCase struct {
	repo repository.DonorRepository
}

// NewDonorUseCase construye el caso de uso.
func NewDonorUseCase(repo repository.DonorRepository) *DonorUseCase {
	return &DonorUseCase{repo: repo}
}

// Create crea un donante. El documento (tipo + número) es único.
func (uc *DonorUseCase) Create(in dto.CreateDonorRequest) (*dto.DonorResponse, error) {
	if in.Name == "" || in.DocType == "" || in.DocNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByDocument(in.DocType, in.DocNumber)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	donor := &entity.Donor{
		ID:        uuid.New().String(),
		Name:      in.Name,
		DocType:   in.DocType,
		DocNumber: in.DocNumber,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(donor); err != nil {
		return nil, err
	}
	return toDonorResponse(donor), nil
}

// GetByID obtiene un donante por ID.
func (uc *DonorUseCase) GetByID(id string) (*dto.DonorResponse, error) {
	donor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, nil
	}
	return toDonorResponse(donor), nil
}

// List lista donantes con paginación.
func (uc *DonorUseCase) List(limit, offset int) ([]*dto.DonorResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	donors, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DonorResponse, 0, len(donors))
	for _, d := range donors {
		out = append(out, toDonorResponse(d))
	}
	return out, nil
}

func toDonorResponse(d *entity.Donor) *dto.DonorResponse {
	return &dto.DonorResponse{
		ID:        d.ID,
		Name:      d.Name,
		DocType:   d.DocType,
		DocNumber: d.DocNumber,
		Email:     d.Email,
		Phone:     d.Phone,
		Address:   d.Address,
		CreatedAt: d.CreatedAt,
	}
}
