package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/donaria/donaciones-api/internal/application/dto"
	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

// BeneficiaryUseCase casos de uso CRUD de beneficiarios.
type BeneficiaryUseCase struct {
	repo repository.BeneficiaryRepository
}

// NewBeneficiaryUseCase construye el caso de uso.
func NewBeneficiaryUseCase(repo repository.BeneficiaryRepository) *BeneficiaryUseCase {
	return &BeneficiaryUseCase{repo: repo}
}

// Create crea un beneficiario. El documento (tipo + número) es único.
func (uc *BeneficiaryUseCase) Create(in dto.CreateBeneficiaryRequest) (*dto.BeneficiaryResponse, error) {
	if in.Name == "" || in.DocType == "" || in.DocNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FamilySize < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByDocument(in.DocType, in.DocNumber)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	b := &entity.Beneficiary{
		ID:         uuid.New().String(),
		Name:       in.Name,
		DocType:    in.DocType,
		DocNumber:  in.DocNumber,
		Phone:      in.Phone,
		Address:    in.Address,
		FamilySize: in.FamilySize,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(b); err != nil {
		return nil, err
	}
	return toBeneficiaryResponse(b), nil
}

// GetByID obtiene un beneficiario por ID.
func (uc *BeneficiaryUseCase) GetByID(id string) (*dto.BeneficiaryResponse, error) {
	b, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	return toBeneficiaryResponse(b), nil
}

// List lista beneficiarios con paginación.
func (uc *BeneficiaryUseCase) List(limit, offset int) ([]*dto.BeneficiaryResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BeneficiaryResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBeneficiaryResponse(b))
	}
	return out, nil
}

func toBeneficiaryResponse(b *entity.Beneficiary) *dto.BeneficiaryResponse {
	return &dto.BeneficiaryResponse{
		ID:         b.ID,
		Name:       b.Name,
		DocType:    b.DocType,
		DocNumber:  b.DocNumber,
		Phone:      b.Phone,
		Address:    b.Address,
		FamilySize: b.FamilySize,
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
	}
}
