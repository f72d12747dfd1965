package donation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/donaria/donaciones-api/internal/application/dto"
	appstock "github.com/donaria/donaciones-api/internal/application/stock"
	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

// CreateDonationUseCase registra una donación y crea los lotes de stock de
// todas sus líneas en una sola transacción: cabecera, lotes, movimientos IN y
// agregados del catálogo se confirman juntos o no se confirma nada.
type CreateDonationUseCase struct {
	txRunner     DonationTxRunner
	intakeUC     IntakeUseCase
	donorRepo    repository.DonorRepository
	itemRepo     repository.ItemRepository
	donationRepo repository.DonationRepository // lecturas fuera de tx
}

// NewCreateDonationUseCase construye el caso de uso.
func NewCreateDonationUseCase(
	txRunner DonationTxRunner,
	intakeUC IntakeUseCase,
	donorRepo repository.DonorRepository,
	itemRepo repository.ItemRepository,
	donationRepo repository.DonationRepository,
) *CreateDonationUseCase {
	return &CreateDonationUseCase{
		txRunner:     txRunner,
		intakeUC:     intakeUC,
		donorRepo:    donorRepo,
		itemRepo:     itemRepo,
		donationRepo: donationRepo,
	}
}

// CreateDonation valida donante y artículos, y por cada línea ejecuta un
// intake (lote + movimiento IN + agregado) con la donación como referencia.
func (uc *CreateDonationUseCase) CreateDonation(ctx context.Context, userID string, in dto.CreateDonationRequest) (*dto.DonationResponse, error) {
	if in.DonorID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	donor, err := uc.donorRepo.GetByID(in.DonorID)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, domain.ErrNotFound
	}

	// Validar líneas y artículos fuera de la tx (solo lectura); la existencia
	// se re-verifica dentro con bloqueo de fila.
	type parsedLine struct {
		req    dto.DonationLineRequest
		expiry *time.Time
		item   *entity.Item
	}
	parsed := make([]parsedLine, 0, len(in.Lines))
	for _, line := range in.Lines {
		if line.ItemID == "" {
			return nil, domain.ErrInvalidInput
		}
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		expiry, err := appstock.ParseExpiryDate(line.ExpiryDate)
		if err != nil {
			return nil, err
		}
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrItemNotFound
		}
		parsed = append(parsed, parsedLine{req: line, expiry: expiry, item: item})
	}

	now := time.Now()
	donationID := uuid.New().String() // referencia en los movimientos IN

	var donation *entity.Donation
	var lines []*entity.DonationLine

	err = uc.txRunner.RunDonation(ctx, func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
		donationRepo repository.DonationRepository,
	) error {
		total := decimal.Zero
		lines = lines[:0]
		for _, p := range parsed {
			lotID, err := uc.intakeUC.RecordIntakeInTx(lotRepo, movRepo, itemRepo, appstock.IntakeInput{
				ItemID:     p.req.ItemID,
				Quantity:   p.req.Quantity,
				ExpiryDate: p.expiry,
				DonorID:    in.DonorID,
				LotCode:    p.req.LotCode,
				Reference:  donationID,
				UserID:     userID,
			}, now)
			if err != nil {
				return err
			}
			value := p.item.UnitValue.Mul(decimal.NewFromInt(p.req.Quantity))
			total = total.Add(value)
			lines = append(lines, &entity.DonationLine{
				ID:             uuid.New().String(),
				DonationID:     donationID,
				ItemID:         p.req.ItemID,
				LotID:          lotID,
				Quantity:       p.req.Quantity,
				ExpiryDate:     p.expiry,
				EstimatedValue: value,
			})
		}

		donation = &entity.Donation{
			ID:             donationID,
			DonorID:        in.DonorID,
			Date:           now,
			EstimatedValue: total,
			Notes:          in.Notes,
			CreatedAt:      now,
			CreatedBy:      userID,
		}
		return donationRepo.Create(donation, lines)
	})
	if err != nil {
		return nil, err
	}
	return toDonationResponse(donation, lines), nil
}

// GetDonation devuelve una donación con sus líneas.
func (uc *CreateDonationUseCase) GetDonation(ctx context.Context, id string) (*dto.DonationResponse, error) {
	donation, lines, err := uc.donationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, domain.ErrNotFound
	}
	return toDonationResponse(donation, lines), nil
}

func toDonationResponse(d *entity.Donation, lines []*entity.DonationLine) *dto.DonationResponse {
	resp := &dto.DonationResponse{
		ID:             d.ID,
		DonorID:        d.DonorID,
		Date:           d.Date,
		EstimatedValue: d.EstimatedValue,
		Notes:          d.Notes,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.DonationLineResponse{
			ID:             l.ID,
			ItemID:         l.ItemID,
			LotID:          l.LotID,
			Quantity:       l.Quantity,
			ExpiryDate:     l.ExpiryDate,
			EstimatedValue: l.EstimatedValue,
		})
	}
	return resp
}
