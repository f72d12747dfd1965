package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/donaria/donaciones-api/internal/application/dto"
	appstock "github.com/donaria/donaciones-api/internal/application/stock"
	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

// CreateDeliveryUseCase registra una entrega a un beneficiario y consume el
// stock de todas sus líneas en una sola transacción. Por cada lote consumido
// se persiste una línea de entrega: trazabilidad lote-a-beneficiario.
type CreateDeliveryUseCase struct {
	txRunner        DeliveryTxRunner
	outtakeUC       OuttakeUseCase
	beneficiaryRepo repository.BeneficiaryRepository
	itemRepo        repository.ItemRepository
	deliveryRepo    repository.DeliveryRepository // lecturas fuera de tx
}

// NewCreateDeliveryUseCase construye el caso de uso.
func NewCreateDeliveryUseCase(
	txRunner DeliveryTxRunner,
	outtakeUC OuttakeUseCase,
	beneficiaryRepo repository.BeneficiaryRepository,
	itemRepo repository.ItemRepository,
	deliveryRepo repository.DeliveryRepository,
) *CreateDeliveryUseCase {
	return &CreateDeliveryUseCase{
		txRunner:        txRunner,
		outtakeUC:       outtakeUC,
		beneficiaryRepo: beneficiaryRepo,
		itemRepo:        itemRepo,
		deliveryRepo:    deliveryRepo,
	}
}

// CreateDelivery valida beneficiario y líneas, y por cada línea ejecuta un
// outtake FIFO con la entrega como referencia. Si algún artículo no tiene
// stock suficiente, nada se confirma y el error lleva las cantidades.
func (uc *CreateDeliveryUseCase) CreateDelivery(ctx context.Context, userID string, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if in.BeneficiaryID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	beneficiary, err := uc.beneficiaryRepo.GetByID(in.BeneficiaryID)
	if err != nil {
		return nil, err
	}
	if beneficiary == nil {
		return nil, domain.ErrNotFound
	}
	for _, line := range in.Lines {
		if line.ItemID == "" {
			return nil, domain.ErrInvalidInput
		}
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrItemNotFound
		}
	}

	now := time.Now()
	deliveryID := uuid.New().String() // referencia en los movimientos OUT

	var del *entity.Delivery
	var lines []*entity.DeliveryLine

	err = uc.txRunner.RunDelivery(ctx, func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
		deliveryRepo repository.DeliveryRepository,
	) error {
		lines = lines[:0]
		for _, line := range in.Lines {
			plan, err := uc.outtakeUC.RecordOuttakeInTx(lotRepo, movRepo, itemRepo, appstock.OuttakeInput{
				ItemID:    line.ItemID,
				Quantity:  line.Quantity,
				Reference: deliveryID,
				UserID:    userID,
			}, now)
			if err != nil {
				return err
			}
			// Una línea de entrega por lote consumido del plan.
			for _, alloc := range plan.Allocations {
				lines = append(lines, &entity.DeliveryLine{
					ID:         uuid.New().String(),
					DeliveryID: deliveryID,
					ItemID:     line.ItemID,
					LotID:      alloc.LotID,
					Quantity:   alloc.Quantity,
				})
			}
		}

		del = &entity.Delivery{
			ID:            deliveryID,
			BeneficiaryID: in.BeneficiaryID,
			Date:          now,
			Notes:         in.Notes,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		return deliveryRepo.Create(del, lines)
	})
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(del, lines), nil
}

// GetDelivery devuelve una entrega con sus líneas por lote.
func (uc *CreateDeliveryUseCase) GetDelivery(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	del, lines, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if del == nil {
		return nil, domain.ErrNotFound
	}
	return toDeliveryResponse(del, lines), nil
}

func toDeliveryResponse(d *entity.Delivery, lines []*entity.DeliveryLine) *dto.DeliveryResponse {
	resp := &dto.DeliveryResponse{
		ID:            d.ID,
		BeneficiaryID: d.BeneficiaryID,
		Date:          d.Date,
		Notes:         d.Notes,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.DeliveryLineResponse{
			ID:       l.ID,
			ItemID:   l.ItemID,
			LotID:    l.LotID,
			Quantity: l.Quantity,
		})
	}
	return resp
}
