package donation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

// ReceiptLine línea del certificado: artículo, cantidad y valor estimado.
type ReceiptLine struct {
	ItemName string
	Unit     string
	Quantity int64
	Value    decimal.Decimal
}

// ReceiptData datos listos para renderizar el certificado de donación.
type ReceiptData struct {
	DonationID     string
	Date           time.Time
	FoundationName string
	DonorName      string
	DonorDoc       string // "CC 123..." / "NIT 900..."
	Lines          []ReceiptLine
	Total          decimal.Decimal
}

// ReceiptUseCase genera el certificado de donación en PDF para el donante
// (soporte de la donación ante la DIAN).
type ReceiptUseCase struct {
	donationRepo   repository.DonationRepository
	donorRepo      repository.DonorRepository
	itemRepo       repository.ItemRepository
	generator      ReceiptPDFGenerator
	foundationName string
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	donationRepo repository.DonationRepository,
	donorRepo repository.DonorRepository,
	itemRepo repository.ItemRepository,
	generator ReceiptPDFGenerator,
	foundationName string,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		donationRepo:   donationRepo,
		donorRepo:      donorRepo,
		itemRepo:       itemRepo,
		generator:      generator,
		foundationName: foundationName,
	}
}

// GenerateReceipt arma los datos del certificado y delega el render al generador.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, donationID string) ([]byte, error) {
	donation, lines, err := uc.donationRepo.GetByID(donationID)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, domain.ErrNotFound
	}
	donor, err := uc.donorRepo.GetByID(donation.DonorID)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, domain.ErrNotFound
	}

	data := &ReceiptData{
		DonationID:     donation.ID,
		Date:           donation.Date,
		FoundationName: uc.foundationName,
		DonorName:      donor.Name,
		DonorDoc:       donor.DocType + " " + donor.DocNumber,
		Total:          donation.EstimatedValue,
	}
	for _, l := range lines {
		item, err := uc.itemRepo.GetByID(l.ItemID)
		if err != nil {
			return nil, err
		}
		name, unit := l.ItemID, ""
		if item != nil {
			name, unit = item.Name, item.Unit
		}
		data.Lines = append(data.Lines, ReceiptLine{
			ItemName: name,
			Unit:     unit,
			Quantity: l.Quantity,
			Value:    l.EstimatedValue,
		})
	}
	return uc.generator.GenerateReceiptPDF(ctx, data)
}
