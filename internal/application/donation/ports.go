package donation

import (
	"context"
	"time"

	appstock "github.com/donaria/donaciones-api/internal/application/stock"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

// DonationTxRunner ejecuta una función dentro de una transacción que incluye
// los repos de stock y el de donaciones (para CreateDonation).
type DonationTxRunner interface {
	RunDonation(ctx context.Context, fn func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
		donationRepo repository.DonationRepository,
	) error) error
}

// IntakeUseCase interfaz para integrar donaciones con el asignador de stock.
// RecordIntakeInTx crea el lote usando los repositorios del caller (misma
// transacción). Si retorna error, el caller debe hacer rollback.
type IntakeUseCase interface {
	RecordIntakeInTx(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
		in appstock.IntakeInput,
		now time.Time,
	) (string, error)
}

// ReceiptPDFGenerator genera el certificado de donación en PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, data *ReceiptData) ([]byte, error)
}
