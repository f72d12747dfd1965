package stock

import (
	"context"
	"time"

	"github.com/donaria/donaciones-api/internal/application/dto"
	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/stock"
)

// expiryLayout formato de fecha de vencimiento en la API (fecha calendario,
// sin componente de hora).
const expiryLayout = "2006-01-02"

// ParseExpiryDate convierte el string YYYY-MM-DD del request en *time.Time.
// Vacío = sin vencimiento (nil).
func ParseExpiryDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(expiryLayout, s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

// RecordIntakeFromRequest adapta el request HTTP a RecordIntake(ctx, IntakeInput).
func (a *Allocator) RecordIntakeFromRequest(ctx context.Context, userID string, in dto.IntakeRequest) (string, error) {
	expiry, err := ParseExpiryDate(in.ExpiryDate)
	if err != nil {
		return "", err
	}
	return a.RecordIntake(ctx, IntakeInput{
		ItemID:     in.ItemID,
		Quantity:   in.Quantity,
		ExpiryDate: expiry,
		DonorID:    in.DonorID,
		LotCode:    in.LotCode,
		Reference:  in.Reference,
		UserID:     userID,
	})
}

// RecordOuttakeFromRequest adapta el request HTTP a RecordOuttake(ctx, OuttakeInput).
func (a *Allocator) RecordOuttakeFromRequest(ctx context.Context, userID string, in dto.OuttakeRequest) (*stock.OuttakePlan, error) {
	return a.RecordOuttake(ctx, OuttakeInput{
		ItemID:    in.ItemID,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		UserID:    userID,
	})
}
