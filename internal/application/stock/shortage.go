package stock

import (
	"context"
	"sort"
	"time"

	"github.com/donaria/donaciones-api/internal/application/dto"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

// ShortageUseCase genera el reporte de faltantes de la despensa: artículos en
// o por debajo de su umbral de reposición más los lotes próximos a vencer,
// para priorizar campañas de donación y repartos.
type ShortageUseCase struct {
	itemRepo repository.ItemRepository
	lotRepo  repository.StockLotRepository
}

// NewShortageUseCase construye el caso de uso.
func NewShortageUseCase(itemRepo repository.ItemRepository, lotRepo repository.StockLotRepository) *ShortageUseCase {
	return &ShortageUseCase{itemRepo: itemRepo, lotRepo: lotRepo}
}

// GenerateShortageReport devuelve los artículos bajo umbral con la cantidad
// sugerida a conseguir (hasta 2x el mínimo) y los lotes activos que vencen en
// los próximos expiryWindowDays días.
func (uc *ShortageUseCase) GenerateShortageReport(ctx context.Context, expiryWindowDays int) (*dto.ShortageReportDTO, error) {
	now := time.Now()

	items, err := uc.itemRepo.ListBelowMinStock()
	if err != nil {
		return nil, err
	}

	shortages := make([]dto.ShortageItemDTO, 0, len(items))
	for _, item := range items {
		suggested := 2*item.MinStock - item.StockCurrent
		if suggested < 0 {
			suggested = 0
		}
		shortages = append(shortages, dto.ShortageItemDTO{
			ItemID:       item.ID,
			SKU:          item.SKU,
			Name:         item.Name,
			Unit:         item.Unit,
			StockCurrent: item.StockCurrent,
			MinStock:     item.MinStock,
			SuggestedQty: suggested,
		})
	}

	// Ordenar por déficit relativo: primero los más vaciados respecto a su mínimo.
	sort.SliceStable(shortages, func(i, j int) bool {
		a, b := shortages[i], shortages[j]
		defA := a.MinStock - a.StockCurrent
		defB := b.MinStock - b.StockCurrent
		if defA != defB {
			return defA > defB
		}
		return a.SuggestedQty > b.SuggestedQty
	})
	for i := range shortages {
		shortages[i].Priority = i + 1
	}

	if expiryWindowDays <= 0 {
		expiryWindowDays = 30
	}
	limit := now.AddDate(0, 0, expiryWindowDays)
	lots, err := uc.lotRepo.ListExpiringBefore(limit)
	if err != nil {
		return nil, err
	}
	expiring := make([]dto.ExpiringLotDTO, 0, len(lots))
	for _, lot := range lots {
		if lot.ExpiryDate == nil {
			continue
		}
		expiring = append(expiring, dto.ExpiringLotDTO{
			LotID:        lot.ID,
			ItemID:       lot.ItemID,
			Code:         lot.Code,
			RemainingQty: lot.RemainingQty,
			ExpiryDate:   *lot.ExpiryDate,
			DaysLeft:     int(time.Until(*lot.ExpiryDate).Hours() / 24),
		})
	}

	return &dto.ShortageReportDTO{
		Items:        shortages,
		ExpiringLots: expiring,
		GeneratedAt:  now,
	}, nil
}
