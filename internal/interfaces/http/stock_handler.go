package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/donaria/donaciones-api/internal/application/dto"
	appstock "github.com/donaria/donaciones-api/internal/application/stock"
	"github.com/donaria/donaciones-api/internal/domain"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

// StockHandler maneja intake, outtake y las consultas de lotes y movimientos.
type StockHandler struct {
	allocator *appstock.Allocator
	shortage  *appstock.ShortageUseCase
	lotRepo   repository.StockLotRepository
	movRepo   repository.StockMovementRepository
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(
	allocator *appstock.Allocator,
	shortage *appstock.ShortageUseCase,
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
) *StockHandler {
	return &StockHandler{allocator: allocator, shortage: shortage, lotRepo: lotRepo, movRepo: movRepo}
}

// RecordIntake godoc
// @Summary      Registrar entrada de stock (crea un lote)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IntakeRequest  true  "item_id, quantity, expiry_date (YYYY-MM-DD, opcional)"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock/intake [post]
func (h *StockHandler) RecordIntake(c *fiber.Ctx) error {
	var in dto.IntakeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lotID, err := h.allocator.RecordIntakeFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"lot_id": lotID})
}

// RecordOuttake godoc
// @Summary      Registrar salida de stock (consumo FIFO por vencimiento)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OuttakeRequest  true  "item_id, quantity"
// @Success      201   {object}  dto.OuttakePlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock/outtake [post]
func (h *StockHandler) RecordOuttake(c *fiber.Ctx) error {
	var in dto.OuttakeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	plan, err := h.allocator.RecordOuttakeFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.OuttakePlanResponse{ItemID: plan.ItemID, Requested: plan.Requested}
	for _, alloc := range plan.Allocations {
		out.Allocations = append(out.Allocations, dto.LotAllocationDTO{LotID: alloc.LotID, Quantity: alloc.Quantity})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListLots godoc
// @Summary      Listar lotes de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id  path   string  true   "ID del artículo"
// @Param        active   query  bool    false  "solo lotes con existencias"
// @Success      200  {array}   dto.StockLotDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/items/{item_id}/lots [get]
func (h *StockHandler) ListLots(c *fiber.Ctx) error {
	itemID := c.Params("item_id")
	var (
		lots []*entity.StockLot
		err  error
	)
	if c.QueryBool("active", false) {
		lots, err = h.lotRepo.ListActiveByItem(itemID)
	} else {
		lots, err = h.lotRepo.ListByItem(itemID, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	}
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockLotDTO, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.StockLotDTO{
			ID:           l.ID,
			ItemID:       l.ItemID,
			Code:         l.Code,
			Quantity:     l.Quantity,
			RemainingQty: l.RemainingQty,
			ExpiryDate:   l.ExpiryDate,
			DonorID:      l.DonorID,
			CreatedAt:    l.CreatedAt,
		})
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id  path   string  true   "ID del artículo"
// @Param        from     query  string  false  "fecha mínima (RFC 3339)"
// @Param        to       query  string  false  "fecha máxima (RFC 3339)"
// @Success      200  {array}   dto.StockMovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/items/{item_id}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	itemID := c.Params("item_id")
	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	movements, err := h.movRepo.ListByItem(itemID, from, to, c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementDTO{
			ID:        m.ID,
			ItemID:    m.ItemID,
			LotID:     m.LotID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reference: m.Reference,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		})
	}
	return c.JSON(out)
}

// ShortageReport godoc
// @Summary      Reporte de faltantes y lotes próximos a vencer
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        expiry_window_days  query  int  false  "ventana de vencimiento en días (default 30)"
// @Success      200  {object}  dto.ShortageReportDTO
// @Router       /api/stock/shortage-report [get]
func (h *StockHandler) ShortageReport(c *fiber.Ctx) error {
	report, err := h.shortage.GenerateShortageReport(c.Context(), c.QueryInt("expiry_window_days", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// parseTimeQuery convierte un query param RFC 3339 en *time.Time (vacío = nil).
func parseTimeQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
