package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/donaria/donaciones-api/internal/application/dto"
	"github.com/donaria/donaciones-api/internal/application/usecase"
	"github.com/donaria/donaciones-api/internal/domain"
)

// BeneficiaryHandler maneja el CRUD de beneficiarios.
type BeneficiaryHandler struct {
	uc *usecase.BeneficiaryUseCase
}

// NewBeneficiaryHandler construye el handler de beneficiarios.
func NewBeneficiaryHandler(uc *usecase.BeneficiaryUseCase) *BeneficiaryHandler {
	return &BeneficiaryHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar beneficiario
// @Tags         beneficiaries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBeneficiaryRequest  true  "name, doc_type, doc_number, family_size"
// @Success      201   {object}  dto.BeneficiaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/beneficiaries [post]
func (h *BeneficiaryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBeneficiaryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

// GetByID godoc
// @Summary      Consultar un beneficiario
// @Tags         beneficiaries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del beneficiario"
// @Success      200  {object}  dto.BeneficiaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/beneficiaries/{id} [get]
func (h *BeneficiaryHandler) GetByID(c *fiber.Ctx) error {
	b, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if b == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(b)
}

// List godoc
// @Summary      Listar beneficiarios
// @Tags         beneficiaries
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de resultados (default 50)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.BeneficiaryResponse
// @Router       /api/beneficiaries [get]
func (h *BeneficiaryHandler) List(c *fiber.Ctx) error {
	bs, err := h.uc.List(c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bs)
}
