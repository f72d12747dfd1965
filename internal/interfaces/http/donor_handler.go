package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/donaria/donaciones-api/internal/application/dto"
	"github.com/donaria/donaciones-api/internal/application/usecase"
	"github.com/donaria/donaciones-api/internal/domain"
)

// DonorHandler maneja el CRUD de donantes.
type DonorHandler struct {
	uc *usecase.DonorUseCase
}

// NewDonorHandler construye el handler de donantes.
func NewDonorHandler(uc *usecase.DonorUseCase) *DonorHandler {
	return &DonorHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar donante
// @Tags         donors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDonorRequest  true  "name, doc_type, doc_number"
// @Success      201   {object}  dto.DonorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/donors [post]
func (h *DonorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDonorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	donor, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(donor)
}

// GetByID godoc
// @Summary      Consultar un donante
// @Tags         donors
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del donante"
// @Success      200  {object}  dto.DonorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/donors/{id} [get]
func (h *DonorHandler) GetByID(c *fiber.Ctx) error {
	donor, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if donor == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(donor)
}

// List godoc
// @Summary      Listar donantes
// @Tags         donors
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de resultados (default 50)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.DonorResponse
// @Router       /api/donors [get]
func (h *DonorHandler) List(c *fiber.Ctx) error {
	donors, err := h.uc.List(c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(donors)
}
