package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/donaria/donaciones-api/internal/application/donation"
	"github.com/donaria/donaciones-api/internal/application/dto"
	"github.com/donaria/donaciones-api/internal/domain"
)

// DonationHandler maneja las donaciones y su certificado PDF.
type DonationHandler struct {
	createUC  *donation.CreateDonationUseCase
	receiptUC *donation.ReceiptUseCase
}

// NewDonationHandler construye el handler de donaciones.
func NewDonationHandler(createUC *donation.CreateDonationUseCase, receiptUC *donation.ReceiptUseCase) *DonationHandler {
	return &DonationHandler{createUC: createUC, receiptUC: receiptUC}
}

// Create godoc
// @Summary      Registrar donación (un lote por línea)
// @Description  Crea la donación y ejecuta el intake de cada línea en una sola
//
//	transacción: si una línea falla no queda nada registrado.
//
// @Tags         donations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDonationRequest  true  "donor_id, lines"
// @Success      201   {object}  dto.DonationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/donations [post]
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDonationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.createUC.CreateDonation(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Consultar una donación con sus líneas
// @Tags         donations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la donación"
// @Success      200  {object}  dto.DonationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/donations/{id} [get]
func (h *DonationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.createUC.GetDonation(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(out)
}

// GetReceipt godoc
// @Summary      Certificado de donación en PDF
// @Tags         donations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la donación"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/donations/{id}/receipt [get]
func (h *DonationHandler) GetReceipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdfBytes, err := h.receiptUC.GenerateReceipt(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="certificado-%s.pdf"`, id))
	return c.Send(pdfBytes)
}
