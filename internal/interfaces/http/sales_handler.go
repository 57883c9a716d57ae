package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// SalesHandler registra actividad de ventas para el motor de alertas (protegido).
type SalesHandler struct {
	uc *usecase.SalesUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *usecase.SalesUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar una venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Venta"
// @Success      201   {object}  dto.RecordSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Record(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordSale(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
