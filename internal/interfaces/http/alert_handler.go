package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/alerts"
)

// AlertHandler expone las alertas de stock bajo (protegido).
type AlertHandler struct {
	uc *alerts.LowStockUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.LowStockUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// LowStock godoc
// @Summary      Alertas de stock bajo
// @Description  Productos con ventas recientes cuyo stock está estrictamente por debajo de su umbral, con proveedor sugerido y estimación de días hasta quiebre.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockAlertsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/alerts/low-stock [get]
func (h *AlertHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStockAlerts(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
