package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

// InventoryHandler maneja el libro de inventario: ajustes de stock,
// consulta de cantidad actual e historial de movimientos (protegido).
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// AdjustStock godoc
// @Summary      Ajustar stock de un producto en una bodega
// @Description  Aplica un delta con signo. Si dejaría el stock negativo, rechaza con 409 y no escribe movimiento.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Ajuste"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AdjustStock(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetStock godoc
// @Summary      Consultar stock actual
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true  "ID del producto"
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	out, err := h.uc.GetStock(c.UserContext(), GetCompanyID(c), productID, warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Description  Movimientos en orden cronológico descendente, con filtro opcional por rango de fechas (RFC3339).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "ID del producto"
// @Param        from        query  string  false  "Fecha inicial (RFC3339)"
// @Param        to          query  string  false  "Fecha final (RFC3339)"
// @Param        limit       query  int     false  "Límite de resultados"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "product_id es requerido"})
	}
	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from debe ser RFC3339"})
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to debe ser RFC3339"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.ListMovements(c.UserContext(), GetCompanyID(c), productID, from, to, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

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
