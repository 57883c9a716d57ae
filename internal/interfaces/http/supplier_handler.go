package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// SupplierHandler maneja proveedores y su asociación con productos (protegido).
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar proveedores de la empresa
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite de resultados"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.SupplierListResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LinkProduct godoc
// @Summary      Asociar un producto a un proveedor
// @Tags         suppliers
// @Security     Bearer
// @Param        id          path  string  true  "ID del proveedor"
// @Param        product_id  path  string  true  "ID del producto"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id}/products/{product_id} [post]
func (h *SupplierHandler) LinkProduct(c *fiber.Ctx) error {
	supplierID := c.Params("id")
	productID := c.Params("product_id")
	if supplierID == "" || productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id y product_id son requeridos"})
	}
	if err := h.uc.LinkProduct(c.UserContext(), GetCompanyID(c), supplierID, productID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnlinkProduct godoc
// @Summary      Desasociar un producto de un proveedor
// @Tags         suppliers
// @Security     Bearer
// @Param        id          path  string  true  "ID del proveedor"
// @Param        product_id  path  string  true  "ID del producto"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id}/products/{product_id} [delete]
func (h *SupplierHandler) UnlinkProduct(c *fiber.Ctx) error {
	supplierID := c.Params("id")
	productID := c.Params("product_id")
	if supplierID == "" || productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id y product_id son requeridos"})
	}
	if err := h.uc.UnlinkProduct(c.UserContext(), GetCompanyID(c), supplierID, productID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
