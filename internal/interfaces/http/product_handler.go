package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/onboarding"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
// El alta de producto delega en el caso de uso transaccional de onboarding;
// el resto de lecturas y la gestión de bundles usan ProductUseCase.
type ProductHandler struct {
	onboardUC *onboarding.OnboardProductUseCase
	uc        *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(onboardUC *onboarding.OnboardProductUseCase, uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{onboardUC: onboardUC, uc: uc}
}

// Create godoc
// @Summary      Alta atómica de producto con inventario inicial
// @Description  Crea el producto y su fila de inventario en la bodega indicada dentro de una sola transacción. SKU único por empresa.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.CreateProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.onboardUC.OnboardProduct(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos de la empresa
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite de resultados"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
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

// AddComponent godoc
// @Summary      Agregar componente a un bundle
// @Description  El componente no puede ser a su vez un bundle (no se permiten bundles anidados).
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del bundle"
// @Param        body  body  dto.AddComponentRequest  true  "Componente y cantidad"
// @Success      201   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/components [post]
func (h *ProductHandler) AddComponent(c *fiber.Ctx) error {
	bundleID := c.Params("id")
	if bundleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.AddComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddComponent(c.UserContext(), GetCompanyID(c), bundleID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListComponents godoc
// @Summary      Listar componentes de un bundle
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bundle"
// @Success      200  {array}  dto.ComponentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/components [get]
func (h *ProductHandler) ListComponents(c *fiber.Ctx) error {
	bundleID := c.Params("id")
	if bundleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListComponents(c.UserContext(), GetCompanyID(c), bundleID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
