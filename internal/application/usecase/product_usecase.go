package usecase

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase lecturas de catálogo y composición de bundles.
// El alta de productos es del coordinador de onboarding (alta atómica con
// inventario inicial), no de este caso de uso.
type ProductUseCase struct {
	repo       repository.ProductRepository
	bundleRepo repository.ProductBundleRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, bundleRepo repository.ProductBundleRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, bundleRepo: bundleRepo}
}

// GetByID obtiene un producto del catálogo; solo si pertenece a la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos de la empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// AddComponent agrega un componente a un bundle. Reglas: el padre debe ser
// bundle, el componente debe existir en la misma empresa y no puede ser
// bundle a su vez (anidamiento no permitido), cantidad >= 1.
func (uc *ProductUseCase) AddComponent(ctx context.Context, companyID, bundleID string, in dto.AddComponentRequest) (*dto.ComponentResponse, error) {
	if in.ComponentID == "" {
		return nil, domain.MissingField("component_id")
	}
	if in.Quantity < 1 {
		return nil, &domain.ValidationError{Kind: domain.KindInvalidQuantity, Field: "quantity", Message: "la cantidad mínima es 1"}
	}
	bundle, err := uc.repo.GetByID(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	if bundle == nil || bundle.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if !bundle.IsBundle {
		return nil, &domain.ValidationError{Kind: domain.KindNestedBundle, Field: "bundle_id", Message: "el producto no es un bundle"}
	}
	component, err := uc.repo.GetByID(ctx, in.ComponentID)
	if err != nil {
		return nil, err
	}
	if component == nil || component.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if component.IsBundle {
		return nil, &domain.ValidationError{Kind: domain.KindNestedBundle, Field: "component_id", Message: "un bundle no puede contener otro bundle"}
	}
	bc := &entity.BundleComponent{
		BundleID:    bundleID,
		ComponentID: in.ComponentID,
		Quantity:    in.Quantity,
	}
	if err := uc.bundleRepo.AddComponent(ctx, bc); err != nil {
		return nil, err
	}
	return &dto.ComponentResponse{BundleID: bc.BundleID, ComponentID: bc.ComponentID, Quantity: bc.Quantity}, nil
}

// ListComponents lista los componentes de un bundle.
func (uc *ProductUseCase) ListComponents(ctx context.Context, companyID, bundleID string) ([]dto.ComponentResponse, error) {
	bundle, err := uc.repo.GetByID(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	if bundle == nil || bundle.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.bundleRepo.ListComponents(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ComponentResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.ComponentResponse{BundleID: c.BundleID, ComponentID: c.ComponentID, Quantity: c.Quantity})
	}
	return items, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		CompanyID:         p.CompanyID,
		Name:              p.Name,
		SKU:               p.SKU,
		Price:             p.Price,
		IsBundle:          p.IsBundle,
		LowStockThreshold: p.LowStockThreshold,
		CreatedAt:         p.CreatedAt,
	}
}
