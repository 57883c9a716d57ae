package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// SupplierUseCase casos de uso para proveedores y su asociación con productos.
type SupplierUseCase struct {
	repo        repository.SupplierRepository
	productRepo repository.ProductRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, productRepo repository.ProductRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, productRepo: productRepo}
}

// Create crea un proveedor para la empresa.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.MissingField("name")
	}
	supplier := &entity.Supplier{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        in.Name,
		ContactInfo: in.ContactInfo,
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores de la empresa con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// LinkProduct asocia un proveedor con un producto de la misma empresa.
func (uc *SupplierUseCase) LinkProduct(ctx context.Context, companyID, supplierID, productID string) error {
	supplier, err := uc.repo.GetByID(ctx, supplierID)
	if err != nil {
		return err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil || product.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.LinkProduct(ctx, supplierID, productID)
}

// UnlinkProduct elimina la asociación proveedor-producto.
func (uc *SupplierUseCase) UnlinkProduct(ctx context.Context, companyID, supplierID, productID string) error {
	supplier, err := uc.repo.GetByID(ctx, supplierID)
	if err != nil {
		return err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.UnlinkProduct(ctx, supplierID, productID)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		Name:        s.Name,
		ContactInfo: s.ContactInfo,
	}
}
