package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier y su
// asociación many-to-many con productos. El motor de alertas solo lee.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error)
	LinkProduct(ctx context.Context, supplierID, productID string) error
	UnlinkProduct(ctx context.Context, supplierID, productID string) error
}
