package repository

import (
	"context"
	"errors"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ErrDuplicateSKU lo retorna Create cuando la constraint UNIQUE(company_id, sku)
// rechaza el insert. El adaptador lo distingue de otras fallas de storage para
// que el coordinador pueda clasificar la carrera perdida.
var ErrDuplicateSKU = errors.New("sku duplicado en la empresa")

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create inserta el producto y asigna product.ID con el identificador
	// generado por la base (INSERT ... RETURNING): dentro de una transacción
	// el ID queda disponible antes del commit.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
}
