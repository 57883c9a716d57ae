package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (supplier_id, company_id, name, contact_info)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, supplier.ID, supplier.CompanyID, supplier.Name, supplier.ContactInfo)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `
		SELECT supplier_id, company_id, name, contact_info
		FROM suppliers WHERE supplier_id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.CompanyID, &s.Name, &s.ContactInfo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// ListByCompany lista proveedores por empresa con paginación.
func (r *SupplierRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT supplier_id, company_id, name, contact_info
		FROM suppliers WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.ContactInfo); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// LinkProduct asocia proveedor y producto. Idempotente: la asociación ya
// existente no es error.
func (r *SupplierRepo) LinkProduct(ctx context.Context, supplierID, productID string) error {
	query := `
		INSERT INTO supplier_products (supplier_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (supplier_id, product_id) DO NOTHING`
	_, err := r.q.Exec(ctx, query, supplierID, productID)
	if err != nil {
		return fmt.Errorf("link supplier product: %w", err)
	}
	return nil
}

// UnlinkProduct elimina la asociación proveedor-producto.
func (r *SupplierRepo) UnlinkProduct(ctx context.Context, supplierID, productID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM supplier_products WHERE supplier_id = $1 AND product_id = $2`,
		supplierID, productID,
	)
	if err != nil {
		return fmt.Errorf("unlink supplier product: %w", err)
	}
	return nil
}
