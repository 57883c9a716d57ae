package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. El RETURNING asigna product.ID con el
// identificador generado por la base: dentro de una tx queda disponible antes
// del commit. Una violación de UNIQUE(company_id, sku) se mapea a
// repository.ErrDuplicateSKU para que el coordinador clasifique la carrera.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (company_id, name, sku, price, is_bundle, low_stock_threshold, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING product_id`
	err := r.q.QueryRow(ctx, query,
		product.CompanyID, product.Name, product.SKU, product.Price,
		product.IsBundle, product.LowStockThreshold, product.CreatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateSKU
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT product_id, company_id, name, sku, price, is_bundle, low_stock_threshold, created_at
		FROM products WHERE product_id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.SKU, &p.Price, &p.IsBundle, &p.LowStockThreshold, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByCompanyAndSKU obtiene un producto por empresa y SKU.
func (r *ProductRepo) GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error) {
	query := `
		SELECT product_id, company_id, name, sku, price, is_bundle, low_stock_threshold, created_at
		FROM products WHERE company_id = $1 AND sku = $2`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, companyID, sku).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.SKU, &p.Price, &p.IsBundle, &p.LowStockThreshold, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return &p, nil
}

// ListByCompany lista productos por empresa con paginación.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT product_id, company_id, name, sku, price, is_bundle, low_stock_threshold, created_at
		FROM products WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.SKU, &p.Price, &p.IsBundle, &p.LowStockThreshold, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
