package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductBundleRepository = (*ProductBundleRepo)(nil)

// ProductBundleRepo implementación del puerto ProductBundleRepository.
type ProductBundleRepo struct {
	q Querier
}

// NewProductBundleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductBundleRepository(q Querier) *ProductBundleRepo {
	return &ProductBundleRepo{q: q}
}

// AddComponent agrega un componente al bundle; si ya existe actualiza la cantidad.
func (r *ProductBundleRepo) AddComponent(ctx context.Context, component *entity.BundleComponent) error {
	query := `
		INSERT INTO product_bundles (bundle_id, component_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (bundle_id, component_id)
		DO UPDATE SET quantity = EXCLUDED.quantity`
	_, err := r.q.Exec(ctx, query, component.BundleID, component.ComponentID, component.Quantity)
	if err != nil {
		return fmt.Errorf("add bundle component: %w", err)
	}
	return nil
}

// ListComponents lista los componentes de un bundle.
func (r *ProductBundleRepo) ListComponents(ctx context.Context, bundleID string) ([]*entity.BundleComponent, error) {
	query := `
		SELECT bundle_id, component_id, quantity
		FROM product_bundles WHERE bundle_id = $1`
	rows, err := r.q.Query(ctx, query, bundleID)
	if err != nil {
		return nil, fmt.Errorf("list bundle components: %w", err)
	}
	defer rows.Close()
	var list []*entity.BundleComponent
	for rows.Next() {
		var c entity.BundleComponent
		if err := rows.Scan(&c.BundleID, &c.ComponentID, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan bundle component: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
