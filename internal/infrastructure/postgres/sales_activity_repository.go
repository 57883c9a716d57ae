package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/alerts"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.SalesActivityRepository = (*SalesActivityRepo)(nil)
var _ alerts.SalesFeed = (*SalesActivityRepo)(nil)

// SalesActivityRepo adaptador local del feed de ventas: ingesta hechos en la
// tabla sales_activity y sirve la selección de candidatos para alertas.
type SalesActivityRepo struct {
	q Querier
}

// NewSalesActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesActivityRepository(q Querier) *SalesActivityRepo {
	return &SalesActivityRepo{q: q}
}

// RecordSale persiste un hecho de venta.
func (r *SalesActivityRepo) RecordSale(ctx context.Context, sale *entity.SalesActivity) error {
	query := `
		INSERT INTO sales_activity (sale_id, product_id, quantity, sold_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, sale.ID, sale.ProductID, sale.Quantity, sale.SoldAt)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// RecentlySoldProductIDs productos distintos de la empresa con al menos una
// venta desde `since`.
func (r *SalesActivityRepo) RecentlySoldProductIDs(ctx context.Context, companyID string, since time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT sa.product_id
		FROM sales_activity sa
		JOIN products p ON p.product_id = sa.product_id
		WHERE p.company_id = $1 AND sa.sold_at >= $2`
	rows, err := r.q.Query(ctx, query, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("recently sold products: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
