package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL
// (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create inserta la fila de inventario; RETURNING asigna inventory.ID.
func (r *InventoryRepo) Create(ctx context.Context, inventory *entity.Inventory) error {
	query := `
		INSERT INTO inventory (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING inventory_id`
	err := r.q.QueryRow(ctx, query,
		inventory.ProductID, inventory.WarehouseID, inventory.Quantity, inventory.UpdatedAt,
	).Scan(&inventory.ID)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// Get obtiene la fila de inventario de un producto en una bodega.
func (r *InventoryRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	query := `
		SELECT inventory_id, product_id, warehouse_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2`
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// ApplyDelta ajusta la cantidad con un único UPDATE condicional: la fila se
// serializa en storage (row-level), sin lock en la aplicación, y el delta
// solo se aplica si la cantidad resultante no queda negativa. Retorna nil
// cuando ninguna fila cumplió la condición.
func (r *InventoryRepo) ApplyDelta(ctx context.Context, productID, warehouseID string, delta int64) (*entity.Inventory, error) {
	query := `
		UPDATE inventory
		SET quantity = quantity + $3, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2 AND quantity + $3 >= 0
		RETURNING inventory_id, product_id, warehouse_id, quantity, updated_at`
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID, warehouseID, delta).Scan(
		&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("apply inventory delta: %w", err)
	}
	return &inv, nil
}

// ListForAlert filas de inventario de los productos candidatos de la empresa,
// con bodega y proveedor (cero o uno, vía LATERAL) ya unidos. El umbral viaja
// como nullable: el motor decide qué hacer con productos sin umbral.
func (r *InventoryRepo) ListForAlert(ctx context.Context, companyID string, productIDs []string) ([]repository.AlertRow, error) {
	query := `
		SELECT
			p.product_id, p.name, p.sku, p.is_bundle, p.low_stock_threshold,
			i.warehouse_id, w.name, i.quantity,
			sup.supplier_id, sup.name, sup.contact_info
		FROM inventory i
		JOIN products p   ON p.product_id = i.product_id
		JOIN warehouses w ON w.warehouse_id = i.warehouse_id
		LEFT JOIN LATERAL (
			SELECT s.supplier_id, s.name, s.contact_info
			FROM supplier_products sp
			JOIN suppliers s ON s.supplier_id = sp.supplier_id
			WHERE sp.product_id = p.product_id
			ORDER BY s.name
			LIMIT 1
		) sup ON TRUE
		WHERE p.company_id = $1 AND p.product_id = ANY($2)`
	rows, err := r.q.Query(ctx, query, companyID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list inventory for alert: %w", err)
	}
	defer rows.Close()
	var list []repository.AlertRow
	for rows.Next() {
		var row repository.AlertRow
		if err := rows.Scan(
			&row.ProductID, &row.ProductName, &row.SKU, &row.IsBundle, &row.LowStockThreshold,
			&row.WarehouseID, &row.WarehouseName, &row.Quantity,
			&row.SupplierID, &row.SupplierName, &row.SupplierContact,
		); err != nil {
			return nil, fmt.Errorf("scan alert row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
