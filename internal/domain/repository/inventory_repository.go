package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// AlertRow es una fila de inventario enriquecida para el motor de alertas:
// producto + bodega + proveedor opcional, resultado del join en storage.
// Los campos de proveedor son nil cuando el producto no tiene asociación.
type AlertRow struct {
	ProductID         string
	ProductName       string
	SKU               string
	IsBundle          bool
	LowStockThreshold *int64
	WarehouseID       string
	WarehouseName     string
	Quantity          int64
	SupplierID        *string
	SupplierName      *string
	SupplierContact   *string
}

// InventoryRepository define el puerto para la proyección de cantidad actual
// por (producto, bodega).
type InventoryRepository interface {
	// Create inserta la fila de inventario y asigna inventory.ID con el
	// identificador generado por la base (INSERT ... RETURNING).
	Create(ctx context.Context, inventory *entity.Inventory) error
	Get(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error)
	// ApplyDelta ajusta la cantidad con un solo UPDATE condicional atómico:
	// solo aplica si la cantidad resultante es >= 0. Retorna la fila
	// actualizada, o nil si ninguna fila cumplió la condición (fila
	// inexistente o stock insuficiente; el caso de uso distingue ambos).
	ApplyDelta(ctx context.Context, productID, warehouseID string, delta int64) (*entity.Inventory, error)
	// ListForAlert retorna las filas de inventario de los productos candidatos
	// de la empresa, con bodega y proveedor (cero o uno) ya unidos.
	ListForAlert(ctx context.Context, companyID string, productIDs []string) ([]AlertRow, error)
}
