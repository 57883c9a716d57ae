package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para el log
// append-only de movimientos. Solo Create y lecturas: los movimientos nunca
// se actualizan ni se borran.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
}
