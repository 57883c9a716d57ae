package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Mantiene el invariante del ledger: la
// proyección de cantidad y el log de movimientos nunca divergen.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
		movementRepo repository.InventoryMovementRepository,
	) error) error
}
