package onboarding

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que producto e inventario inicial
// se confirman como una sola unidad o no quedan en absoluto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
		movementRepo repository.InventoryMovementRepository,
	) error) error
}
