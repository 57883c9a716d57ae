package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// LedgerUseCase opera el ledger de inventario: ajuste de cantidad por delta
// con motivo, consulta de stock actual e historial de movimientos.
// Cada ajuste aceptado actualiza la proyección y agrega exactamente un
// movimiento, en la misma transacción. Política de stock negativo: se
// rechaza (InsufficientStock) y el ajuste rechazado no escribe movimiento.
type LedgerUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	inventoryRepo repository.InventoryRepository
	movementRepo  repository.InventoryMovementRepository
}

// NewLedgerUseCase construye el caso de uso del ledger.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.InventoryMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		inventoryRepo: inventoryRepo,
		movementRepo:  movementRepo,
	}
}

// AdjustStock aplica un delta con signo sobre (producto, bodega).
// La serialización entre llamadores concurrentes la da el UPDATE condicional
// atómico en storage (una sola ida por mutación), no un mutex en proceso:
// un lock en memoria no sirve con varias instancias del servicio.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, companyID string, in dto.AdjustStockRequest) (*dto.StockResponse, error) {
	if in.ProductID == "" {
		return nil, domain.MissingField("product_id")
	}
	if in.WarehouseID == "" {
		return nil, domain.MissingField("warehouse_id")
	}
	if in.Reason == "" {
		return nil, domain.MissingField("reason")
	}
	if in.ChangeAmount == 0 {
		return nil, &domain.ValidationError{Kind: domain.KindInvalidQuantity, Field: "change_amount", Message: "el delta no puede ser cero"}
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("verificar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("verificar bodega: %w", err)
	}
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	var updated *entity.Inventory
	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
		movementRepo repository.InventoryMovementRepository,
	) error {
		inv, err := inventoryRepo.ApplyDelta(ctx, in.ProductID, in.WarehouseID, in.ChangeAmount)
		if err != nil {
			return err
		}
		if inv == nil {
			// Ninguna fila cumplió la condición: o no existe inventario para
			// el par, o el delta dejaría la cantidad bajo cero.
			current, err := inventoryRepo.Get(ctx, in.ProductID, in.WarehouseID)
			if err != nil {
				return err
			}
			if current == nil {
				return domain.ErrNotFound
			}
			return &domain.ValidationError{Kind: domain.KindInsufficientStock, Field: "change_amount", Message: "el ajuste dejaría el stock negativo"}
		}
		mov := &entity.InventoryMovement{
			ID:           uuid.New().String(),
			InventoryID:  inv.ID,
			ChangeAmount: in.ChangeAmount,
			Reason:       in.Reason,
			CreatedAt:    time.Now(),
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.StockResponse{
		ProductID:   updated.ProductID,
		WarehouseID: updated.WarehouseID,
		Quantity:    updated.Quantity,
		UpdatedAt:   updated.UpdatedAt,
	}, nil
}

// GetStock consulta la cantidad actual de un producto en una bodega.
func (uc *LedgerUseCase) GetStock(ctx context.Context, companyID, productID, warehouseID string) (*dto.StockResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("verificar producto: %w", err)
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("verificar bodega: %w", err)
	}
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.inventoryRepo.Get(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.StockResponse{
		ProductID:   inv.ProductID,
		WarehouseID: inv.WarehouseID,
		Quantity:    inv.Quantity,
		UpdatedAt:   inv.UpdatedAt,
	}, nil
}

// ListMovements devuelve el historial de auditoría de un producto, más
// reciente primero, con rango de fechas y paginación.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, companyID, productID string, from, to *time.Time, page dto.PageRequest) (*dto.MovementListResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("verificar producto: %w", err)
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := uc.movementRepo.ListByProduct(ctx, productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:           m.ID,
			InventoryID:  m.InventoryID,
			ChangeAmount: m.ChangeAmount,
			Reason:       m.Reason,
			CreatedAt:    m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
