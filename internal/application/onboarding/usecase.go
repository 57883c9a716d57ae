package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// OnboardProductUseCase crea un producto junto con su fila de inventario
// inicial en una sola transacción. Nunca queda un producto sin inventario ni
// un inventario sin producto, ni siquiera ante fallas a mitad de camino.
type OnboardProductUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewOnboardProductUseCase construye el coordinador de alta.
func NewOnboardProductUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *OnboardProductUseCase {
	return &OnboardProductUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// OnboardProduct valida la entrada, pre-chequea el SKU y ejecuta el alta
// atómica. El pre-chequeo de SKU es solo un atajo para el caso común: la
// garantía real bajo escritores concurrentes es la constraint
// UNIQUE(company_id, sku); si la carrera se pierde en el commit, la
// transacción completa se revierte y se retorna IntegrityError.
func (uc *OnboardProductUseCase) OnboardProduct(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	if in.Name == "" {
		return nil, domain.MissingField("name")
	}
	if in.SKU == "" {
		return nil, domain.MissingField("sku")
	}
	if in.WarehouseID == "" {
		return nil, domain.MissingField("warehouse_id")
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}

	// initial_quantity ausente no es error: default 0.
	initialQty := int64(0)
	if in.InitialQuantity != nil {
		initialQty = *in.InitialQuantity
	}
	if initialQty < 0 {
		return nil, &domain.ValidationError{Kind: domain.KindInvalidQuantity, Field: "initial_quantity", Message: "no puede ser negativa"}
	}
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		return nil, &domain.ValidationError{Kind: domain.KindInvalidQuantity, Field: "low_stock_threshold", Message: "no puede ser negativo"}
	}

	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("verificar bodega: %w", err)
	}
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	// Pre-chequeo de SKU: produce un error amable antes de abrir transacción.
	existing, err := uc.productRepo.GetByCompanyAndSKU(ctx, companyID, in.SKU)
	if err != nil {
		return nil, fmt.Errorf("pre-chequeo de sku: %w", err)
	}
	if existing != nil {
		return nil, &domain.ConflictError{Kind: domain.KindDuplicateSKU, Message: "el SKU ya existe en esta empresa"}
	}

	now := time.Now()
	product := &entity.Product{
		CompanyID:         companyID,
		Name:              in.Name,
		SKU:               in.SKU,
		Price:             price,
		IsBundle:          in.IsBundle,
		LowStockThreshold: in.LowStockThreshold,
		CreatedAt:         now,
	}

	// Transacción única: insert del producto (el RETURNING asigna product.ID
	// sin finalizar la tx), insert del inventario referenciándolo, commit.
	// TxRunner hace rollback total si cualquiera de los dos falla.
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
		_ repository.InventoryMovementRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		inv := &entity.Inventory{
			ProductID:   product.ID,
			WarehouseID: in.WarehouseID,
			Quantity:    initialQty,
			UpdatedAt:   now,
		}
		return inventoryRepo.Create(ctx, inv)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSKU) {
			// Carrera perdida: otro escritor insertó el mismo SKU entre el
			// pre-chequeo y el commit. Culpa del cliente, no falla del server.
			return nil, &domain.IntegrityError{Kind: domain.KindRaceLostUniqueness, Message: "el SKU fue registrado por una petición concurrente"}
		}
		return nil, fmt.Errorf("alta de producto: %w", err)
	}

	return &dto.CreateProductResponse{
		Message:         "producto creado",
		ProductID:       product.ID,
		WarehouseID:     in.WarehouseID,
		InitialQuantity: initialQty,
	}, nil
}

// parsePrice convierte el RawMessage del request en decimal exacto.
// Acepta "12.50" (string JSON) o 12.50 (número JSON); en ambos casos se
// conservan los dígitos decimales tal como llegaron, sin pasar por float.
func parsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Decimal{}, domain.MissingField("price")
	}
	s := string(raw)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, &domain.ValidationError{Kind: domain.KindInvalidPrice, Field: "price", Message: "precio malformado"}
	}
	if price.IsNegative() {
		return decimal.Decimal{}, &domain.ValidationError{Kind: domain.KindInvalidPrice, Field: "price", Message: "el precio no puede ser negativo"}
	}
	return price, nil
}
