package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID   = "00000000-0000-0000-0000-00000000000a"
	otherCompanyID  = "00000000-0000-0000-0000-00000000000c"
	testProductID   = "prod-1"
	testWarehouseID = "wh-1"
)

type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func (f *fakeProductRepo) Create(_ context.Context, _ *entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.byID[id], nil
}
func (f *fakeProductRepo) GetByCompanyAndSKU(_ context.Context, _, _ string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListByCompany(_ context.Context, _ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeWarehouseRepo struct {
	byID map[string]*entity.Warehouse
}

func (f *fakeWarehouseRepo) Create(_ context.Context, _ *entity.Warehouse) error { return nil }
func (f *fakeWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	return f.byID[id], nil
}
func (f *fakeWarehouseRepo) ListByCompany(_ context.Context, _ string, _, _ int) ([]*entity.Warehouse, error) {
	return nil, nil
}

// fakeInventoryRepo replica la semántica del UPDATE condicional: ApplyDelta
// solo aplica si la cantidad resultante es >= 0, si no retorna nil.
type fakeInventoryRepo struct {
	rows map[string]*entity.Inventory // clave: productID + "/" + warehouseID
}

func (f *fakeInventoryRepo) key(productID, warehouseID string) string {
	return productID + "/" + warehouseID
}

func (f *fakeInventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	f.rows[f.key(inv.ProductID, inv.WarehouseID)] = inv
	return nil
}

func (f *fakeInventoryRepo) Get(_ context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	return f.rows[f.key(productID, warehouseID)], nil
}

func (f *fakeInventoryRepo) ApplyDelta(_ context.Context, productID, warehouseID string, delta int64) (*entity.Inventory, error) {
	inv, ok := f.rows[f.key(productID, warehouseID)]
	if !ok || inv.Quantity+delta < 0 {
		return nil, nil
	}
	inv.Quantity += delta
	inv.UpdatedAt = time.Now()
	return inv, nil
}

func (f *fakeInventoryRepo) ListForAlert(_ context.Context, _ string, _ []string) ([]repository.AlertRow, error) {
	return nil, nil
}

type fakeMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovementRepo) ListByProduct(_ context.Context, _ string, _, _ *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	// más reciente primero
	var out []*entity.InventoryMovement
	for i := len(f.movements) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.movements[i])
	}
	return out, nil
}

type fakeTxRunner struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	movementRepo  repository.InventoryMovementRepository
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.InventoryMovementRepository,
) error) error {
	return fn(f.productRepo, f.inventoryRepo, f.movementRepo)
}

type fixture struct {
	uc           *inventory.LedgerUseCase
	inventory    *fakeInventoryRepo
	movementRepo *fakeMovementRepo
}

// newFixture deja un producto de testCompanyID con stock inicial en bodega.
func newFixture(initialStock int64) *fixture {
	productRepo := &fakeProductRepo{byID: map[string]*entity.Product{
		testProductID: {ID: testProductID, CompanyID: testCompanyID, Name: "Tornillo 3/8", SKU: "TOR-38"},
	}}
	inventoryRepo := &fakeInventoryRepo{rows: map[string]*entity.Inventory{}}
	inventoryRepo.rows[testProductID+"/"+testWarehouseID] = &entity.Inventory{
		ID:          "inv-1",
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Quantity:    initialStock,
		UpdatedAt:   time.Now(),
	}
	movementRepo := &fakeMovementRepo{}
	warehouseRepo := &fakeWarehouseRepo{byID: map[string]*entity.Warehouse{
		testWarehouseID: {ID: testWarehouseID, CompanyID: testCompanyID, Name: "Bodega Central"},
		"wh-vacia":      {ID: "wh-vacia", CompanyID: testCompanyID, Name: "Bodega Norte"},
		"wh-ajena":      {ID: "wh-ajena", CompanyID: otherCompanyID, Name: "Bodega de otra empresa"},
	}}
	tx := &fakeTxRunner{productRepo: productRepo, inventoryRepo: inventoryRepo, movementRepo: movementRepo}
	return &fixture{
		uc:           inventory.NewLedgerUseCase(tx, productRepo, warehouseRepo, inventoryRepo, movementRepo),
		inventory:    inventoryRepo,
		movementRepo: movementRepo,
	}
}

func adjust(productID, warehouseID string, delta int64, reason string) dto.AdjustStockRequest {
	return dto.AdjustStockRequest{
		ProductID:    productID,
		WarehouseID:  warehouseID,
		ChangeAmount: delta,
		Reason:       reason,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes aceptados: proyección + movimiento en la misma unidad
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_EntradaActualizaYRegistraMovimiento(t *testing.T) {
	f := newFixture(10)

	out, err := f.uc.AdjustStock(context.Background(), testCompanyID, adjust(testProductID, testWarehouseID, 5, "recepción proveedor"))
	require.NoError(t, err)
	assert.Equal(t, int64(15), out.Quantity)

	require.Len(t, f.movementRepo.movements, 1)
	mov := f.movementRepo.movements[0]
	assert.Equal(t, "inv-1", mov.InventoryID)
	assert.Equal(t, int64(5), mov.ChangeAmount)
	assert.Equal(t, "recepción proveedor", mov.Reason)
	assert.NotEmpty(t, mov.ID)
}

func TestAdjustStock_SalidaHastaCeroPermitida(t *testing.T) {
	f := newFixture(10)

	out, err := f.uc.AdjustStock(context.Background(), testCompanyID, adjust(testProductID, testWarehouseID, -10, "venta"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Quantity, "llegar exactamente a cero es válido")
	assert.Len(t, f.movementRepo.movements, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock insuficiente: rechazo sin efectos
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_StockInsuficienteRechazaSinMovimiento(t *testing.T) {
	f := newFixture(10)

	_, err := f.uc.AdjustStock(context.Background(), testCompanyID, adjust(testProductID, testWarehouseID, -11, "venta"))
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.KindInsufficientStock, vErr.Kind)

	inv, _ := f.inventory.Get(context.Background(), testProductID, testWarehouseID)
	assert.Equal(t, int64(10), inv.Quantity, "el rechazo no debe tocar la cantidad")
	assert.Empty(t, f.movementRepo.movements, "el ajuste rechazado no escribe movimiento")
}

func TestAdjustStock_InventarioInexistenteEsNotFound(t *testing.T) {
	f := newFixture(10)

	_, err := f.uc.AdjustStock(context.Background(), testCompanyID, adjust(testProductID, "wh-vacia", -1, "venta"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.movementRepo.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y tenancy
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_DeltaCeroRechazado(t *testing.T) {
	f := newFixture(10)

	_, err := f.uc.AdjustStock(context.Background(), testCompanyID, adjust(testProductID, testWarehouseID, 0, "nada"))
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.KindInvalidQuantity, vErr.Kind)
}

func TestAdjustStock_MotivoRequerido(t *testing.T) {
	f := newFixture(10)

	_, err := f.uc.AdjustStock(context.Background(), testCompanyID, adjust(testProductID, testWarehouseID, 1, ""))
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.KindMissingField, vErr.Kind)
	assert.Equal(t, "reason", vErr.Field)
}

func TestAdjustStock_ProductoDeOtraEmpresaEsForbidden(t *testing.T) {
	f := newFixture(10)

	_, err := f.uc.AdjustStock(context.Background(), otherCompanyID, adjust(testProductID, testWarehouseID, 1, "ajuste"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.movementRepo.movements)
}

func TestAdjustStock_BodegaDeOtraEmpresaEsNotFound(t *testing.T) {
	f := newFixture(10)

	_, err := f.uc.AdjustStock(context.Background(), testCompanyID, adjust(testProductID, "wh-ajena", 1, "ajuste"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.movementRepo.movements, "no se toca el inventario de una bodega ajena")
}

func TestAdjustStock_BodegaInexistenteEsNotFound(t *testing.T) {
	f := newFixture(10)

	_, err := f.uc.AdjustStock(context.Background(), testCompanyID, adjust(testProductID, "wh-desconocida", 1, "ajuste"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.movementRepo.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStock_DevuelveCantidadActual(t *testing.T) {
	f := newFixture(7)

	out, err := f.uc.GetStock(context.Background(), testCompanyID, testProductID, testWarehouseID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.Quantity)
}

func TestGetStock_ProductoDeOtraEmpresaEsNotFound(t *testing.T) {
	f := newFixture(7)

	_, err := f.uc.GetStock(context.Background(), otherCompanyID, testProductID, testWarehouseID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetStock_BodegaDeOtraEmpresaEsNotFound(t *testing.T) {
	f := newFixture(7)

	_, err := f.uc.GetStock(context.Background(), testCompanyID, testProductID, "wh-ajena")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_MasRecientePrimero(t *testing.T) {
	f := newFixture(10)

	_, err := f.uc.AdjustStock(context.Background(), testCompanyID, adjust(testProductID, testWarehouseID, 5, "primera entrada"))
	require.NoError(t, err)
	_, err = f.uc.AdjustStock(context.Background(), testCompanyID, adjust(testProductID, testWarehouseID, -3, "venta"))
	require.NoError(t, err)

	out, err := f.uc.ListMovements(context.Background(), testCompanyID, testProductID, nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "venta", out.Items[0].Reason, "el movimiento más reciente va primero")
	assert.Equal(t, int64(-3), out.Items[0].ChangeAmount)
	assert.Equal(t, "primera entrada", out.Items[1].Reason)
}
