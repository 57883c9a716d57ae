package onboarding_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/onboarding"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID   = "00000000-0000-0000-0000-00000000000a"
	testWarehouseID = "00000000-0000-0000-0000-00000000000b"
	otherCompanyID  = "00000000-0000-0000-0000-00000000000c"
)

type fakeProductRepo struct {
	bySKU     map[string]*entity.Product // clave: companyID + "/" + sku
	createErr error
	created   []*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{bySKU: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = fmt.Sprintf("prod-%d", len(f.created)+1)
	f.created = append(f.created, p)
	f.bySKU[p.CompanyID+"/"+p.SKU] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range f.created {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	return f.bySKU[companyID+"/"+sku], nil
}

func (f *fakeProductRepo) ListByCompany(_ context.Context, _ string, _, _ int) ([]*entity.Product, error) {
	return f.created, nil
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

type fakeInventoryRepo struct {
	createErr error
	created   []*entity.Inventory
}

func (f *fakeInventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	if f.createErr != nil {
		return f.createErr
	}
	inv.ID = fmt.Sprintf("inv-%d", len(f.created)+1)
	f.created = append(f.created, inv)
	return nil
}

func (f *fakeInventoryRepo) Get(_ context.Context, _, _ string) (*entity.Inventory, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) ApplyDelta(_ context.Context, _, _ string, _ int64) (*entity.Inventory, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) ListForAlert(_ context.Context, _ string, _ []string) ([]repository.AlertRow, error) {
	return nil, nil
}

// fakeTxRunner simula el rollback: si fn falla, revierte los efectos sobre
// los fakes (descartando lo creado durante la ejecución de fn).
type fakeTxRunner struct {
	productRepo   *fakeProductRepo
	inventoryRepo *fakeInventoryRepo
	movementRepo  repository.InventoryMovementRepository
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.InventoryMovementRepository,
) error) error {
	productsBefore := len(f.productRepo.created)
	inventoryBefore := len(f.inventoryRepo.created)
	if err := fn(f.productRepo, f.inventoryRepo, f.movementRepo); err != nil {
		// rollback: descartar lo insertado dentro de la tx fallida
		for _, p := range f.productRepo.created[productsBefore:] {
			delete(f.productRepo.bySKU, p.CompanyID+"/"+p.SKU)
		}
		f.productRepo.created = f.productRepo.created[:productsBefore]
		f.inventoryRepo.created = f.inventoryRepo.created[:inventoryBefore]
		return err
	}
	return nil
}

type fixture struct {
	uc            *onboarding.OnboardProductUseCase
	productRepo   *fakeProductRepo
	inventoryRepo *fakeInventoryRepo
}

func newFixture() *fixture {
	productRepo := newFakeProductRepo()
	inventoryRepo := &fakeInventoryRepo{}
	warehouseRepo := &fakeWarehouseRepo{byID: map[string]*entity.Warehouse{
		testWarehouseID: {ID: testWarehouseID, CompanyID: testCompanyID, Name: "Bodega Central"},
	}}
	tx := &fakeTxRunner{productRepo: productRepo, inventoryRepo: inventoryRepo, movementRepo: nil}
	return &fixture{
		uc:            onboarding.NewOnboardProductUseCase(tx, productRepo, warehouseRepo),
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

func validRequest() dto.CreateProductRequest {
	qty := int64(10)
	return dto.CreateProductRequest{
		Name:            "Tornillo 3/8",
		SKU:             "TOR-38",
		Price:           json.RawMessage(`"12.50"`),
		WarehouseID:     testWarehouseID,
		InitialQuantity: &qty,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta exitosa
// ──────────────────────────────────────────────────────────────────────────────

func TestOnboardProduct_AltaExitosaCreaProductoEInventario(t *testing.T) {
	f := newFixture()

	out, err := f.uc.OnboardProduct(context.Background(), testCompanyID, validRequest())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.NotEmpty(t, out.ProductID)
	assert.Equal(t, testWarehouseID, out.WarehouseID)
	assert.Equal(t, int64(10), out.InitialQuantity)

	require.Len(t, f.productRepo.created, 1)
	require.Len(t, f.inventoryRepo.created, 1)
	inv := f.inventoryRepo.created[0]
	assert.Equal(t, out.ProductID, inv.ProductID, "el inventario debe referenciar el ID generado del producto")
	assert.Equal(t, int64(10), inv.Quantity)
}

func TestOnboardProduct_CantidadInicialAusenteEsCero(t *testing.T) {
	f := newFixture()
	in := validRequest()
	in.InitialQuantity = nil

	out, err := f.uc.OnboardProduct(context.Background(), testCompanyID, in)
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.InitialQuantity)
	require.Len(t, f.inventoryRepo.created, 1)
	assert.Equal(t, int64(0), f.inventoryRepo.created[0].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Precio: decimal exacto, string o número
// ──────────────────────────────────────────────────────────────────────────────

func TestOnboardProduct_PrecioStringYNumeroSonEquivalentes(t *testing.T) {
	f := newFixture()

	inStr := validRequest()
	inStr.Price = json.RawMessage(`"12.50"`)
	_, err := f.uc.OnboardProduct(context.Background(), testCompanyID, inStr)
	require.NoError(t, err)

	inNum := validRequest()
	inNum.SKU = "TOR-12"
	inNum.Price = json.RawMessage(`12.50`)
	_, err = f.uc.OnboardProduct(context.Background(), testCompanyID, inNum)
	require.NoError(t, err)

	require.Len(t, f.productRepo.created, 2)
	assert.True(t, f.productRepo.created[0].Price.Equal(f.productRepo.created[1].Price),
		"el precio como string y como número debe producir el mismo decimal exacto")
	assert.Equal(t, "12.5", f.productRepo.created[0].Price.String())
}

func TestOnboardProduct_PrecioMalformadoRechazado(t *testing.T) {
	f := newFixture()
	in := validRequest()
	in.Price = json.RawMessage(`"doce con cincuenta"`)

	_, err := f.uc.OnboardProduct(context.Background(), testCompanyID, in)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.KindInvalidPrice, vErr.Kind)
}

func TestOnboardProduct_PrecioNegativoRechazado(t *testing.T) {
	f := newFixture()
	in := validRequest()
	in.Price = json.RawMessage(`-5`)

	_, err := f.uc.OnboardProduct(context.Background(), testCompanyID, in)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.KindInvalidPrice, vErr.Kind)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de campos requeridos
// ──────────────────────────────────────────────────────────────────────────────

func TestOnboardProduct_CamposRequeridos(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.CreateProductRequest)
		field  string
	}{
		{"sin name", func(in *dto.CreateProductRequest) { in.Name = "" }, "name"},
		{"sin sku", func(in *dto.CreateProductRequest) { in.SKU = "" }, "sku"},
		{"sin warehouse_id", func(in *dto.CreateProductRequest) { in.WarehouseID = "" }, "warehouse_id"},
		{"sin price", func(in *dto.CreateProductRequest) { in.Price = nil }, "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			in := validRequest()
			tc.mutate(&in)

			_, err := f.uc.OnboardProduct(context.Background(), testCompanyID, in)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, domain.KindMissingField, vErr.Kind)
			assert.Equal(t, tc.field, vErr.Field)
			assert.Empty(t, f.productRepo.created, "la validación debe rechazar antes de tocar storage")
		})
	}
}

func TestOnboardProduct_CantidadInicialNegativaRechazada(t *testing.T) {
	f := newFixture()
	in := validRequest()
	qty := int64(-3)
	in.InitialQuantity = &qty

	_, err := f.uc.OnboardProduct(context.Background(), testCompanyID, in)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.KindInvalidQuantity, vErr.Kind)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tenancy y duplicados
// ──────────────────────────────────────────────────────────────────────────────

func TestOnboardProduct_BodegaDeOtraEmpresaEsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.OnboardProduct(context.Background(), otherCompanyID, validRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.productRepo.created)
}

func TestOnboardProduct_SKUDuplicadoEsConflicto(t *testing.T) {
	f := newFixture()

	_, err := f.uc.OnboardProduct(context.Background(), testCompanyID, validRequest())
	require.NoError(t, err)

	_, err = f.uc.OnboardProduct(context.Background(), testCompanyID, validRequest())
	var cErr *domain.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, domain.KindDuplicateSKU, cErr.Kind)
	assert.Len(t, f.productRepo.created, 1, "el duplicado no debe crear un segundo producto")
}

func TestOnboardProduct_MismoSKUEnOtraEmpresaPermitido(t *testing.T) {
	f := newFixture()
	f.uc = onboarding.NewOnboardProductUseCase(
		&fakeTxRunner{productRepo: f.productRepo, inventoryRepo: f.inventoryRepo},
		f.productRepo,
		&fakeWarehouseRepo{byID: map[string]*entity.Warehouse{
			testWarehouseID: {ID: testWarehouseID, CompanyID: testCompanyID},
			"wh-2":          {ID: "wh-2", CompanyID: otherCompanyID},
		}},
	)

	_, err := f.uc.OnboardProduct(context.Background(), testCompanyID, validRequest())
	require.NoError(t, err)

	in := validRequest()
	in.WarehouseID = "wh-2"
	_, err = f.uc.OnboardProduct(context.Background(), otherCompanyID, in)
	require.NoError(t, err, "el SKU es único por empresa, no global")
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad y carreras
// ──────────────────────────────────────────────────────────────────────────────

func TestOnboardProduct_FallaDeInventarioRevierteElProducto(t *testing.T) {
	f := newFixture()
	f.inventoryRepo.createErr = errors.New("deadlock detectado")

	_, err := f.uc.OnboardProduct(context.Background(), testCompanyID, validRequest())
	require.Error(t, err)

	assert.Empty(t, f.productRepo.created, "el rollback no debe dejar un producto huérfano")
	assert.Empty(t, f.inventoryRepo.created)
}

func TestOnboardProduct_CarreraPerdidaEsIntegrityError(t *testing.T) {
	f := newFixture()
	// Simula la carrera: el pre-chequeo no ve el SKU, pero el INSERT choca
	// contra la constraint UNIQUE porque otro escritor llegó primero.
	f.productRepo.createErr = repository.ErrDuplicateSKU

	_, err := f.uc.OnboardProduct(context.Background(), testCompanyID, validRequest())
	var iErr *domain.IntegrityError
	require.ErrorAs(t, err, &iErr)
	assert.Equal(t, domain.KindRaceLostUniqueness, iErr.Kind)
	assert.Empty(t, f.inventoryRepo.created, "tras perder la carrera no debe quedar estado parcial")
}
