package alerts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/alerts"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "00000000-0000-0000-0000-00000000000a"

type fakeFeed struct {
	productIDs []string
	gotSince   time.Time
}

func (f *fakeFeed) RecentlySoldProductIDs(_ context.Context, _ string, since time.Time) ([]string, error) {
	f.gotSince = since
	return f.productIDs, nil
}

type fakeInventoryRepo struct {
	rows          []repository.AlertRow
	gotCandidates []string
}

func (f *fakeInventoryRepo) Create(_ context.Context, _ *entity.Inventory) error { return nil }
func (f *fakeInventoryRepo) Get(_ context.Context, _, _ string) (*entity.Inventory, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) ApplyDelta(_ context.Context, _, _ string, _ int64) (*entity.Inventory, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) ListForAlert(_ context.Context, _ string, productIDs []string) ([]repository.AlertRow, error) {
	f.gotCandidates = productIDs
	// solo filas de productos candidatos, como haría el ANY($2) en SQL
	candidates := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		candidates[id] = true
	}
	var out []repository.AlertRow
	for _, row := range f.rows {
		if candidates[row.ProductID] {
			out = append(out, row)
		}
	}
	return out, nil
}

func int64Ptr(n int64) *int64 { return &n }
func strPtr(s string) *string { return &s }

func alertRow(productID string, qty, threshold int64) repository.AlertRow {
	return repository.AlertRow{
		ProductID:         productID,
		ProductName:       "Producto " + productID,
		SKU:               "SKU-" + productID,
		LowStockThreshold: int64Ptr(threshold),
		WarehouseID:       "wh-1",
		WarehouseName:     "Bodega Central",
		Quantity:          qty,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtros del pipeline
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockAlerts_SinVentasRecientesNoHayAlertas(t *testing.T) {
	feed := &fakeFeed{productIDs: nil}
	repo := &fakeInventoryRepo{rows: []repository.AlertRow{alertRow("p1", 1, 5)}}
	uc := alerts.NewLowStockUseCase(feed, repo, 30)

	out, err := uc.LowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Empty(t, out.Alerts, "sin candidatos el pipeline corta temprano")
	assert.Equal(t, 0, out.TotalAlerts)
	assert.Nil(t, repo.gotCandidates, "sin candidatos no se debe consultar inventario")
}

func TestLowStockAlerts_ProductoSinVentasQuedaFueraAunqueBajoUmbral(t *testing.T) {
	feed := &fakeFeed{productIDs: []string{"p1"}}
	repo := &fakeInventoryRepo{rows: []repository.AlertRow{
		alertRow("p1", 2, 5),
		alertRow("p2", 0, 5), // bajo umbral pero sin ventas recientes
	}}
	uc := alerts.NewLowStockUseCase(feed, repo, 30)

	out, err := uc.LowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Len(t, out.Alerts, 1)
	assert.Equal(t, "p1", out.Alerts[0].ProductID)
}

func TestLowStockAlerts_UmbralEsEstrictamenteMenor(t *testing.T) {
	feed := &fakeFeed{productIDs: []string{"igual", "menor"}}
	repo := &fakeInventoryRepo{rows: []repository.AlertRow{
		alertRow("igual", 5, 5), // stock == umbral: no alerta
		alertRow("menor", 4, 5), // stock < umbral: alerta
	}}
	uc := alerts.NewLowStockUseCase(feed, repo, 30)

	out, err := uc.LowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Len(t, out.Alerts, 1)
	assert.Equal(t, "menor", out.Alerts[0].ProductID)
	assert.Equal(t, int64(4), out.Alerts[0].CurrentStock)
	assert.Equal(t, int64(5), out.Alerts[0].Threshold)
}

func TestLowStockAlerts_BundlesExcluidos(t *testing.T) {
	bundle := alertRow("combo", 0, 5)
	bundle.IsBundle = true
	feed := &fakeFeed{productIDs: []string{"combo", "p1"}}
	repo := &fakeInventoryRepo{rows: []repository.AlertRow{bundle, alertRow("p1", 1, 5)}}
	uc := alerts.NewLowStockUseCase(feed, repo, 30)

	out, err := uc.LowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Len(t, out.Alerts, 1)
	assert.Equal(t, "p1", out.Alerts[0].ProductID, "los bundles no se alertan directamente")
}

func TestLowStockAlerts_UmbralAusenteEsError(t *testing.T) {
	row := alertRow("p1", 1, 0)
	row.LowStockThreshold = nil
	feed := &fakeFeed{productIDs: []string{"p1"}}
	repo := &fakeInventoryRepo{rows: []repository.AlertRow{row}}
	uc := alerts.NewLowStockUseCase(feed, repo, 30)

	_, err := uc.LowStockAlerts(context.Background(), testCompanyID)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.KindMissingThreshold, vErr.Kind)
}

// ──────────────────────────────────────────────────────────────────────────────
// Enriquecimiento: proveedor y estimación de quiebre
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockAlerts_ProveedorPresenteYAusente(t *testing.T) {
	conProveedor := alertRow("p1", 1, 5)
	conProveedor.SupplierID = strPtr("sup-1")
	conProveedor.SupplierName = strPtr("Ferretería El Tornillo")
	conProveedor.SupplierContact = strPtr("ventas@eltornillo.co")
	sinProveedor := alertRow("p2", 2, 5)

	feed := &fakeFeed{productIDs: []string{"p1", "p2"}}
	repo := &fakeInventoryRepo{rows: []repository.AlertRow{conProveedor, sinProveedor}}
	uc := alerts.NewLowStockUseCase(feed, repo, 30)

	out, err := uc.LowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Len(t, out.Alerts, 2)

	require.NotNil(t, out.Alerts[0].Supplier)
	assert.Equal(t, "sup-1", out.Alerts[0].Supplier.ID)
	assert.Equal(t, "Ferretería El Tornillo", out.Alerts[0].Supplier.Name)
	assert.Nil(t, out.Alerts[1].Supplier, "sin proveedor asociado el campo va en nil, no es error")
}

func TestLowStockAlerts_DiasHastaQuiebreEsStockActual(t *testing.T) {
	feed := &fakeFeed{productIDs: []string{"p1"}}
	repo := &fakeInventoryRepo{rows: []repository.AlertRow{alertRow("p1", 3, 5)}}
	uc := alerts.NewLowStockUseCase(feed, repo, 30)

	out, err := uc.LowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Len(t, out.Alerts, 1)
	assert.Equal(t, int64(3), out.Alerts[0].DaysUntilStockout)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventana de ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockAlerts_VentanaConfigurable(t *testing.T) {
	feed := &fakeFeed{productIDs: nil}
	uc := alerts.NewLowStockUseCase(feed, &fakeInventoryRepo{}, 7)

	_, err := uc.LowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)

	expected := time.Now().AddDate(0, 0, -7)
	assert.WithinDuration(t, expected, feed.gotSince, time.Minute)
}

func TestLowStockAlerts_VentanaInvalidaUsaDefault(t *testing.T) {
	feed := &fakeFeed{productIDs: nil}
	uc := alerts.NewLowStockUseCase(feed, &fakeInventoryRepo{}, 0)

	_, err := uc.LowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)

	expected := time.Now().AddDate(0, 0, -alerts.DefaultSalesWindowDays)
	assert.WithinDuration(t, expected, feed.gotSince, time.Minute)
}

func TestLowStockAlerts_TotalCoincideConLaLista(t *testing.T) {
	feed := &fakeFeed{productIDs: []string{"p1", "p2", "p3"}}
	repo := &fakeInventoryRepo{rows: []repository.AlertRow{
		alertRow("p1", 1, 5),
		alertRow("p2", 9, 5), // sobre umbral
		alertRow("p3", 0, 2),
	}}
	uc := alerts.NewLowStockUseCase(feed, repo, 30)

	out, err := uc.LowStockAlerts(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Len(t, out.Alerts, 2)
	assert.Equal(t, 2, out.TotalAlerts)
}
