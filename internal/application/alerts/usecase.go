package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// DefaultSalesWindowDays ventana por defecto de actividad de ventas.
const DefaultSalesWindowDays = 30

// LowStockUseCase produce las alertas de stock bajo de una empresa.
//
// Pipeline en etapas secuenciales:
//  1. candidatos: productos con ventas en la ventana (filtro de negocio:
//     sin ventas recientes no hay alerta, aunque estén bajo umbral — evita
//     alertar inventario descontinuado)
//  2. enriquecimiento: filas de inventario + bodega + proveedor (cero o uno)
//  3. filtro: stock actual estrictamente menor que el umbral; bundles fuera
//  4. estimación de días a quiebre
//  5. formato
//
// Las lecturas 1 y 2 no comparten transacción: la alerta es consultiva, una
// venta entre ambas lecturas solo produce una alerta levemente desfasada.
type LowStockUseCase struct {
	feed          SalesFeed
	inventoryRepo repository.InventoryRepository
	windowDays    int
}

// NewLowStockUseCase construye el motor de alertas. windowDays <= 0 usa el
// default de 30 días.
func NewLowStockUseCase(feed SalesFeed, inventoryRepo repository.InventoryRepository, windowDays int) *LowStockUseCase {
	if windowDays <= 0 {
		windowDays = DefaultSalesWindowDays
	}
	return &LowStockUseCase{feed: feed, inventoryRepo: inventoryRepo, windowDays: windowDays}
}

// LowStockAlerts ejecuta el pipeline para la empresa indicada.
func (uc *LowStockUseCase) LowStockAlerts(ctx context.Context, companyID string) (*dto.LowStockAlertsResponse, error) {
	since := time.Now().AddDate(0, 0, -uc.windowDays)
	candidates, err := uc.feed.RecentlySoldProductIDs(ctx, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("feed de ventas: %w", err)
	}
	if len(candidates) == 0 {
		// Sin ventas recientes no hay nada que evaluar; no es un error.
		return &dto.LowStockAlertsResponse{Alerts: []dto.LowStockAlertDTO{}, TotalAlerts: 0}, nil
	}

	rows, err := uc.inventoryRepo.ListForAlert(ctx, companyID, candidates)
	if err != nil {
		return nil, fmt.Errorf("inventario para alertas: %w", err)
	}

	alerts := make([]dto.LowStockAlertDTO, 0, len(rows))
	for _, row := range rows {
		// Los bundles no se alertan directamente: solo sus componentes hoja.
		if row.IsBundle {
			continue
		}
		if row.LowStockThreshold == nil {
			// Umbral obligatorio en el modelo base: un producto candidato sin
			// umbral es un error del dato, no se omite en silencio.
			return nil, &domain.ValidationError{
				Kind:    domain.KindMissingThreshold,
				Field:   "low_stock_threshold",
				Message: fmt.Sprintf("el producto %s no tiene umbral configurado", row.SKU),
			}
		}
		threshold := *row.LowStockThreshold
		if row.Quantity >= threshold {
			continue
		}
		alert := dto.LowStockAlertDTO{
			ProductID:         row.ProductID,
			ProductName:       row.ProductName,
			SKU:               row.SKU,
			WarehouseID:       row.WarehouseID,
			WarehouseName:     row.WarehouseName,
			CurrentStock:      row.Quantity,
			Threshold:         threshold,
			DaysUntilStockout: estimateDaysUntilStockout(row.Quantity),
			Supplier:          nil,
		}
		if row.SupplierID != nil {
			alert.Supplier = &dto.SupplierRef{
				ID:      *row.SupplierID,
				Name:    deref(row.SupplierName),
				Contact: deref(row.SupplierContact),
			}
		}
		alerts = append(alerts, alert)
	}

	return &dto.LowStockAlertsResponse{Alerts: alerts, TotalAlerts: len(alerts)}, nil
}

// estimateDaysUntilStockout heurística base: max(stock, 0), sin modelar
// velocidad de venta. Punto de extensión: la fórmula real es
// stock / ventas_promedio_diarias, con política definida para velocidad cero.
func estimateDaysUntilStockout(currentStock int64) int64 {
	if currentStock < 0 {
		return 0
	}
	return currentStock
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
