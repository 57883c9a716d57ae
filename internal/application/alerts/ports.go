package alerts

import (
	"context"
	"time"
)

// SalesFeed es la señal externa de actividad de ventas: reporta los productos
// de una empresa con al menos una venta desde `since`. El motor de alertas la
// consume de solo lectura; la implementación puede ser la tabla local o un
// servicio remoto (ver infrastructure/salesfeed).
type SalesFeed interface {
	RecentlySoldProductIDs(ctx context.Context, companyID string, since time.Time) ([]string, error)
}
