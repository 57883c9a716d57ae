package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// SalesActivityRepository define el puerto para el feed local de ventas.
// RecordSale ingesta hechos; la lectura de candidatos para alertas pasa por
// el puerto alerts.SalesFeed (que este repositorio también implementa).
type SalesActivityRepository interface {
	RecordSale(ctx context.Context, sale *entity.SalesActivity) error
}
