package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo. Es independiente de la
// bodega: el stock por bodega vive en Inventory. SKU es único por empresa.
// Price es decimal de punto fijo; nunca float binario para dinero.
type Product struct {
	ID                string
	CompanyID         string
	Name              string
	SKU               string
	Price             decimal.Decimal
	IsBundle          bool
	LowStockThreshold *int64 // nil = producto sin umbral configurado
	CreatedAt         time.Time
}
