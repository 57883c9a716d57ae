package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para el alta atómica de producto + inventario
// inicial. Price llega como RawMessage para que el caso de uso lo parsee como
// decimal exacto, acepte string ("12.50") o número (12.50) y distinga campo
// ausente de campo malformado.
type CreateProductRequest struct {
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	Price             json.RawMessage `json:"price"`
	WarehouseID       string          `json:"warehouse_id"`
	InitialQuantity   *int64          `json:"initial_quantity,omitempty"` // nil = 0, no es error
	IsBundle          bool            `json:"is_bundle,omitempty"`
	LowStockThreshold *int64          `json:"low_stock_threshold,omitempty"`
}

// CreateProductResponse salida del alta de producto.
type CreateProductResponse struct {
	Message         string `json:"message"`
	ProductID       string `json:"product_id"`
	WarehouseID     string `json:"warehouse_id"`
	InitialQuantity int64  `json:"initial_quantity"`
}

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ID                string          `json:"id"`
	CompanyID         string          `json:"company_id"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	Price             decimal.Decimal `json:"price"`
	IsBundle          bool            `json:"is_bundle"`
	LowStockThreshold *int64          `json:"low_stock_threshold,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// AddComponentRequest entrada para agregar un componente a un bundle.
type AddComponentRequest struct {
	ComponentID string `json:"component_id"`
	Quantity    int64  `json:"quantity"`
}

// ComponentResponse un componente de un bundle.
type ComponentResponse struct {
	BundleID    string `json:"bundle_id"`
	ComponentID string `json:"component_id"`
	Quantity    int64  `json:"quantity"`
}
