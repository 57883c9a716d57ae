package dto

import "time"

// AdjustStockRequest body para POST /api/inventory/adjustments.
// ChangeAmount es el delta con signo; Reason es obligatorio (auditoría).
type AdjustStockRequest struct {
	ProductID    string `json:"product_id"`
	WarehouseID  string `json:"warehouse_id"`
	ChangeAmount int64  `json:"change_amount"`
	Reason       string `json:"reason"`
}

// StockResponse cantidad actual de un producto en una bodega.
type StockResponse struct {
	ProductID   string    `json:"product_id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MovementResponse un registro del log de movimientos.
type MovementResponse struct {
	ID           string    `json:"id"`
	InventoryID  string    `json:"inventory_id"`
	ChangeAmount int64     `json:"change_amount"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"created_at"`
}

// MovementListResponse historial paginado de movimientos de un producto.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
