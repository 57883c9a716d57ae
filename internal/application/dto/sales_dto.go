package dto

import "time"

// RecordSaleRequest body para POST /api/sales. SoldAt opcional (default ahora).
type RecordSaleRequest struct {
	ProductID string     `json:"product_id"`
	Quantity  int64      `json:"quantity"`
	SoldAt    *time.Time `json:"sold_at,omitempty"`
}

// RecordSaleResponse confirmación de ingesta de una venta.
type RecordSaleResponse struct {
	SaleID    string    `json:"sale_id"`
	ProductID string    `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	SoldAt    time.Time `json:"sold_at"`
}
