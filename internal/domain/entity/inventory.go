package entity

import "time"

// Inventory es la proyección de cantidad actual de un producto en una bodega.
// A lo sumo una fila por par (producto, bodega); la cantidad nunca es negativa.
// El historial de cambios vive en InventoryMovement.
type Inventory struct {
	ID          string
	ProductID   string
	WarehouseID string
	Quantity    int64
	UpdatedAt   time.Time
}
