package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
// Pertenece exactamente a una Company.
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Location  string
	CreatedAt time.Time
}
