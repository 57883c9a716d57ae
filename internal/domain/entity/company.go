package entity

import "time"

// Company representa una organización/tenant del sistema: raíz de identidad
// que agrupa bodegas, productos y proveedores.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
