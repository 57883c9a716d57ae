package entity

import "time"

// SalesActivity es un hecho de venta: señal externa de solo lectura para el
// motor de alertas. El núcleo la consume, no es dueño de ella.
type SalesActivity struct {
	ID        string
	ProductID string
	Quantity  int64
	SoldAt    time.Time
}
