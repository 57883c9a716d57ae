package entity

import "time"

// InventoryMovement es un registro inmutable de auditoría: un delta con signo
// aplicado a una fila de Inventory, con motivo y fecha. Se crea exactamente
// una vez por mutación aceptada y nunca se actualiza ni se borra.
type InventoryMovement struct {
	ID           string
	InventoryID  string
	ChangeAmount int64 // positivo entrada, negativo salida
	Reason       string
	CreatedAt    time.Time
}
