package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// Kinds de error: identifican la causa exacta para que los handlers HTTP
// respondan con el código correcto sin inspeccionar mensajes.
const (
	KindMissingField       = "MISSING_FIELD"
	KindInvalidPrice       = "INVALID_PRICE"
	KindInvalidQuantity    = "INVALID_QUANTITY"
	KindInsufficientStock  = "INSUFFICIENT_STOCK"
	KindMissingThreshold   = "MISSING_THRESHOLD"
	KindNestedBundle       = "NESTED_BUNDLE"
	KindDuplicateSKU       = "DUPLICATE_SKU"
	KindRaceLostUniqueness = "RACE_LOST_UNIQUENESS"
)

// ValidationError error de validación: siempre culpa del cliente.
// Se detecta antes de tocar almacenamiento, salvo InsufficientStock que
// se conoce recién al aplicar el delta sobre la fila.
type ValidationError struct {
	Kind    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// MissingField construye el error de campo requerido ausente.
func MissingField(field string) *ValidationError {
	return &ValidationError{Kind: KindMissingField, Field: field, Message: "campo requerido"}
}

// ConflictError conflicto detectado en el pre-chequeo (antes de abrir transacción).
type ConflictError struct {
	Kind    string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IntegrityError violación de unicidad detectada al confirmar la transacción:
// la carrera que el pre-chequeo no puede cubrir. Solo se retorna después de un
// rollback completo, así que no queda estado parcial.
type IntegrityError struct {
	Kind    string
	Message string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
