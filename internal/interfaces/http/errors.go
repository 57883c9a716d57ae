package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// respondError mapea la taxonomía de errores de dominio a respuestas HTTP.
// Los errores no clasificados (falla de storage u otra causa de servidor) se
// registran con el contexto de la petición y salen como 500 con mensaje
// saneado: el error crudo jamás llega al cliente.
func respondError(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		msg := vErr.Message
		if vErr.Field != "" {
			msg = vErr.Field + ": " + vErr.Message
		}
		status := fiber.StatusBadRequest
		if vErr.Kind == domain.KindInsufficientStock {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: vErr.Kind, Message: msg})
	}
	var cErr *domain.ConflictError
	if errors.As(err, &cErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: cErr.Kind, Message: cErr.Message})
	}
	var iErr *domain.IntegrityError
	if errors.As(err, &iErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: iErr.Kind, Message: iErr.Message})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_EMAIL", Message: "el email ya está registrado"})
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no clasificado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
