package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
)

// errorStatus asocia cada tipo de error de dominio con su código HTTP.
var errorStatus = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrPersistence, fiber.StatusInternalServerError, "PERSISTENCE"},
}

// writeError traduce un error de los casos de uso a dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	for _, e := range errorStatus {
		if errors.Is(err, e.kind) {
			msg := err.Error()
			if e.status >= fiber.StatusInternalServerError {
				// el detalle (driver, constraint) queda solo en el log
				requestLogger(c).Error().Err(err).Msg("error de persistencia")
				msg = "no se pudo completar la operación"
			}
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: msg})
		}
	}
	requestLogger(c).Error().Err(err).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
