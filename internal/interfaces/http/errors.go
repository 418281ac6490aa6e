package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/domain"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: las variantes de ErrInvalidInput y ErrNotFound van antes que sus padres.
var errorMappings = []errorMapping{
	{domain.ErrRequiresLogin, fiber.StatusUnauthorized, "LOGIN_REQUIRED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnapproved, fiber.StatusForbidden, "ACCOUNT_PENDING"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrInvalidRange, fiber.StatusBadRequest, "INVALID_RANGE"},
	{domain.ErrOverlap, fiber.StatusBadRequest, "OVERLAP"},
	{domain.ErrInvalidPhone, fiber.StatusBadRequest, "INVALID_PHONE"},
	{domain.ErrInvalidTransition, fiber.StatusBadRequest, "INVALID_TRANSITION"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrIDAllocation, fiber.StatusServiceUnavailable, "ID_ALLOCATION"},
}

// statusFor traduce un error de dominio a código HTTP y código de error de la API.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// respondError escribe el ErrorResponse correspondiente al error.
// Los errores internos no exponen el detalle al cliente.
func respondError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ErrorHandler handler global de Fiber: errores de Fiber conservan su código, el resto se mapea.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return respondError(c, err)
}
