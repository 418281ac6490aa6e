package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los detalles se agregan con fmt.Errorf("%w: ...", ErrX); los callers comparan con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = fmt.Errorf("%w: usuario", ErrNotFound)
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("credenciales inválidas")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrRequiresLogin no hay actor resuelto para la petición.
	ErrRequiresLogin = errors.New("se requiere iniciar sesión")
	// ErrUnapproved el actor existe pero su cuenta sigue pendiente de aprobación.
	ErrUnapproved = errors.New("cuenta pendiente de aprobación")

	// ErrIDAllocation se agotaron los intentos para asignar un ID único de restaurante.
	ErrIDAllocation = errors.New("no se pudo asignar un ID de restaurante")
)

// Variantes de ErrInvalidInput.
var (
	ErrInvalidRange      = fmt.Errorf("%w: la hora de fin debe ser posterior a la de inicio", ErrInvalidInput)
	ErrOverlap           = fmt.Errorf("%w: el intervalo se solapa con otro existente", ErrInvalidInput)
	ErrInvalidPhone      = fmt.Errorf("%w: número de teléfono inválido", ErrInvalidInput)
	ErrInvalidTransition = fmt.Errorf("%w: transición de estado no permitida", ErrInvalidInput)
)
