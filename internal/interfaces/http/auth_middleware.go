package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/pkg/jwt"
	"github.com/rs/zerolog"
)

// LocalActor clave en c.Locals del actor resuelto para la petición.
const LocalActor = "actor"

// ActorResolver obtiene el actor vigente a partir del ID del token.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID string) (*entity.Actor, error)
}

// AuthMiddleware valida el Bearer Token JWT y guarda el actor en c.Locals.
// Sin header la petición sigue sin actor y el gate de cada caso de uso responde LOGIN_REQUIRED.
// El actor se vuelve a leer en cada petición para que una aprobación o borrado se note de inmediato.
func AuthMiddleware(jwtSecret string, resolver ActorResolver, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		actor, err := resolver.ResolveActor(c.UserContext(), claims.UserID)
		if err != nil {
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("no se pudo resolver el actor")
			return respondError(c, err)
		}
		if actor != nil {
			c.Locals(LocalActor, actor)
		}
		return c.Next()
	}
}

// GetActor devuelve el actor de la petición o nil si no hay sesión.
func GetActor(c *fiber.Ctx) *entity.Actor {
	v := c.Locals(LocalActor)
	if v == nil {
		return nil
	}
	a, _ := v.(*entity.Actor)
	return a
}
