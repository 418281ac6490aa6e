// Package authz implementa la compuerta de autorización: rol exacto por categoría de
// operación más la precondición de cuenta aprobada.
package authz

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/observability/metrics"
)

// Categorías de operación. Un super-admin no hereda permisos de admin.
var (
	SuperAdminOnly = []entity.Role{entity.RoleSuperAdmin}
	AdminOnly      = []entity.Role{entity.RoleAdmin}
	EmployeeOnly   = []entity.Role{entity.RoleEmployee}
	UserApprovers  = []entity.Role{entity.RoleAdmin, entity.RoleSuperAdmin}
	AnyRole        = []entity.Role{entity.RoleEmployee, entity.RoleAdmin, entity.RoleSuperAdmin}
)

// Gate evalúa (rol, estado) del actor para cada operación.
type Gate struct {
	log zerolog.Logger
}

// NewGate construye la compuerta.
func NewGate(log zerolog.Logger) *Gate {
	return &Gate{log: log.With().Str("component", "authz").Logger()}
}

// Require exige actor resuelto, cuenta aprobada y rol exacto dentro de allowed.
//   - actor nil            → domain.ErrRequiresLogin
//   - estado != approved   → domain.ErrUnapproved (sin importar el rol)
//   - rol fuera de allowed → domain.ErrForbidden
func (g *Gate) Require(actor *entity.Actor, allowed []entity.Role) error {
	if actor == nil {
		metrics.ObserveAuthzDenied("login_required")
		return domain.ErrRequiresLogin
	}
	if actor.Status != entity.StatusApproved {
		g.deny(actor, "unapproved")
		return domain.ErrUnapproved
	}
	for _, r := range allowed {
		if actor.Role == r {
			return nil
		}
	}
	g.deny(actor, "role")
	return fmt.Errorf("%w: rol %s no permitido", domain.ErrForbidden, actor.Role)
}

// RequireTenant exige que el actor pertenezca al restaurante indicado.
func (g *Gate) RequireTenant(actor *entity.Actor, restaurantID int) error {
	if actor == nil {
		return domain.ErrRequiresLogin
	}
	if actor.RestaurantID == nil || *actor.RestaurantID != restaurantID {
		g.deny(actor, "tenant")
		return fmt.Errorf("%w: restaurante %d", domain.ErrForbidden, restaurantID)
	}
	return nil
}

// RequireAdminOf atajo: admin aprobado del restaurante indicado.
func (g *Gate) RequireAdminOf(actor *entity.Actor, restaurantID int) error {
	if err := g.Require(actor, AdminOnly); err != nil {
		return err
	}
	return g.RequireTenant(actor, restaurantID)
}

// TenantOf devuelve el restaurante del actor o ErrForbidden si no tiene (super-admin).
func (g *Gate) TenantOf(actor *entity.Actor) (int, error) {
	if actor == nil {
		return 0, domain.ErrRequiresLogin
	}
	if actor.RestaurantID == nil {
		return 0, fmt.Errorf("%w: el actor no pertenece a un restaurante", domain.ErrForbidden)
	}
	return *actor.RestaurantID, nil
}

func (g *Gate) deny(actor *entity.Actor, reason string) {
	metrics.ObserveAuthzDenied(reason)
	g.log.Warn().
		Str("actor_id", actor.ID).
		Str("role", string(actor.Role)).
		Str("status", string(actor.Status)).
		Str("reason", reason).
		Msg("acceso denegado")
}
