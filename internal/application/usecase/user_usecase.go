package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Horarios-api/internal/application/authz"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/application/ports"
	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/domain/repository"
)

// UserApprover aprueba usuarios con las reglas del flujo de aprobación.
type UserApprover interface {
	ApproveUser(ctx context.Context, actor *entity.Actor, id string) (*dto.UserResponse, error)
}

// UserUseCase gestión de usuarios por admins (su restaurante) y super-admins.
type UserUseCase struct {
	users    repository.UserRepository
	tx       ports.TxRunner
	cache    ports.ActorCache
	approver UserApprover
	gate     *authz.Gate
	log      zerolog.Logger
	now      Clock
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository, tx ports.TxRunner, cache ports.ActorCache, approver UserApprover, gate *authz.Gate, log zerolog.Logger, now Clock) *UserUseCase {
	if cache == nil {
		cache = ports.NopActorCache{}
	}
	return &UserUseCase{
		users:    users,
		tx:       tx,
		cache:    cache,
		approver: approver,
		gate:     gate,
		log:      log.With().Str("usecase", "user").Logger(),
		now:      defaultClock(now),
	}
}

// Update aplica el parche {name, role, phone_number, status}. El estado solo avanza
// pending -> approved, siempre a través del flujo de aprobación, y el rol super-admin
// no se concede por esta vía.
func (uc *UserUseCase) Update(ctx context.Context, actor *entity.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.loadManaged(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := requiredText("name", *in.Name)
		if err != nil {
			return nil, rejected("user", err)
		}
		u.Name = name
	}
	if in.Role != nil {
		role, err := entity.ParseRole(*in.Role)
		if err != nil {
			return nil, rejected("user", err)
		}
		if role != u.Role && (role == entity.RoleSuperAdmin || u.Role == entity.RoleSuperAdmin) {
			return nil, rejected("user", fmt.Errorf("%w: el rol super-admin no se asigna ni se retira por actualización", domain.ErrInvalidInput))
		}
		u.Role = role
	}
	if in.PhoneNumber != nil {
		p, err := entity.NormalizePhone(*in.PhoneNumber)
		if err != nil {
			return nil, rejected("user", err)
		}
		u.PhoneNumber = p
	}
	approve := false
	if in.Status != nil {
		st, err := entity.ParseStatus(*in.Status)
		if err != nil {
			return nil, rejected("user", err)
		}
		if !u.Status.CanTransition(st) {
			return nil, rejected("user", fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, u.Status, st))
		}
		approve = st != u.Status
	}
	if approve {
		if uc.approver == nil {
			return nil, fmt.Errorf("flujo de aprobación no configurado")
		}
		if _, err := uc.approver.ApproveUser(ctx, actor, u.ID); err != nil {
			return nil, rejected("user", err)
		}
		u.Status = entity.StatusApproved
	}
	u.UpdatedAt = uc.now()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, u.ID)
	return dto.ToUserResponse(u), nil
}

// Delete elimina el usuario. En una sola transacción libera sus turnos asignados y borra
// sus ventanas de disponibilidad antes de borrar el usuario.
func (uc *UserUseCase) Delete(ctx context.Context, actor *entity.Actor, id string) error {
	if _, err := uc.loadManaged(ctx, actor, id); err != nil {
		return err
	}
	err := uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		if err := repos.Shifts.UnassignUser(ctx, id); err != nil {
			return err
		}
		if err := repos.Availabilities.DeleteByUser(ctx, id); err != nil {
			return err
		}
		return repos.Users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	uc.log.Info().Str("user_id", id).Str("by", actor.ID).Msg("usuario eliminado")
	return nil
}

// ListByRestaurant usuarios del restaurante del admin.
func (uc *UserUseCase) ListByRestaurant(ctx context.Context, actor *entity.Actor) ([]dto.UserResponse, error) {
	if err := uc.gate.Require(actor, authz.AdminOnly); err != nil {
		return nil, err
	}
	rid, err := uc.gate.TenantOf(actor)
	if err != nil {
		return nil, err
	}
	list, err := uc.users.List(ctx, repository.UserFilter{RestaurantID: &rid})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponses(list), nil
}

// ListPending usuarios pendientes: del propio restaurante para admins, todos para super-admin.
func (uc *UserUseCase) ListPending(ctx context.Context, actor *entity.Actor) ([]dto.UserResponse, error) {
	if err := uc.gate.Require(actor, authz.UserApprovers); err != nil {
		return nil, err
	}
	pending := entity.StatusPending
	f := repository.UserFilter{Status: &pending}
	if actor.Role == entity.RoleAdmin {
		rid, err := uc.gate.TenantOf(actor)
		if err != nil {
			return nil, err
		}
		f.RestaurantID = &rid
	}
	list, err := uc.users.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponses(list), nil
}

// ListAll todos los usuarios del sistema (super-admin).
func (uc *UserUseCase) ListAll(ctx context.Context, actor *entity.Actor) ([]dto.UserResponse, error) {
	if err := uc.gate.Require(actor, authz.SuperAdminOnly); err != nil {
		return nil, err
	}
	list, err := uc.users.List(ctx, repository.UserFilter{})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponses(list), nil
}

// loadManaged carga el usuario objetivo y verifica que el actor pueda gestionarlo.
func (uc *UserUseCase) loadManaged(ctx context.Context, actor *entity.Actor, id string) (*entity.User, error) {
	if err := uc.gate.Require(actor, authz.UserApprovers); err != nil {
		return nil, err
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if actor.Role == entity.RoleAdmin {
		if u.RestaurantID == nil {
			return nil, fmt.Errorf("%w: usuario fuera del restaurante", domain.ErrForbidden)
		}
		if err := uc.gate.RequireTenant(actor, *u.RestaurantID); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (uc *UserUseCase) invalidate(ctx context.Context, userID string) {
	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo invalidar el actor en caché")
	}
}
