// Package approval implementa el flujo pending -> approved de restaurantes y usuarios.
// Aprobar un restaurante aprueba también a su primer admin en la misma transacción.
package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Horarios-api/internal/application/authz"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/application/ports"
	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/domain/repository"
	"github.com/jhoicas/Horarios-api/internal/observability/metrics"
)

// Workflow aprobación de restaurantes (con cascada al admin) y de usuarios.
type Workflow struct {
	tx          ports.TxRunner
	users       repository.UserRepository
	restaurants repository.RestaurantRepository
	cache       ports.ActorCache
	gate        *authz.Gate
	log         zerolog.Logger
	now         func() time.Time
}

// NewWorkflow construye el flujo. cache nil equivale a NopActorCache.
func NewWorkflow(tx ports.TxRunner, users repository.UserRepository, restaurants repository.RestaurantRepository, cache ports.ActorCache, gate *authz.Gate, log zerolog.Logger, now func() time.Time) *Workflow {
	if cache == nil {
		cache = ports.NopActorCache{}
	}
	if now == nil {
		now = time.Now
	}
	return &Workflow{
		tx:          tx,
		users:       users,
		restaurants: restaurants,
		cache:       cache,
		gate:        gate,
		log:         log.With().Str("usecase", "approval").Logger(),
		now:         now,
	}
}

// ApproveRestaurant aprueba el restaurante y a su admin más antiguo en una sola transacción:
// o cambian ambos o ninguno. Es idempotente. Un restaurante sin admin se aprueba solo.
func (w *Workflow) ApproveRestaurant(ctx context.Context, actor *entity.Actor, id int) (*dto.RestaurantWithAdminResponse, error) {
	if err := w.gate.Require(actor, authz.SuperAdminOnly); err != nil {
		return nil, err
	}
	var (
		restaurant *entity.Restaurant
		admin      *entity.User
	)
	err := w.tx.Run(ctx, func(repos ports.TxRepos) error {
		r, err := repos.Restaurants.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return fmt.Errorf("%w: restaurante %d", domain.ErrNotFound, id)
		}
		now := w.now()
		if r.Status != entity.StatusApproved {
			r.Status = entity.StatusApproved
			r.UpdatedAt = now
			if err := repos.Restaurants.Update(ctx, r); err != nil {
				return fmt.Errorf("aprobar restaurante %d: %w", id, err)
			}
		}
		restaurant = r

		u, err := repos.Users.FirstByRestaurantAndRole(ctx, id, entity.RoleAdmin)
		if err != nil {
			return err
		}
		if u == nil {
			return nil
		}
		if u.Status != entity.StatusApproved {
			u.Status = entity.StatusApproved
			u.UpdatedAt = now
			if err := repos.Users.Update(ctx, u); err != nil {
				return fmt.Errorf("aprobar admin %s: %w", u.ID, err)
			}
		}
		admin = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveApproval("restaurant")
	ev := w.log.Info().Int("restaurant_id", id).Str("by", actor.ID)
	if admin == nil {
		w.log.Warn().Int("restaurant_id", id).Msg("restaurante aprobado sin admin asociado")
	} else {
		w.invalidate(ctx, admin.ID)
		ev = ev.Str("admin_id", admin.ID)
	}
	ev.Msg("restaurante aprobado")

	return &dto.RestaurantWithAdminResponse{
		Restaurant: *dto.ToRestaurantResponse(restaurant),
		Admin:      dto.ToUserResponse(admin),
	}, nil
}

// ApproveUser aprueba un usuario. Los admins solo aprueban usuarios de su restaurante.
// El admin de un restaurante pendiente se aprueba con ApproveRestaurant.
func (w *Workflow) ApproveUser(ctx context.Context, actor *entity.Actor, id string) (*dto.UserResponse, error) {
	if err := w.gate.Require(actor, authz.UserApprovers); err != nil {
		return nil, err
	}
	u, err := w.users.GetByID(ctx, id)
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
		if err := w.gate.RequireTenant(actor, *u.RestaurantID); err != nil {
			return nil, err
		}
	}
	if u.Status == entity.StatusApproved {
		return dto.ToUserResponse(u), nil
	}
	if u.Role == entity.RoleAdmin && u.RestaurantID != nil {
		r, err := w.restaurants.GetByID(ctx, *u.RestaurantID)
		if err != nil {
			return nil, err
		}
		if r != nil && r.Status != entity.StatusApproved {
			return nil, fmt.Errorf("%w: el restaurante %d sigue pendiente, apruébelo junto a su admin", domain.ErrInvalidTransition, r.ID)
		}
	}
	u.Status = entity.StatusApproved
	u.UpdatedAt = w.now()
	if err := w.users.Update(ctx, u); err != nil {
		return nil, err
	}
	w.invalidate(ctx, u.ID)
	metrics.ObserveApproval("user")
	w.log.Info().Str("user_id", u.ID).Str("by", actor.ID).Msg("usuario aprobado")
	return dto.ToUserResponse(u), nil
}

func (w *Workflow) invalidate(ctx context.Context, userID string) {
	if err := w.cache.Invalidate(ctx, userID); err != nil {
		w.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo invalidar el actor en caché")
	}
}
