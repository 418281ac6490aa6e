package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Horarios-api/internal/application/authz"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/domain/repository"
)

// RestaurantUseCase casos de uso de restaurantes (gestión del super-admin).
type RestaurantUseCase struct {
	restaurants repository.RestaurantRepository
	users       repository.UserRepository
	alloc       *RestaurantIDAllocator
	gate        *authz.Gate
	log         zerolog.Logger
	now         Clock
}

// NewRestaurantUseCase construye el caso de uso.
func NewRestaurantUseCase(
	restaurants repository.RestaurantRepository,
	users repository.UserRepository,
	alloc *RestaurantIDAllocator,
	gate *authz.Gate,
	log zerolog.Logger,
	now Clock,
) *RestaurantUseCase {
	return &RestaurantUseCase{
		restaurants: restaurants,
		users:       users,
		alloc:       alloc,
		gate:        gate,
		log:         log.With().Str("usecase", "restaurant").Logger(),
		now:         defaultClock(now),
	}
}

// Create crea un restaurante en estado pending con un ID de 5 dígitos.
func (uc *RestaurantUseCase) Create(ctx context.Context, actor *entity.Actor, in dto.CreateRestaurantRequest) (*dto.RestaurantResponse, error) {
	if err := uc.gate.Require(actor, authz.SuperAdminOnly); err != nil {
		return nil, err
	}
	r, err := entity.NewRestaurant(in.Name, in.Location, in.PhoneNumber, uc.now())
	if err != nil {
		return nil, rejected("restaurant", err)
	}
	if err := uc.alloc.Allocate(ctx, uc.restaurants, r); err != nil {
		return nil, err
	}
	uc.log.Info().Int("restaurant_id", r.ID).Msg("restaurante creado")
	return dto.ToRestaurantResponse(r), nil
}

// Get obtiene un restaurante. Fuera del super-admin solo se ve el restaurante propio.
func (uc *RestaurantUseCase) Get(ctx context.Context, actor *entity.Actor, id int) (*dto.RestaurantResponse, error) {
	if err := uc.gate.Require(actor, authz.AnyRole); err != nil {
		return nil, err
	}
	if actor.Role != entity.RoleSuperAdmin {
		if err := uc.gate.RequireTenant(actor, id); err != nil {
			return nil, err
		}
	}
	r, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToRestaurantResponse(r), nil
}

// List lista restaurantes por updated_at descendente; status vacío = todos.
func (uc *RestaurantUseCase) List(ctx context.Context, actor *entity.Actor, status string) ([]dto.RestaurantResponse, error) {
	if err := uc.gate.Require(actor, authz.SuperAdminOnly); err != nil {
		return nil, err
	}
	var f repository.RestaurantFilter
	if status != "" {
		st, err := entity.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		f.Status = &st
	}
	list, err := uc.restaurants.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.ToRestaurantResponses(list), nil
}

// ListPending restaurantes pendientes, los más antiguos primero.
func (uc *RestaurantUseCase) ListPending(ctx context.Context, actor *entity.Actor) ([]dto.RestaurantResponse, error) {
	if err := uc.gate.Require(actor, authz.SuperAdminOnly); err != nil {
		return nil, err
	}
	list, err := uc.restaurants.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToRestaurantResponses(list), nil
}

// Update aplica el parche y revalida nombre y teléfono. El estado no se toca aquí:
// la aprobación pasa siempre por el flujo de aprobación.
func (uc *RestaurantUseCase) Update(ctx context.Context, actor *entity.Actor, id int, in dto.UpdateRestaurantRequest) (*dto.RestaurantResponse, error) {
	if err := uc.gate.Require(actor, authz.SuperAdminOnly); err != nil {
		return nil, err
	}
	r, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := requiredText("name", *in.Name)
		if err != nil {
			return nil, rejected("restaurant", err)
		}
		r.Name = name
	}
	if in.Location != nil {
		r.Location = strings.TrimSpace(*in.Location)
	}
	if in.PhoneNumber != nil {
		p, err := entity.NormalizePhone(*in.PhoneNumber)
		if err != nil {
			return nil, rejected("restaurant", err)
		}
		r.PhoneNumber = p
	}
	r.UpdatedAt = uc.now()
	if err := uc.restaurants.Update(ctx, r); err != nil {
		return nil, err
	}
	return dto.ToRestaurantResponse(r), nil
}

// Delete elimina un restaurante sin usuarios. Con usuarios asociados devuelve ErrConflict.
func (uc *RestaurantUseCase) Delete(ctx context.Context, actor *entity.Actor, id int) error {
	if err := uc.gate.Require(actor, authz.SuperAdminOnly); err != nil {
		return err
	}
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	n, err := uc.users.CountByRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: el restaurante %d tiene %d usuarios", domain.ErrConflict, id, n)
	}
	if err := uc.restaurants.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int("restaurant_id", id).Msg("restaurante eliminado")
	return nil
}

func (uc *RestaurantUseCase) load(ctx context.Context, id int) (*entity.Restaurant, error) {
	r, err := uc.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: restaurante %d", domain.ErrNotFound, id)
	}
	return r, nil
}
