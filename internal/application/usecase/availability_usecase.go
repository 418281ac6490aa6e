package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Horarios-api/internal/application/authz"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/domain/repository"
	"github.com/jhoicas/Horarios-api/internal/domain/scheduling"
)

// AvailabilityUseCase ventanas de disponibilidad de los empleados.
type AvailabilityUseCase struct {
	availabilities repository.AvailabilityRepository
	users          repository.UserRepository
	norm           *scheduling.Normalizer
	gate           *authz.Gate
	log            zerolog.Logger
	now            Clock
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(availabilities repository.AvailabilityRepository, users repository.UserRepository, norm *scheduling.Normalizer, gate *authz.Gate, log zerolog.Logger, now Clock) *AvailabilityUseCase {
	return &AvailabilityUseCase{
		availabilities: availabilities,
		users:          users,
		norm:           norm,
		gate:           gate,
		log:            log.With().Str("usecase", "availability").Logger(),
		now:            defaultClock(now),
	}
}

// Create registra una ventana para el actor. No puede solaparse con otra del mismo día.
func (uc *AvailabilityUseCase) Create(ctx context.Context, actor *entity.Actor, in dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if err := uc.gate.Require(actor, authz.EmployeeOnly); err != nil {
		return nil, err
	}
	day, from, to, err := uc.norm.ComposeStrings(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, rejected("availability", err)
	}
	if err := uc.checkOverlap(ctx, actor.ID, day, from, to, ""); err != nil {
		return nil, rejected("availability", err)
	}
	now := uc.now()
	a := &entity.Availability{
		ID:        uuid.New().String(),
		UserID:    actor.ID,
		Date:      day,
		StartTime: from,
		EndTime:   to,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.availabilities.Create(ctx, a); err != nil {
		return nil, err
	}
	return dto.ToAvailabilityResponse(a), nil
}

// Update reemplaza fecha y horas de una ventana propia.
func (uc *AvailabilityUseCase) Update(ctx context.Context, actor *entity.Actor, id string, in dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	a, err := uc.loadOwn(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	day, from, to, err := uc.norm.ComposeStrings(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, rejected("availability", err)
	}
	if err := uc.checkOverlap(ctx, actor.ID, day, from, to, a.ID); err != nil {
		return nil, rejected("availability", err)
	}
	a.Date, a.StartTime, a.EndTime = day, from, to
	a.UpdatedAt = uc.now()
	if err := uc.availabilities.Update(ctx, a); err != nil {
		return nil, err
	}
	return dto.ToAvailabilityResponse(a), nil
}

// Delete elimina una ventana propia.
func (uc *AvailabilityUseCase) Delete(ctx context.Context, actor *entity.Actor, id string) error {
	if _, err := uc.loadOwn(ctx, actor, id); err != nil {
		return err
	}
	if err := uc.availabilities.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("availability_id", id).Str("user_id", actor.ID).Msg("disponibilidad eliminada")
	return nil
}

// ListMine ventanas del actor por fecha ascendente.
func (uc *AvailabilityUseCase) ListMine(ctx context.Context, actor *entity.Actor) ([]dto.AvailabilityResponse, error) {
	if err := uc.gate.Require(actor, authz.EmployeeOnly); err != nil {
		return nil, err
	}
	list, err := uc.availabilities.ListByUser(ctx, actor.ID, nil)
	if err != nil {
		return nil, err
	}
	return dto.ToAvailabilityResponses(list), nil
}

// ListForUser ventanas de un usuario del restaurante del admin.
func (uc *AvailabilityUseCase) ListForUser(ctx context.Context, actor *entity.Actor, userID string) ([]dto.AvailabilityResponse, error) {
	if err := uc.gate.Require(actor, authz.AdminOnly); err != nil {
		return nil, err
	}
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if u.RestaurantID == nil {
		return nil, fmt.Errorf("%w: usuario fuera del restaurante", domain.ErrForbidden)
	}
	if err := uc.gate.RequireTenant(actor, *u.RestaurantID); err != nil {
		return nil, err
	}
	list, err := uc.availabilities.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	return dto.ToAvailabilityResponses(list), nil
}

func (uc *AvailabilityUseCase) loadOwn(ctx context.Context, actor *entity.Actor, id string) (*entity.Availability, error) {
	if err := uc.gate.Require(actor, authz.EmployeeOnly); err != nil {
		return nil, err
	}
	a, err := uc.availabilities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: disponibilidad %s", domain.ErrNotFound, id)
	}
	if a.UserID != actor.ID {
		return nil, fmt.Errorf("%w: la disponibilidad pertenece a otro usuario", domain.ErrForbidden)
	}
	return a, nil
}

func (uc *AvailabilityUseCase) checkOverlap(ctx context.Context, userID string, day, from, to time.Time, excludeID string) error {
	existing, err := uc.availabilities.ListByUser(ctx, userID, &day)
	if err != nil {
		return err
	}
	intervals := make([]scheduling.Interval, 0, len(existing))
	for _, a := range existing {
		if a.ID == excludeID {
			continue
		}
		intervals = append(intervals, scheduling.Interval{Start: a.StartTime, End: a.EndTime})
	}
	if scheduling.HasOverlap(intervals, scheduling.Interval{Start: from, End: to}) {
		return fmt.Errorf("%w: ya existe una disponibilidad en ese horario", domain.ErrOverlap)
	}
	return nil
}
