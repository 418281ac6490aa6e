package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Horarios-api/internal/application/authz"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/application/ports"
	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/domain/repository"
	"github.com/jhoicas/Horarios-api/internal/domain/scheduling"
)

// ShiftUseCase casos de uso de turnos.
type ShiftUseCase struct {
	shifts      repository.ShiftRepository
	users       repository.UserRepository
	schedules   repository.ScheduleRepository
	restaurants repository.RestaurantRepository
	norm        *scheduling.Normalizer
	gate        *authz.Gate
	log         zerolog.Logger
	now         Clock
}

// NewShiftUseCase construye el caso de uso.
func NewShiftUseCase(repos ports.TxRepos, norm *scheduling.Normalizer, gate *authz.Gate, log zerolog.Logger, now Clock) *ShiftUseCase {
	return &ShiftUseCase{
		shifts:      repos.Shifts,
		users:       repos.Users,
		schedules:   repos.Schedules,
		restaurants: repos.Restaurants,
		norm:        norm,
		gate:        gate,
		log:         log.With().Str("usecase", "shift").Logger(),
		now:         defaultClock(now),
	}
}

// Create crea un turno en el restaurante del admin. Si trae asignado, el usuario debe
// existir, ser del mismo restaurante y no tener otro turno solapado ese día.
func (uc *ShiftUseCase) Create(ctx context.Context, actor *entity.Actor, in dto.CreateShiftRequest) (*dto.ShiftResponse, error) {
	if err := uc.gate.Require(actor, authz.AdminOnly); err != nil {
		return nil, err
	}
	rid, err := uc.gate.TenantOf(actor)
	if err != nil {
		return nil, err
	}
	role, err := requiredText("role", in.Role)
	if err != nil {
		return nil, rejected("shift", err)
	}
	day, from, to, err := uc.norm.ComposeStrings(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, rejected("shift", err)
	}
	if err := requireRestaurant(ctx, uc.restaurants, rid); err != nil {
		return nil, rejected("shift", err)
	}
	scheduleID := nonEmpty(in.ScheduleID)
	if scheduleID != nil {
		if err := uc.checkSchedule(ctx, rid, *scheduleID); err != nil {
			return nil, rejected("shift", err)
		}
	}
	assignee := nonEmpty(in.AssignedToID)
	if assignee != nil {
		if err := uc.checkAssignee(ctx, rid, *assignee, day, from, to, ""); err != nil {
			return nil, rejected("shift", err)
		}
	}
	now := uc.now()
	sh := &entity.Shift{
		ID:           uuid.New().String(),
		RestaurantID: rid,
		ScheduleID:   scheduleID,
		AssignedToID: assignee,
		CreatedByID:  actor.ID,
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		Date:         day,
		StartTime:    from,
		EndTime:      to,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.shifts.Create(ctx, sh); err != nil {
		return nil, err
	}
	return dto.ToShiftResponse(sh), nil
}

// Update aplica cualquier subconjunto de {date, start_time, end_time, role, name, assigned_to_id}.
// Lo que falta se infiere del turno guardado: si solo cambia la fecha, las horas del día se
// reanclan sobre la nueva fecha.
func (uc *ShiftUseCase) Update(ctx context.Context, actor *entity.Actor, id string, in dto.UpdateShiftRequest) (*dto.ShiftResponse, error) {
	sh, err := uc.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	day := sh.Date
	if in.Date != nil {
		if day, err = scheduling.ParseDate(*in.Date); err != nil {
			return nil, rejected("shift", err)
		}
	}
	startTod, endTod := uc.norm.TimeOfDayOf(sh.StartTime), uc.norm.TimeOfDayOf(sh.EndTime)
	if in.StartTime != nil {
		if startTod, err = scheduling.ParseTimeOfDay(*in.StartTime); err != nil {
			return nil, rejected("shift", err)
		}
	}
	if in.EndTime != nil {
		if endTod, err = scheduling.ParseTimeOfDay(*in.EndTime); err != nil {
			return nil, rejected("shift", err)
		}
	}
	from, to := uc.norm.Compose(day, startTod), uc.norm.Compose(day, endTod)
	if err := scheduling.ValidateRange(from, to); err != nil {
		return nil, rejected("shift", err)
	}
	if in.Role != nil {
		role, err := requiredText("role", *in.Role)
		if err != nil {
			return nil, rejected("shift", err)
		}
		sh.Role = role
	}
	if in.Name != nil {
		sh.Name = strings.TrimSpace(*in.Name)
	}
	switch {
	case in.Unassign:
		sh.AssignedToID = nil
	case in.AssignedToID != nil:
		sh.AssignedToID = nonEmpty(in.AssignedToID)
	}
	if sh.AssignedToID != nil {
		if err := uc.checkAssignee(ctx, sh.RestaurantID, *sh.AssignedToID, day, from, to, sh.ID); err != nil {
			return nil, rejected("shift", err)
		}
	}
	sh.Date, sh.StartTime, sh.EndTime = day, from, to
	sh.UpdatedAt = uc.now()
	if err := uc.shifts.Update(ctx, sh); err != nil {
		return nil, err
	}
	return dto.ToShiftResponse(sh), nil
}

// Delete elimina el turno.
func (uc *ShiftUseCase) Delete(ctx context.Context, actor *entity.Actor, id string) error {
	if _, err := uc.loadOwned(ctx, actor, id); err != nil {
		return err
	}
	return uc.shifts.Delete(ctx, id)
}

// List turnos del restaurante del admin, filtrables por fecha y horario.
func (uc *ShiftUseCase) List(ctx context.Context, actor *entity.Actor, f dto.ShiftFilter) ([]dto.ShiftResponse, error) {
	if err := uc.gate.Require(actor, authz.AdminOnly); err != nil {
		return nil, err
	}
	rid, err := uc.gate.TenantOf(actor)
	if err != nil {
		return nil, err
	}
	filter := repository.ShiftFilter{RestaurantID: &rid}
	if f.Date != "" {
		d, err := scheduling.ParseDate(f.Date)
		if err != nil {
			return nil, rejected("shift", err)
		}
		filter.Date = &d
	}
	if f.ScheduleID != "" {
		filter.ScheduleID = &f.ScheduleID
	}
	list, err := uc.shifts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.ToShiftResponses(list), nil
}

// ListMine turnos asignados al actor.
func (uc *ShiftUseCase) ListMine(ctx context.Context, actor *entity.Actor) ([]dto.ShiftResponse, error) {
	if err := uc.gate.Require(actor, authz.AnyRole); err != nil {
		return nil, err
	}
	list, err := uc.shifts.List(ctx, repository.ShiftFilter{AssignedToID: &actor.ID})
	if err != nil {
		return nil, err
	}
	return dto.ToShiftResponses(list), nil
}

func (uc *ShiftUseCase) loadOwned(ctx context.Context, actor *entity.Actor, id string) (*entity.Shift, error) {
	if err := uc.gate.Require(actor, authz.AdminOnly); err != nil {
		return nil, err
	}
	sh, err := uc.shifts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, fmt.Errorf("%w: turno %s", domain.ErrNotFound, id)
	}
	if err := uc.gate.RequireTenant(actor, sh.RestaurantID); err != nil {
		return nil, err
	}
	return sh, nil
}

func (uc *ShiftUseCase) checkSchedule(ctx context.Context, restaurantID int, scheduleID string) error {
	s, err := uc.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if s == nil || s.RestaurantID != restaurantID {
		return fmt.Errorf("%w: el horario %s no existe en el restaurante", domain.ErrInvalidInput, scheduleID)
	}
	return nil
}

// checkAssignee exige usuario existente del mismo restaurante y sin turnos solapados ese día.
// excludeID omite el propio turno al actualizar.
func (uc *ShiftUseCase) checkAssignee(ctx context.Context, restaurantID int, userID string, day, from, to time.Time, excludeID string) error {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	if !u.BelongsTo(restaurantID) {
		return fmt.Errorf("%w: el usuario asignado no pertenece al restaurante", domain.ErrInvalidInput)
	}
	existing, err := uc.shifts.List(ctx, repository.ShiftFilter{AssignedToID: &userID, Date: &day})
	if err != nil {
		return err
	}
	intervals := make([]scheduling.Interval, 0, len(existing))
	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		intervals = append(intervals, scheduling.Interval{Start: other.StartTime, End: other.EndTime})
	}
	if scheduling.HasOverlap(intervals, scheduling.Interval{Start: from, End: to}) {
		return fmt.Errorf("%w: el usuario ya tiene un turno en ese horario", domain.ErrOverlap)
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
