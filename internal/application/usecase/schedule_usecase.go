package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Horarios-api/internal/application/authz"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/application/ports"
	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/domain/repository"
	"github.com/jhoicas/Horarios-api/internal/domain/scheduling"
)

// ScheduleUseCase casos de uso de horarios del restaurante del admin.
type ScheduleUseCase struct {
	schedules   repository.ScheduleRepository
	shifts      repository.ShiftRepository
	users       repository.UserRepository
	restaurants repository.RestaurantRepository
	pdf         ports.SchedulePDFGenerator
	gate        *authz.Gate
	log         zerolog.Logger
	now         Clock
}

// NewScheduleUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewScheduleUseCase(repos ports.TxRepos, pdf ports.SchedulePDFGenerator, gate *authz.Gate, log zerolog.Logger, now Clock) *ScheduleUseCase {
	return &ScheduleUseCase{
		schedules:   repos.Schedules,
		shifts:      repos.Shifts,
		users:       repos.Users,
		restaurants: repos.Restaurants,
		pdf:         pdf,
		gate:        gate,
		log:         log.With().Str("usecase", "schedule").Logger(),
		now:         defaultClock(now),
	}
}

// Create crea un horario en el restaurante del admin. Exige end_date > start_date.
func (uc *ScheduleUseCase) Create(ctx context.Context, actor *entity.Actor, in dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	rid, err := uc.adminTenant(actor)
	if err != nil {
		return nil, err
	}
	name, err := requiredText("name", in.Name)
	if err != nil {
		return nil, rejected("schedule", err)
	}
	start, end, err := parseDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, rejected("schedule", err)
	}
	if err := requireRestaurant(ctx, uc.restaurants, rid); err != nil {
		return nil, rejected("schedule", err)
	}
	now := uc.now()
	s := &entity.Schedule{
		ID:           uuid.New().String(),
		RestaurantID: rid,
		Name:         name,
		StartDate:    start,
		EndDate:      end,
		CreatedByID:  actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.schedules.Create(ctx, s); err != nil {
		return nil, err
	}
	return dto.ToScheduleResponse(s), nil
}

// List horarios del restaurante del actor (cualquier rol con restaurante).
func (uc *ScheduleUseCase) List(ctx context.Context, actor *entity.Actor) ([]dto.ScheduleResponse, error) {
	if err := uc.gate.Require(actor, authz.AnyRole); err != nil {
		return nil, err
	}
	rid, err := uc.gate.TenantOf(actor)
	if err != nil {
		return nil, err
	}
	list, err := uc.schedules.ListByRestaurant(ctx, rid)
	if err != nil {
		return nil, err
	}
	return dto.ToScheduleResponses(list), nil
}

// Update parche de nombre y fechas; el rango resultante se revalida.
func (uc *ScheduleUseCase) Update(ctx context.Context, actor *entity.Actor, id string, in dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	s, err := uc.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := requiredText("name", *in.Name)
		if err != nil {
			return nil, rejected("schedule", err)
		}
		s.Name = name
	}
	start, end := s.StartDate, s.EndDate
	if in.StartDate != nil {
		if start, err = scheduling.ParseDate(*in.StartDate); err != nil {
			return nil, rejected("schedule", err)
		}
	}
	if in.EndDate != nil {
		if end, err = scheduling.ParseDate(*in.EndDate); err != nil {
			return nil, rejected("schedule", err)
		}
	}
	if err := scheduling.ValidateRange(start, end); err != nil {
		return nil, rejected("schedule", err)
	}
	s.StartDate, s.EndDate = start, end
	s.UpdatedAt = uc.now()
	if err := uc.schedules.Update(ctx, s); err != nil {
		return nil, err
	}
	return dto.ToScheduleResponse(s), nil
}

// Delete elimina un horario sin turnos; con turnos devuelve ErrConflict.
func (uc *ScheduleUseCase) Delete(ctx context.Context, actor *entity.Actor, id string) error {
	if _, err := uc.loadOwned(ctx, actor, id); err != nil {
		return err
	}
	n, err := uc.shifts.CountBySchedule(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: el horario tiene %d turnos", domain.ErrConflict, n)
	}
	if err := uc.schedules.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("schedule_id", id).Msg("horario eliminado")
	return nil
}

// AddShift mueve el turno al horario indicado.
func (uc *ScheduleUseCase) AddShift(ctx context.Context, actor *entity.Actor, scheduleID, shiftID string) (*dto.ShiftResponse, error) {
	s, err := uc.loadOwned(ctx, actor, scheduleID)
	if err != nil {
		return nil, err
	}
	sh, err := uc.loadShift(ctx, actor, shiftID)
	if err != nil {
		return nil, err
	}
	sh.ScheduleID = &s.ID
	sh.UpdatedAt = uc.now()
	if err := uc.shifts.Update(ctx, sh); err != nil {
		return nil, err
	}
	return dto.ToShiftResponse(sh), nil
}

// RemoveShift saca el turno de su horario (queda suelto, no se elimina).
func (uc *ScheduleUseCase) RemoveShift(ctx context.Context, actor *entity.Actor, shiftID string) (*dto.ShiftResponse, error) {
	sh, err := uc.loadShift(ctx, actor, shiftID)
	if err != nil {
		return nil, err
	}
	sh.ScheduleID = nil
	sh.UpdatedAt = uc.now()
	if err := uc.shifts.Update(ctx, sh); err != nil {
		return nil, err
	}
	return dto.ToShiftResponse(sh), nil
}

// Summary horas por usuario asignado (2 decimales) más las horas sin asignar.
func (uc *ScheduleUseCase) Summary(ctx context.Context, actor *entity.Actor, id string) (*dto.ScheduleSummaryResponse, error) {
	s, err := uc.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	hours, err := uc.shifts.HoursByAssignee(ctx, s.ID)
	if err != nil {
		return nil, err
	}

	out := &dto.ScheduleSummaryResponse{ScheduleID: s.ID, Users: []dto.UserHours{}}
	unassigned, total := decimal.Zero, decimal.Zero
	for _, h := range hours {
		total = total.Add(h.Hours)
		if h.AssignedToID == nil {
			unassigned = unassigned.Add(h.Hours)
			out.UnassignedShifts += h.Shifts
			continue
		}
		u, err := uc.users.GetByID(ctx, *h.AssignedToID)
		if err != nil {
			return nil, err
		}
		uh := dto.UserHours{UserID: *h.AssignedToID, Shifts: h.Shifts, Hours: h.Hours.Round(2)}
		if u != nil {
			uh.Name = u.Name
		}
		out.Users = append(out.Users, uh)
	}
	sort.Slice(out.Users, func(i, j int) bool {
		if out.Users[i].Name == out.Users[j].Name {
			return out.Users[i].UserID < out.Users[j].UserID
		}
		return out.Users[i].Name < out.Users[j].Name
	})
	out.UnassignedHours = unassigned.Round(2)
	out.TotalHours = total.Round(2)
	return out, nil
}

// ExportPDF genera el roster del horario. Devuelve el PDF y un nombre de archivo sugerido.
func (uc *ScheduleUseCase) ExportPDF(ctx context.Context, actor *entity.Actor, id string) ([]byte, string, error) {
	s, err := uc.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("exportación PDF no configurada")
	}
	r, err := uc.restaurants.GetByID(ctx, s.RestaurantID)
	if err != nil {
		return nil, "", err
	}
	if r == nil {
		return nil, "", fmt.Errorf("%w: restaurante %d", domain.ErrNotFound, s.RestaurantID)
	}
	shifts, err := uc.shifts.List(ctx, repository.ShiftFilter{ScheduleID: &s.ID})
	if err != nil {
		return nil, "", err
	}
	names, err := uc.assigneeNames(ctx, shifts)
	if err != nil {
		return nil, "", err
	}
	lines := make([]ports.RosterLine, 0, len(shifts))
	for _, sh := range shifts {
		line := ports.RosterLine{Shift: sh}
		if sh.AssignedToID != nil {
			line.AssigneeName = names[*sh.AssignedToID]
		}
		lines = append(lines, line)
	}
	b, err := uc.pdf.GenerateSchedulePDF(ctx, r, s, lines)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF del horario %s: %w", s.ID, err)
	}
	return b, fmt.Sprintf("horario-%s.pdf", s.StartDate.Format("2006-01-02")), nil
}

func (uc *ScheduleUseCase) adminTenant(actor *entity.Actor) (int, error) {
	if err := uc.gate.Require(actor, authz.AdminOnly); err != nil {
		return 0, err
	}
	return uc.gate.TenantOf(actor)
}

func (uc *ScheduleUseCase) loadOwned(ctx context.Context, actor *entity.Actor, id string) (*entity.Schedule, error) {
	if err := uc.gate.Require(actor, authz.AdminOnly); err != nil {
		return nil, err
	}
	s, err := uc.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: horario %s", domain.ErrNotFound, id)
	}
	if err := uc.gate.RequireTenant(actor, s.RestaurantID); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *ScheduleUseCase) loadShift(ctx context.Context, actor *entity.Actor, id string) (*entity.Shift, error) {
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

func (uc *ScheduleUseCase) assigneeNames(ctx context.Context, shifts []*entity.Shift) (map[string]string, error) {
	names := map[string]string{}
	for _, sh := range shifts {
		if sh.AssignedToID == nil {
			continue
		}
		if _, ok := names[*sh.AssignedToID]; ok {
			continue
		}
		u, err := uc.users.GetByID(ctx, *sh.AssignedToID)
		if err != nil {
			return nil, err
		}
		if u != nil {
			names[u.ID] = u.Name
		} else {
			names[*sh.AssignedToID] = ""
		}
	}
	return names, nil
}

func parseDateRange(startRaw, endRaw string) (start, end time.Time, err error) {
	if start, err = scheduling.ParseDate(startRaw); err != nil {
		return
	}
	if end, err = scheduling.ParseDate(endRaw); err != nil {
		return
	}
	err = scheduling.ValidateRange(start, end)
	return
}

// requireRestaurant valida que el restaurante referenciado exista (error de validación si no).
func requireRestaurant(ctx context.Context, repo repository.RestaurantRepository, id int) error {
	r, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("%w: el restaurante %d no existe", domain.ErrInvalidInput, id)
	}
	return nil
}
