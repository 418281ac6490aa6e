package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Horarios-api/internal/domain/entity"
)

// ShiftFilter filtros de listado; los campos nil no filtran. Date compara la fecha calendario.
type ShiftFilter struct {
	RestaurantID *int
	ScheduleID   *string
	AssignedToID *string
	Date         *time.Time
}

// AssigneeHours horas acumuladas (sin redondear) de un asignado dentro de un horario.
// AssignedToID nil agrupa los turnos sin asignar.
type AssigneeHours struct {
	AssignedToID *string
	Shifts       int
	Hours        decimal.Decimal
}

// ShiftRepository define el puerto de persistencia para Shift (DIP).
type ShiftRepository interface {
	Create(ctx context.Context, s *entity.Shift) error
	GetByID(ctx context.Context, id string) (*entity.Shift, error)
	// List ordena por start_time ascendente.
	List(ctx context.Context, f ShiftFilter) ([]*entity.Shift, error)
	CountBySchedule(ctx context.Context, scheduleID string) (int, error)
	HoursByAssignee(ctx context.Context, scheduleID string) ([]AssigneeHours, error)
	Update(ctx context.Context, s *entity.Shift) error
	// UnassignUser limpia assigned_to_id en todos los turnos del usuario.
	UnassignUser(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
}
