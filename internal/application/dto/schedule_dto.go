package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateScheduleRequest entrada para crear un horario. Fechas en formato YYYY-MM-DD.
type CreateScheduleRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// UpdateScheduleRequest parche de horario.
type UpdateScheduleRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// ScheduleResponse salida de un horario.
type ScheduleResponse struct {
	ID           string    `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	Name         string    `json:"name"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	CreatedByID  string    `json:"created_by_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserHours horas asignadas a un usuario dentro de un horario.
type UserHours struct {
	UserID string          `json:"user_id"`
	Name   string          `json:"name"`
	Shifts int             `json:"shifts"`
	Hours  decimal.Decimal `json:"hours"`
}

// ScheduleSummaryResponse resumen de horas por usuario de un horario.
type ScheduleSummaryResponse struct {
	ScheduleID       string          `json:"schedule_id"`
	Users            []UserHours     `json:"users"`
	UnassignedShifts int             `json:"unassigned_shifts"`
	UnassignedHours  decimal.Decimal `json:"unassigned_hours"`
	TotalHours       decimal.Decimal `json:"total_hours"`
}
