package dto

import "time"

// CreateShiftRequest entrada para crear un turno. Date YYYY-MM-DD, horas HH:MM.
type CreateShiftRequest struct {
	Name         string  `json:"name" validate:"omitempty,max=200"`
	Role         string  `json:"role" validate:"required,min=1,max=100"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string  `json:"start_time" validate:"required"`
	EndTime      string  `json:"end_time" validate:"required"`
	ScheduleID   *string `json:"schedule_id" validate:"omitempty,uuid"`
	AssignedToID *string `json:"assigned_to_id" validate:"omitempty,uuid"`
}

// UpdateShiftRequest parche de turno. Las partes ausentes se toman del turno guardado.
// Unassign=true libera el turno (tiene prioridad sobre AssignedToID).
type UpdateShiftRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=200"`
	Role         *string `json:"role" validate:"omitempty,min=1,max=100"`
	Date         *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	AssignedToID *string `json:"assigned_to_id" validate:"omitempty,uuid"`
	Unassign     bool    `json:"unassign"`
}

// ShiftFilter filtros de listado por query string.
type ShiftFilter struct {
	Date       string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	ScheduleID string `query:"schedule_id" validate:"omitempty,uuid"`
}

// ShiftResponse salida de un turno. StartTime/EndTime son instantes UTC.
type ShiftResponse struct {
	ID           string    `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	ScheduleID   *string   `json:"schedule_id,omitempty"`
	AssignedToID *string   `json:"assigned_to_id,omitempty"`
	CreatedByID  string    `json:"created_by_id"`
	Name         string    `json:"name,omitempty"`
	Role         string    `json:"role"`
	Date         string    `json:"date"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
