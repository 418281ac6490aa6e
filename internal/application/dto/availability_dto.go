package dto

import "time"

// AvailabilityRequest ventana de disponibilidad: fecha YYYY-MM-DD y horas HH:MM.
// Se usa tanto para crear como para reemplazar una ventana existente.
type AvailabilityRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// AvailabilityResponse salida de una ventana de disponibilidad.
type AvailabilityResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
