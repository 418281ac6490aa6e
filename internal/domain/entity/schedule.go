package entity

import "time"

// Schedule agrupa turnos de un restaurante dentro de un rango de fechas.
type Schedule struct {
	ID           string
	RestaurantID int
	Name         string
	StartDate    time.Time
	EndDate      time.Time // estrictamente posterior a StartDate
	CreatedByID  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
