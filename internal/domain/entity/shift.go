package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecommendedShiftRoles etiquetas sugeridas para Shift.Role (no se imponen).
var RecommendedShiftRoles = []string{"server", "cook", "host", "bartender", "dishwasher", "manager"}

// Shift turno de trabajo. StartTime y EndTime están anclados a Date y se guardan en UTC.
type Shift struct {
	ID           string
	RestaurantID int
	ScheduleID   *string
	AssignedToID *string
	CreatedByID  string
	Name         string
	Role         string
	Date         time.Time
	StartTime    time.Time
	EndTime      time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var sixty = decimal.NewFromInt(60)

// Hours duración exacta del turno en horas, a partir de minutos enteros.
func (s *Shift) Hours() decimal.Decimal {
	minutes := int64(s.EndTime.Sub(s.StartTime).Minutes())
	return decimal.NewFromInt(minutes).Div(sixty)
}
