package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Horarios-api/internal/domain"
)

// Rango de IDs externos de restaurante (5 dígitos).
const (
	RestaurantIDMin = 10000
	RestaurantIDMax = 99999
)

// Restaurant representa un tenant del sistema. El ID es un entero aleatorio de 5 dígitos.
type Restaurant struct {
	ID          int
	Name        string
	Location    string
	PhoneNumber string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRestaurant valida nombre y teléfono y construye un restaurante pendiente, sin ID.
// El ID lo asigna el allocator al insertar.
func NewRestaurant(name, location, phone string, now time.Time) (*Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del restaurante es obligatorio", domain.ErrInvalidInput)
	}
	p, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	return &Restaurant{
		Name:        name,
		Location:    strings.TrimSpace(location),
		PhoneNumber: p,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
